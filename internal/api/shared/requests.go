package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes caps the size of a decoded request body.
const MaxBodyBytes = 1 << 20

// Request body errors returned by DecodeJSON.
var (
	ErrEmptyBody     = errors.New("request body is empty")
	ErrBodyNotObject = errors.New("request body must be a JSON object")
	ErrTrailingData  = errors.New("request body contains trailing data")
)

// Global validator instance for reuse. Field errors are reported under
// their JSON names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON decodes a JSON object from the request body into v.
// Unknown fields are ignored. Wrong value types, trailing data and bodies
// that are not a single object are errors.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}
	if len(body) > MaxBodyBytes {
		return fmt.Errorf("request body exceeds %d bytes", MaxBodyBytes)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ErrEmptyBody
	}
	if body[0] != '{' {
		return ErrBodyNotObject
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return ErrTrailingData
	}
	return nil
}

// ValidateRequest runs struct tag validation on v, then v's own Validate
// method when it has one.
func ValidateRequest(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return err
	}

	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}
	return nil
}
