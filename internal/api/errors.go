package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// Client-facing messages.
const (
	MsgTaskNotFound         = "Task not found"
	MsgInvalidPagination    = "Invalid pagination parameters"
	MsgInvalidRequestFormat = "Invalid request format"
	MsgInvalidTaskData      = "Invalid task data"
	MsgUnexpectedError      = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors

	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrValidation),
		errors.As(err, &verrs),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpectedError
	}

	var (
		verr  *domain.ValidationError
		verrs validator.ValidationErrors
	)

	switch {
	case errors.Is(err, store.ErrNotFound):
		return MsgTaskNotFound

	case errors.Is(err, domain.ErrInvalidPagination):
		return MsgInvalidPagination

	case errors.As(err, &verrs):
		return SanitizeValidationError(verrs)

	case errors.As(err, &verr):
		return fmt.Sprintf("Invalid %s: %s", verr.Field, verr.Message)

	case errors.Is(err, store.ErrInvalidEntity):
		return MsgInvalidTaskData

	default:
		return MsgUnexpectedError
	}
}

// SanitizeValidationError reports the first failed field of a struct
// validation as a user-friendly message.
func SanitizeValidationError(verrs validator.ValidationErrors) string {
	if len(verrs) == 0 {
		return "Validation error"
	}

	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the response for err: status from MapErrorToStatusCode
// and message from GetSafeErrorMessage, unless message overrides it.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), message, err)
}
