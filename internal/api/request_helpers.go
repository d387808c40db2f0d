package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// getPathTaskID extracts the task ID from the URL path. The route pattern
// only admits digits, so the only parse failure left is overflow, which is
// reported as store.ErrTaskNotFound since no such task can exist.
func getPathTaskID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return 0, domain.NewValidationError("id", "is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, store.ErrTaskNotFound
		}
		return 0, domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// getPageRequest reads page and limit from the query string.
//
// A request with no query parameters at all asks for every task. Once any
// parameter is present the list is paginated, with absent or empty page and
// limit values taking their defaults.
func getPageRequest(r *http.Request) (domain.PageRequest, error) {
	query := r.URL.Query()
	if len(query) == 0 {
		return domain.DefaultPageRequest(), nil
	}

	page, err := queryInt(query.Get("page"), domain.DefaultPage)
	if err != nil {
		return domain.PageRequest{}, err
	}

	limit, err := queryInt(query.Get("limit"), domain.DefaultLimit)
	if err != nil {
		return domain.PageRequest{}, err
	}

	req := domain.PageRequest{Page: page, Limit: limit}
	if err := req.Validate(); err != nil {
		return domain.PageRequest{}, err
	}
	return req, nil
}

func queryInt(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError("page", "and limit must be integers", domain.ErrInvalidPagination)
	}
	return n, nil
}
