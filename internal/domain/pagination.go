package domain

import (
	"errors"
	"math"
)

// Default pagination values used when a caller omits them.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ErrInvalidPagination is returned when page or limit is out of range.
var ErrInvalidPagination = errors.New("invalid pagination parameters")

// PageRequest selects a window of tasks.
// When All is set the window is ignored and every task is returned,
// but Page and Limit are still echoed back to the caller.
type PageRequest struct {
	Page  int
	Limit int
	All   bool
}

// DefaultPageRequest returns the request used when no query parameters were given.
func DefaultPageRequest() PageRequest {
	return PageRequest{Page: DefaultPage, Limit: DefaultLimit, All: true}
}

// Validate checks that page and limit are both positive and that the
// offset they select fits in an int.
func (p PageRequest) Validate() error {
	if p.Page < 1 || p.Limit < 1 {
		return NewValidationError("page", "and limit must be positive integers", ErrInvalidPagination)
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return NewValidationError("page", "is too large for limit", ErrInvalidPagination)
	}
	return nil
}

// Offset returns the number of rows to skip. Only meaningful for a request
// that passed Validate.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TaskPage is a window of tasks plus the metadata needed to walk the rest.
type TaskPage struct {
	Tasks      []*Task
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// NewTaskPage builds a page and computes TotalPages as ceil(total/limit).
func NewTaskPage(tasks []*Task, req PageRequest, total int) *TaskPage {
	if tasks == nil {
		tasks = []*Task{}
	}

	totalPages := 0
	if req.Limit > 0 {
		totalPages = total / req.Limit
		if total%req.Limit != 0 {
			totalPages++
		}
	}

	return &TaskPage{
		Tasks:      tasks,
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
