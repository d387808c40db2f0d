package api

import (
	"strings"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
)

// CreateTaskRequest is the body of POST /api/tasks.
// Pointers distinguish an absent or null field from a zero value.
type CreateTaskRequest struct {
	Title     *string `json:"title"     validate:"required,min=1"`
	Completed *bool   `json:"completed"`
}

// Validate rejects titles made only of whitespace.
func (r CreateTaskRequest) Validate() error {
	return validateTitle(r.Title)
}

// UpdateTaskRequest is the body of PUT /api/tasks/{id}. Absent fields are left unchanged.
type UpdateTaskRequest struct {
	Title     *string `json:"title"     validate:"omitempty,min=1"`
	Completed *bool   `json:"completed"`
}

// Validate rejects titles made only of whitespace.
func (r UpdateTaskRequest) Validate() error {
	return validateTitle(r.Title)
}

// Patch converts the request into a domain patch.
func (r UpdateTaskRequest) Patch() domain.TaskPatch {
	return domain.TaskPatch{Title: r.Title, Completed: r.Completed}
}

func validateTitle(title *string) error {
	if title != nil && strings.TrimSpace(*title) == "" {
		return domain.NewValidationError("title", "cannot be empty", domain.ErrEmptyTitle)
	}
	return nil
}

// TaskResponse represents a task on the wire. Timestamps are RFC 3339 in UTC.
type TaskResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskListResponse is the body of GET /api/tasks.
type TaskListResponse struct {
	Tasks      []TaskResponse `json:"tasks"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}

// CreateTaskResponse is the body of a successful POST /api/tasks.
type CreateTaskResponse struct {
	Message string `json:"message"`
	TaskID  int64  `json:"task_id"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Completed: task.Completed,
		CreatedAt: task.CreatedAt.UTC(),
		UpdatedAt: task.UpdatedAt.UTC(),
	}
}

func pageToResponse(page *domain.TaskPage) TaskListResponse {
	tasks := make([]TaskResponse, 0, len(page.Tasks))
	for _, task := range page.Tasks {
		tasks = append(tasks, taskToResponse(task))
	}

	return TaskListResponse{
		Tasks:      tasks,
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}
}
