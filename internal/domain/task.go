package domain

import (
	"errors"
	"strings"
	"time"
)

// Task-specific validation errors
var (
	// ErrEmptyTitle is returned when a task title is empty or only whitespace.
	ErrEmptyTitle = errors.New("task title cannot be empty")

	// ErrTimestampOrder is returned when a task's updated_at precedes its created_at.
	ErrTimestampOrder = errors.New("task updated_at cannot precede created_at")
)

// TimestampResolution is the smallest step the store can represent for a
// timestamp. PostgreSQL TIMESTAMPTZ keeps microseconds.
const TimestampResolution = time.Microsecond

// Task is a titled, completable work item.
// ID is assigned by the store on creation and is zero until then.
type Task struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTask creates a Task that has not been persisted yet.
// Both timestamps are set to the same instant, truncated to the store's resolution.
func NewTask(title string, completed bool) (*Task, error) {
	now := time.Now().UTC().Truncate(TimestampResolution)
	task := &Task{
		Title:     title,
		Completed: completed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}

	if t.UpdatedAt.Before(t.CreatedAt) {
		return NewValidationError("updated_at", "cannot precede created_at", ErrTimestampOrder)
	}

	return nil
}

// TaskPatch describes a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title     *string
	Completed *bool
}

// IsEmpty reports whether the patch changes no fields.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Completed == nil
}

// Apply applies the patch to the task and refreshes UpdatedAt.
// UpdatedAt always moves strictly forward, even when the clock has not
// advanced past the previous value at the store's resolution.
func (t *Task) Apply(patch TaskPatch, now time.Time) error {
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}

	next := now.UTC().Truncate(TimestampResolution)
	if !next.After(t.UpdatedAt) {
		next = t.UpdatedAt.Add(TimestampResolution)
	}
	t.UpdatedAt = next

	return t.Validate()
}
