package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/task-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create inserts a new task. The store assigns the ID and the returned
	// task carries it along with the persisted timestamps.
	// Returns validation errors if the task is invalid.
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// GetByIDForUpdate retrieves a task and locks its row until the
	// surrounding transaction ends. Only meaningful on a store bound to a
	// transaction with WithTx.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Task, error)

	// List returns tasks in insertion order. A limit of zero or less
	// returns every task starting at offset.
	List(ctx context.Context, limit, offset int) ([]*domain.Task, error)

	// Count returns the number of tasks in the store.
	Count(ctx context.Context) (int, error)

	// Update saves the title, completed flag and updated_at of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete permanently removes a task.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a TaskStore that runs every statement inside tx.
	// The transaction is owned by the caller, usually via RunInTransaction.
	WithTx(tx *sql.Tx) TaskStore
}
