package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

const taskColumns = `id, title, completed, created_at, updated_at`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil") // ALLOW-PANIC: constructor wiring error
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TaskStore.Create
// The ID is assigned by the database; the returned task is the row as stored.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return nil, err
	}

	query := `
		INSERT INTO tasks (title, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + taskColumns

	created, err := scanTask(s.db.QueryRowContext(
		ctx,
		query,
		task.Title,
		task.Completed,
		task.CreatedAt,
		task.UpdatedAt,
	))
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Info("task created successfully",
		slog.Int64("task_id", created.ID),
		slog.Bool("completed", created.Completed))
	return created, nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	return s.getOne(ctx, query, id)
}

// GetByIDForUpdate implements store.TaskStore.GetByIDForUpdate
// The row stays locked until the surrounding transaction commits or rolls back.
func (s *PostgresTaskStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 FOR UPDATE`
	return s.getOne(ctx, query, id)
}

func (s *PostgresTaskStore) getOne(ctx context.Context, query string, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving task by ID", slog.Int64("task_id", id))

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, MapError(err)
	}

	return task, nil
}

// List implements store.TaskStore.List
// Tasks come back ordered by ID, which is their insertion order.
// A negative offset is rejected with domain.ErrInvalidPagination.
func (s *PostgresTaskStore) List(ctx context.Context, limit, offset int) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if offset < 0 {
		log.Warn("rejected negative list offset", slog.Int("offset", offset))
		return nil, domain.NewValidationError("offset", "cannot be negative", domain.ErrInvalidPagination)
	}

	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+taskColumns+` FROM tasks ORDER BY id LIMIT $1 OFFSET $2`,
			limit, offset)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+taskColumns+` FROM tasks ORDER BY id OFFSET $1`,
			offset)
	}
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.Int("limit", limit),
			slog.Int("offset", offset))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("tasks listed",
		slog.Int("count", len(tasks)),
		slog.Int("limit", limit),
		slog.Int("offset", offset))
	return tasks, nil
}

// Count implements store.TaskStore.Count
func (s *PostgresTaskStore) Count(ctx context.Context) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&total); err != nil {
		log.Error("failed to count tasks", slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	return total, nil
}

// Update implements store.TaskStore.Update
// created_at is never written.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, completed = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := s.db.ExecContext(ctx, query, task.Title, task.Completed, task.UpdatedAt, task.ID)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found for update", slog.Int64("task_id", task.ID))
			return store.ErrTaskNotFound
		}
		return err
	}

	log.Info("task updated successfully",
		slog.Int64("task_id", task.ID),
		slog.Bool("completed", task.Completed))
	return nil
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found for deletion", slog.Int64("task_id", id))
			return store.ErrTaskNotFound
		}
		return err
	}

	log.Info("task deleted successfully", slog.Int64("task_id", id))
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}

	task.CreatedAt = task.CreatedAt.UTC()
	task.UpdatedAt = task.UpdatedAt.UTC()
	return &task, nil
}
