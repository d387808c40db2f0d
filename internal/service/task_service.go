package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskService provides task-related operations
type TaskService interface {
	// ListTasks returns the requested window of tasks with paging metadata.
	// A request with All set returns every task.
	ListTasks(ctx context.Context, req domain.PageRequest) (*domain.TaskPage, error)

	// GetTask retrieves a task by its ID
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// CreateTask creates and persists a new task
	CreateTask(ctx context.Context, title string, completed bool) (*domain.Task, error)

	// UpdateTask applies a partial update and returns the saved task.
	// The read and the write happen in one transaction with the row locked.
	UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// DeleteTask permanently removes a task
	DeleteTask(ctx context.Context, id int64) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks  store.TaskStore
	db     store.TxBeginner
	logger *slog.Logger
	now    func() time.Time
}

// NewTaskService creates a new TaskService.
// db is used to open the transactions that UpdateTask runs in.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(tasks store.TaskStore, db store.TxBeginner, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		db:     db,
		logger: logger.With(slog.String("component", "task_service")),
		now:    time.Now,
	}, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context, req domain.PageRequest) (*domain.TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := req.Validate(); err != nil {
		log.Debug("rejected pagination request",
			slog.Int("page", req.Page),
			slog.Int("limit", req.Limit))
		return nil, err
	}

	if req.All {
		tasks, err := s.tasks.List(ctx, 0, 0)
		if err != nil {
			log.Error("failed to list all tasks", slog.String("error", err.Error()))
			return nil, NewTaskServiceError("list_tasks", "failed to retrieve tasks", err)
		}
		return domain.NewTaskPage(tasks, req, len(tasks)), nil
	}

	total, err := s.tasks.Count(ctx)
	if err != nil {
		log.Error("failed to count tasks", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("list_tasks", "failed to count tasks", err)
	}

	tasks, err := s.tasks.List(ctx, req.Limit, req.Offset())
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.Int("page", req.Page),
			slog.Int("limit", req.Limit))
		return nil, NewTaskServiceError("list_tasks", "failed to retrieve tasks", err)
	}

	log.Debug("listed tasks",
		slog.Int("page", req.Page),
		slog.Int("limit", req.Limit),
		slog.Int("returned", len(tasks)),
		slog.Int("total", total))

	return domain.NewTaskPage(tasks, req, total), nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, NewTaskServiceError("get_task", "task not found", store.ErrTaskNotFound)
		}
		log.Error("failed to retrieve task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}

	return task, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, title string, completed bool) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(title, completed)
	if err != nil {
		log.Debug("invalid task", slog.String("error", err.Error()))
		return nil, err
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created", slog.Int64("task_id", created.ID))
	return created, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		task, err := txTasks.GetByIDForUpdate(ctx, id)
		if err != nil {
			if store.IsNotFoundError(err) {
				return NewTaskServiceError("update_task", "task not found", store.ErrTaskNotFound)
			}
			return NewTaskServiceError("update_task", "failed to retrieve task", err)
		}

		if err := task.Apply(patch, s.now()); err != nil {
			return err
		}

		if err := txTasks.Update(ctx, task); err != nil {
			if store.IsNotFoundError(err) {
				return NewTaskServiceError("update_task", "task not found", store.ErrTaskNotFound)
			}
			return NewTaskServiceError("update_task", "failed to save task", err)
		}

		updated = task
		return nil
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found for update", slog.Int64("task_id", id))
		} else {
			log.Warn("task update failed",
				slog.String("error", err.Error()),
				slog.Int64("task_id", id))
		}
		return nil, err
	}

	log.Info("task updated",
		slog.Int64("task_id", id),
		slog.Bool("completed", updated.Completed))
	return updated, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.tasks.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found for deletion", slog.Int64("task_id", id))
			return NewTaskServiceError("delete_task", "task not found", store.ErrTaskNotFound)
		}
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}
