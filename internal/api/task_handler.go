package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/service"
)

// Success messages returned by mutating endpoints.
const (
	MsgTaskCreated = "Task created"
	MsgTaskUpdated = "Task updated"
	MsgTaskDeleted = "Task deleted"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if tasks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("task service cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /api/tasks requests
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	req, err := getPageRequest(r)
	if err != nil {
		log.Debug("invalid pagination parameters", slog.String("query", r.URL.RawQuery))
		HandleAPIError(w, r, err, MsgInvalidPagination)
		return
	}

	page, err := h.tasks.ListTasks(r.Context(), req)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, pageToResponse(page))
}

// GetTask handles GET /api/tasks/{id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.GetTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// CreateTask handles POST /api/tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("invalid create task body", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequestFormat, err)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	completed := false
	if req.Completed != nil {
		completed = *req.Completed
	}

	task, err := h.tasks.CreateTask(r.Context(), *req.Title, completed)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CreateTaskResponse{
		Message: MsgTaskCreated,
		TaskID:  task.ID,
	})
}

// UpdateTask handles PUT /api/tasks/{id} requests.
// The body is fully decoded and validated before the task is looked up.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("invalid update task body",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequestFormat, err)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if _, err := h.tasks.UpdateTask(r.Context(), id, req.Patch()); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, MsgTaskUpdated)
}

// DeleteTask handles DELETE /api/tasks/{id} requests
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, MsgTaskDeleted)
}
