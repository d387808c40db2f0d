package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	// Custom behavior functions
	ListTasksFn  func(ctx context.Context, req domain.PageRequest) (*domain.TaskPage, error)
	GetTaskFn    func(ctx context.Context, id int64) (*domain.Task, error)
	CreateTaskFn func(ctx context.Context, title string, completed bool) (*domain.Task, error)
	UpdateTaskFn func(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTaskFn func(ctx context.Context, id int64) error

	// Default response values
	Task *domain.Task
	Page *domain.TaskPage
	Err  error

	// Call tracking for verification
	mu           sync.Mutex
	PageRequests []domain.PageRequest
	TaskIDs      []int64
	Patches      []domain.TaskPatch
}

var _ service.TaskService = (*MockTaskService)(nil)

func (m *MockTaskService) trackID(id int64) {
	m.mu.Lock()
	m.TaskIDs = append(m.TaskIDs, id)
	m.mu.Unlock()
}

// ListTasks implements service.TaskService
func (m *MockTaskService) ListTasks(ctx context.Context, req domain.PageRequest) (*domain.TaskPage, error) {
	m.mu.Lock()
	m.PageRequests = append(m.PageRequests, req)
	m.mu.Unlock()

	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, req)
	}
	return m.Page, m.Err
}

// GetTask implements service.TaskService
func (m *MockTaskService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	m.trackID(id)
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return m.Task, m.Err
}

// CreateTask implements service.TaskService
func (m *MockTaskService) CreateTask(ctx context.Context, title string, completed bool) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, title, completed)
	}
	return m.Task, m.Err
}

// UpdateTask implements service.TaskService
func (m *MockTaskService) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	m.trackID(id)
	m.mu.Lock()
	m.Patches = append(m.Patches, patch)
	m.mu.Unlock()

	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, patch)
	}
	return m.Task, m.Err
}

// DeleteTask implements service.TaskService
func (m *MockTaskService) DeleteTask(ctx context.Context, id int64) error {
	m.trackID(id)
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return m.Err
}
