package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// InMemoryTaskStore is a map-backed store.TaskStore. IDs start at 1 and are
// never reused. Returned tasks are copies, so callers cannot mutate stored state.
type InMemoryTaskStore struct {
	mu     sync.Mutex
	tasks  map[int64]domain.Task
	nextID int64
}

// NewInMemoryTaskStore creates an empty store.
func NewInMemoryTaskStore() *InMemoryTaskStore {
	return &InMemoryTaskStore{
		tasks:  make(map[int64]domain.Task),
		nextID: 1,
	}
}

var _ store.TaskStore = (*InMemoryTaskStore)(nil)

// Create implements store.TaskStore
func (s *InMemoryTaskStore) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *task
	stored.ID = s.nextID
	s.nextID++
	s.tasks[stored.ID] = stored

	return &stored, nil
}

// GetByID implements store.TaskStore
func (s *InMemoryTaskStore) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return &task, nil
}

// GetByIDForUpdate implements store.TaskStore. There is no row locking.
func (s *InMemoryTaskStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Task, error) {
	return s.GetByID(ctx, id)
}

// List implements store.TaskStore
func (s *InMemoryTaskStore) List(_ context.Context, limit, offset int) ([]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.tasks))
	for id := range s.tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if offset < 0 {
		return nil, domain.NewValidationError("offset", "cannot be negative", domain.ErrInvalidPagination)
	}
	if offset > len(ids) {
		offset = len(ids)
	}
	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}

	result := make([]*domain.Task, 0, len(ids))
	for _, id := range ids {
		task := s.tasks[id]
		result = append(result, &task)
	}
	return result, nil
}

// Count implements store.TaskStore
func (s *InMemoryTaskStore) Count(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks), nil
}

// Update implements store.TaskStore
func (s *InMemoryTaskStore) Update(_ context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tasks[task.ID]
	if !ok {
		return store.ErrTaskNotFound
	}

	existing.Title = task.Title
	existing.Completed = task.Completed
	existing.UpdatedAt = task.UpdatedAt
	s.tasks[task.ID] = existing
	return nil
}

// Delete implements store.TaskStore
func (s *InMemoryTaskStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

// WithTx implements store.TaskStore. Writes apply immediately and are not
// undone on rollback.
func (s *InMemoryTaskStore) WithTx(*sql.Tx) store.TaskStore {
	return s
}

// MockTaskStore implements store.TaskStore with per-method function fields.
// Methods without a function return Err (and nil values).
type MockTaskStore struct {
	CreateFn           func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetByIDFn          func(ctx context.Context, id int64) (*domain.Task, error)
	GetByIDForUpdateFn func(ctx context.Context, id int64) (*domain.Task, error)
	ListFn             func(ctx context.Context, limit, offset int) ([]*domain.Task, error)
	CountFn            func(ctx context.Context) (int, error)
	UpdateFn           func(ctx context.Context, task *domain.Task) error
	DeleteFn           func(ctx context.Context, id int64) error

	Err error

	mu    sync.Mutex
	calls map[string]int
	// TxCount records how many times WithTx was called.
	TxCount int
}

var _ store.TaskStore = (*MockTaskStore)(nil)

func (m *MockTaskStore) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

// Calls returns how many times method was invoked.
func (m *MockTaskStore) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// Create implements store.TaskStore
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return nil, m.Err
}

// GetByID implements store.TaskStore
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	m.record("GetByID")
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, m.Err
}

// GetByIDForUpdate implements store.TaskStore
func (m *MockTaskStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Task, error) {
	m.record("GetByIDForUpdate")
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, m.Err
}

// List implements store.TaskStore
func (m *MockTaskStore) List(ctx context.Context, limit, offset int) ([]*domain.Task, error) {
	m.record("List")
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	return nil, m.Err
}

// Count implements store.TaskStore
func (m *MockTaskStore) Count(ctx context.Context) (int, error) {
	m.record("Count")
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, m.Err
}

// Update implements store.TaskStore
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	m.record("Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	return m.Err
}

// Delete implements store.TaskStore
func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

// WithTx implements store.TaskStore and returns the same mock.
func (m *MockTaskStore) WithTx(*sql.Tx) store.TaskStore {
	m.mu.Lock()
	m.TxCount++
	m.mu.Unlock()
	return m
}
