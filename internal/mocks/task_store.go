package mocks

import (
	"context"

	"github.com/camelcase/task-api/internal/domain"
	"github.com/camelcase/task-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
// Each method calls its Fn field when set and otherwise returns the default values.
type MockTaskStore struct {
	FindPageFn      func(ctx context.Context, req store.PageRequest, status *domain.TaskStatus) (*store.Page, error)
	FindByIDFn      func(ctx context.Context, id int64) (*domain.Task, error)
	InsertFn        func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	UpdateFn        func(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	DeleteByIDFn    func(ctx context.Context, id int64) error
	CountByStatusFn func(ctx context.Context, status domain.TaskStatus) (int64, error)

	// Default values used when functions aren't explicitly defined
	Task  *domain.Task
	Page  *store.Page
	Count int64
	Err   error

	// Recorded arguments of the last call
	LastID     int64
	LastPatch  domain.TaskPatch
	LastInsert *domain.Task
	LastStatus *domain.TaskStatus
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// FindPage implements store.TaskStore.
func (m *MockTaskStore) FindPage(
	ctx context.Context,
	req store.PageRequest,
	status *domain.TaskStatus,
) (*store.Page, error) {
	m.LastStatus = status
	if m.FindPageFn != nil {
		return m.FindPageFn(ctx, req, status)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Page != nil {
		return m.Page, nil
	}
	return store.NewPage(req, nil, 0), nil
}

// FindByID implements store.TaskStore.
func (m *MockTaskStore) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	m.LastID = id
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return m.Task, m.Err
}

// Insert implements store.TaskStore.
func (m *MockTaskStore) Insert(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	m.LastInsert = task
	if m.InsertFn != nil {
		return m.InsertFn(ctx, task)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Task != nil {
		return m.Task, nil
	}
	created := *task
	created.ID = 1
	return &created, nil
}

// Update implements store.TaskStore.
func (m *MockTaskStore) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	m.LastID = id
	m.LastPatch = patch
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return m.Task, m.Err
}

// DeleteByID implements store.TaskStore.
func (m *MockTaskStore) DeleteByID(ctx context.Context, id int64) error {
	m.LastID = id
	if m.DeleteByIDFn != nil {
		return m.DeleteByIDFn(ctx, id)
	}
	return m.Err
}

// CountByStatus implements store.TaskStore.
func (m *MockTaskStore) CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error) {
	m.LastStatus = &status
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, status)
	}
	return m.Count, m.Err
}
