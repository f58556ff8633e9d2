package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/camelcase/task-api/internal/domain"
	"github.com/camelcase/task-api/internal/platform/logger"
	"github.com/camelcase/task-api/internal/store"
)

// TaskStore keeps tasks in a map keyed by ID. order holds the IDs in
// insertion order, which is also ascending ID order.
//
// A single RWMutex guards every field: reads share the lock, writes take it exclusively.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[int64]domain.Task
	order  []int64
	nextID int64
	logger *slog.Logger
}

// NewTaskStore creates an empty TaskStore. If logger is nil, the default logger is used.
func NewTaskStore(logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		tasks:  make(map[int64]domain.Task),
		logger: logger.With(slog.String("component", "memory_task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// FindPage implements store.TaskStore.FindPage.
func (s *TaskStore) FindPage(
	ctx context.Context,
	req store.PageRequest,
	status *domain.TaskStatus,
) (*store.Page, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := store.ValidateStatusFilter(status); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := func(task domain.Task) bool {
		return status == nil || task.Status == *status
	}

	var total int64
	for _, id := range s.order {
		if matches(s.tasks[id]) {
			total++
		}
	}

	items := make([]*domain.Task, 0, req.Capacity(total))
	if offset, ok := req.Offset(); ok && offset < total {
		var position int64
		for _, id := range s.order {
			task := s.tasks[id]
			if !matches(task) {
				continue
			}
			if position >= offset {
				items = append(items, &task)
				if len(items) == req.Size {
					break
				}
			}
			position++
		}
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("task page retrieved",
		slog.Int("page", req.Number),
		slog.Int("size", req.Size),
		slog.Int("items", len(items)),
		slog.Int64("total", total))
	return store.NewPage(req, items, total), nil
}

// FindByID implements store.TaskStore.FindByID.
func (s *TaskStore) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return &task, nil
}

// Insert implements store.TaskStore.Insert.
func (s *TaskStore) Insert(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	stored := *task
	stored.ID = s.nextID
	stored.DueDate = domain.TruncateToDate(stored.DueDate)

	s.tasks[stored.ID] = stored
	s.order = append(s.order, stored.ID)

	logger.FromContextOrDefault(ctx, s.logger).Info("task created",
		slog.Int64("task_id", stored.ID),
		slog.String("status", string(stored.Status)))
	return &stored, nil
}

// Update implements store.TaskStore.Update.
func (s *TaskStore) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}

	task.Apply(patch)
	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	s.tasks[id] = task

	logger.FromContextOrDefault(ctx, s.logger).Info("task updated", slog.Int64("task_id", id))
	return &task, nil
}

// DeleteByID implements store.TaskStore.DeleteByID.
func (s *TaskStore) DeleteByID(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, id)

	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted", slog.Int64("task_id", id))
	return nil
}

// CountByStatus implements store.TaskStore.CountByStatus.
func (s *TaskStore) CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error) {
	if !status.Valid() {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidTaskStatus, string(status))
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, task := range s.tasks {
		if task.Status == status {
			count++
		}
	}
	return count, nil
}
