package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/camelcase/task-api/internal/domain"
	"github.com/camelcase/task-api/internal/platform/logger"
	"github.com/camelcase/task-api/internal/store"
)

// DefaultDueDateOffset is how far ahead a defaulted due date is placed.
const DefaultDueDateOffset = 7 * 24 * time.Hour

// CreateTaskInput carries the raw fields of a create request. Status and
// DueDate are transport strings ("in_progress", "2025-06-01").
type CreateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	DueDate     *string
}

// UpdateTaskInput carries the raw fields of a partial update. Nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	DueDate     *string
}

// TaskService provides task use cases to the transport adapters.
type TaskService interface {
	// ListTasks returns a 1-indexed page of tasks, filtered by status unless status is empty.
	ListTasks(ctx context.Context, page, size int, status string) (*store.Page, error)

	// GetTask returns a task by its transport identifier.
	GetTask(ctx context.Context, id string) (*domain.Task, error)

	// CreateTask validates and stores a new task.
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)

	// UpdateTask applies the non-nil fields of input to an existing task.
	UpdateTask(ctx context.Context, id string, input UpdateTaskInput) (*domain.Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id string) error

	// CountTasks returns the number of tasks with the given status.
	CountTasks(ctx context.Context, status string) (int64, error)
}

// Option configures the task service.
type Option func(*taskServiceImpl)

// WithDefaults makes CreateTask fill omitted fields with placeholders:
// a generated title, PENDING status and a due date one week out.
func WithDefaults() Option {
	return func(s *taskServiceImpl) {
		s.fillDefaults = true
	}
}

// WithClock overrides the time source used for defaulted due dates.
func WithClock(now func() time.Time) Option {
	return func(s *taskServiceImpl) {
		s.now = now
	}
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks        store.TaskStore
	logger       *slog.Logger
	fillDefaults bool
	now          func() time.Time
}

// NewTaskService creates a new TaskService.
// It returns an error if the task store is nil.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger, opts ...Option) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &taskServiceImpl{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_service")),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context, page, size int, status string) (*store.Page, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	req := store.PageRequest{Number: page, Size: size}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var filter *domain.TaskStatus
	if strings.TrimSpace(status) != "" {
		parsed, err := domain.ParseTaskStatus(status)
		if err != nil {
			log.Debug("rejected status filter", slog.String("status", status))
			return nil, err
		}
		filter = &parsed
	}

	result, err := s.tasks.FindPage(ctx, req, filter)
	if err != nil {
		log.Error("failed to list tasks",
			slog.Int("page", page),
			slog.Int("size", size),
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("list_tasks", "failed to retrieve tasks", err)
	}
	return result, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	taskID, err := domain.ParseTaskID(id)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, s.storeError(ctx, "get_task", "failed to retrieve task", taskID, err)
	}
	return task, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	draft := &domain.Task{
		Title:       deref(input.Title),
		Description: deref(input.Description),
	}

	if raw := strings.TrimSpace(deref(input.Status)); raw != "" {
		status, err := domain.ParseTaskStatus(raw)
		if err != nil {
			return nil, err
		}
		draft.Status = status
	}

	if raw := strings.TrimSpace(deref(input.DueDate)); raw != "" {
		due, err := domain.ParseDate(raw)
		if err != nil {
			return nil, err
		}
		draft.DueDate = due
	}

	if s.fillDefaults {
		s.applyDefaults(draft, input)
	}

	task, err := domain.NewTask(draft.Title, draft.Description, draft.Status, draft.DueDate)
	if err != nil {
		log.Debug("task validation failed", slog.String("error", err.Error()))
		return nil, err
	}

	created, err := s.tasks.Insert(ctx, task)
	if err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created", slog.Int64("task_id", created.ID))
	return created, nil
}

func (s *taskServiceImpl) applyDefaults(task *domain.Task, input CreateTaskInput) {
	if input.Title == nil {
		task.Title = "Task " + uuid.NewString()[:8]
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusPending
	}
	if task.DueDate.IsZero() {
		task.DueDate = domain.TruncateToDate(s.now().Add(DefaultDueDateOffset))
	}
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(ctx context.Context, id string, input UpdateTaskInput) (*domain.Task, error) {
	taskID, err := domain.ParseTaskID(id)
	if err != nil {
		return nil, err
	}

	patch := domain.TaskPatch{
		Title:       input.Title,
		Description: input.Description,
	}

	if input.Status != nil {
		status, err := domain.ParseTaskStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		patch.Status = &status
	}

	if input.DueDate != nil {
		due, err := domain.ParseDate(*input.DueDate)
		if err != nil {
			return nil, err
		}
		patch.DueDate = &due
	}

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		current, err := s.tasks.FindByID(ctx, taskID)
		if err != nil {
			return nil, s.storeError(ctx, "update_task", "failed to retrieve task", taskID, err)
		}
		return current, nil
	}

	updated, err := s.tasks.Update(ctx, taskID, patch)
	if err != nil {
		return nil, s.storeError(ctx, "update_task", "failed to update task", taskID, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task updated", slog.Int64("task_id", taskID))
	return updated, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	taskID, err := domain.ParseTaskID(id)
	if err != nil {
		return err
	}

	if err := s.tasks.DeleteByID(ctx, taskID); err != nil {
		return s.storeError(ctx, "delete_task", "failed to delete task", taskID, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted", slog.Int64("task_id", taskID))
	return nil
}

// CountTasks implements TaskService.CountTasks
func (s *taskServiceImpl) CountTasks(ctx context.Context, status string) (int64, error) {
	parsed, err := domain.ParseTaskStatus(status)
	if err != nil {
		return 0, err
	}

	count, err := s.tasks.CountByStatus(ctx, parsed)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count tasks",
			slog.String("status", string(parsed)),
			slog.String("error", err.Error()))
		return 0, NewTaskServiceError("count_tasks", "failed to count tasks", err)
	}
	return count, nil
}

// storeError logs unexpected store failures and converts err with NewTaskServiceError.
func (s *taskServiceImpl) storeError(ctx context.Context, operation, message string, id int64, err error) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if store.IsNotFoundError(err) {
		log.Debug("task not found", slog.String("operation", operation), slog.Int64("task_id", id))
	} else {
		log.Error(message,
			slog.String("operation", operation),
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
	}
	return NewTaskServiceError(operation, message, err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
