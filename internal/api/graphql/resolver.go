package graphql

import (
	"context"
	"errors"
	"log/slog"
	"math"

	gql "github.com/graph-gophers/graphql-go"

	"github.com/camelcase/task-api/internal/domain"
	"github.com/camelcase/task-api/internal/service"
)

// Resolver is the root resolver for queries and mutations.
type Resolver struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewResolver creates the root resolver.
func NewResolver(tasks service.TaskService, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{tasks: tasks, logger: logger}
}

// TaskInput mirrors the TaskCreateRequestInput and TaskUpdateRequestInput types.
type TaskInput struct {
	Title       *string
	Description *string
	Status      *string
	DueDate     *string
}

// Task resolves task(id).
func (r *Resolver) Task(ctx context.Context, args struct{ ID gql.ID }) (*TaskResolver, error) {
	task, err := r.tasks.GetTask(ctx, string(args.ID))
	if err != nil {
		return nil, r.resolverError(ctx, string(args.ID), err)
	}
	return &TaskResolver{task: task}, nil
}

// TaskPage resolves taskPage(page, size, taskStatus).
func (r *Resolver) TaskPage(ctx context.Context, args struct {
	Page       int32
	Size       int32
	TaskStatus *string
}) (*TaskPageResolver, error) {
	var status string
	if args.TaskStatus != nil {
		status = *args.TaskStatus
	}

	result, err := r.tasks.ListTasks(ctx, int(args.Page), int(args.Size), status)
	if err != nil {
		return nil, r.resolverError(ctx, "", err)
	}

	tasks := make([]*TaskResolver, 0, len(result.Items))
	for _, task := range result.Items {
		tasks = append(tasks, &TaskResolver{task: task})
	}
	return &TaskPageResolver{
		tasks:      tasks,
		totalPages: clampInt32(int64(result.TotalPages)),
		totalItems: clampInt32(result.TotalItems),
	}, nil
}

// CountTasks resolves countTasks(status).
func (r *Resolver) CountTasks(ctx context.Context, args struct{ Status string }) (int32, error) {
	count, err := r.tasks.CountTasks(ctx, args.Status)
	if err != nil {
		return 0, r.resolverError(ctx, "", err)
	}
	return clampInt32(count), nil
}

// Create resolves create(taskCreateRequestInput).
func (r *Resolver) Create(ctx context.Context, args struct{ TaskCreateRequestInput TaskInput }) (*TaskResolver, error) {
	in := args.TaskCreateRequestInput
	task, err := r.tasks.CreateTask(ctx, service.CreateTaskInput{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		DueDate:     in.DueDate,
	})
	if err != nil {
		return nil, r.resolverError(ctx, "", err)
	}
	return &TaskResolver{task: task}, nil
}

// Update resolves update(id, taskUpdateRequestInput).
func (r *Resolver) Update(ctx context.Context, args struct {
	ID                     gql.ID
	TaskUpdateRequestInput TaskInput
}) (*TaskResolver, error) {
	in := args.TaskUpdateRequestInput
	task, err := r.tasks.UpdateTask(ctx, string(args.ID), service.UpdateTaskInput{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		DueDate:     in.DueDate,
	})
	if err != nil {
		return nil, r.resolverError(ctx, string(args.ID), err)
	}
	return &TaskResolver{task: task}, nil
}

// Delete resolves delete(id). A missing task is reported as success: false.
func (r *Resolver) Delete(ctx context.Context, args struct{ ID gql.ID }) (*DeleteResolver, error) {
	err := r.tasks.DeleteTask(ctx, string(args.ID))
	switch {
	case err == nil:
		return &DeleteResolver{success: true}, nil
	case errors.Is(err, service.ErrTaskNotFound):
		return &DeleteResolver{success: false}, nil
	default:
		return nil, r.resolverError(ctx, string(args.ID), err)
	}
}

// DeleteTask resolves deleteTask(id), an alias of delete.
func (r *Resolver) DeleteTask(ctx context.Context, args struct{ ID gql.ID }) (*DeleteResolver, error) {
	return r.Delete(ctx, args)
}

// TaskResolver resolves the Task type.
type TaskResolver struct {
	task *domain.Task
}

func (t *TaskResolver) ID() gql.ID { return gql.ID(domain.FormatTaskID(t.task.ID)) }

func (t *TaskResolver) Title() string { return t.task.Title }

func (t *TaskResolver) Description() *string {
	if t.task.Description == "" {
		return nil
	}
	return &t.task.Description
}

func (t *TaskResolver) Status() string { return string(t.task.Status) }

func (t *TaskResolver) DueDate() string { return domain.FormatDate(t.task.DueDate) }

// TaskPageResolver resolves the TaskPage type.
type TaskPageResolver struct {
	tasks      []*TaskResolver
	totalPages int32
	totalItems int32
}

func (p *TaskPageResolver) Tasks() []*TaskResolver { return p.tasks }

func (p *TaskPageResolver) TotalPages() int32 { return p.totalPages }

func (p *TaskPageResolver) TotalItems() int32 { return p.totalItems }

// DeleteResolver resolves the DeleteResponse type.
type DeleteResolver struct {
	success bool
}

func (d *DeleteResolver) Success() bool { return d.success }

// clampInt32 fits a count into GraphQL's 32-bit Int.
func clampInt32(n int64) int32 {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(n)
}
