package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/camelcase/task-api/internal/domain"
	"github.com/camelcase/task-api/internal/platform/logger"
	"github.com/camelcase/task-api/internal/store"
)

const taskColumns = `id, title, description, status, due_date`

// TaskStore implements store.TaskStore on top of database/sql.
// Queries use $n placeholders numbered in order of first appearance,
// which both pgx and go-sqlite3 bind positionally.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a TaskStore. If logger is nil, the default logger is used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// WithTx returns a TaskStore that runs its queries in tx.
func (s *TaskStore) WithTx(tx *sql.Tx) *TaskStore {
	return &TaskStore{db: tx, logger: s.logger}
}

// FindPage implements store.TaskStore.FindPage.
// When the store holds a connection pool, the count and the page are read
// inside one read-only transaction so they agree with each other.
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

	beginner, ok := s.db.(store.TxBeginner)
	if !ok {
		return s.findPage(ctx, req, status)
	}

	var page *store.Page
	err := store.RunInTransaction(ctx, beginner, &sql.TxOptions{ReadOnly: true},
		func(ctx context.Context, tx *sql.Tx) error {
			var err error
			page, err = s.WithTx(tx).findPage(ctx, req, status)
			return err
		})
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (s *TaskStore) findPage(
	ctx context.Context,
	req store.PageRequest,
	status *domain.TaskStatus,
) (*store.Page, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		where string
		args  []any
	)
	if status != nil {
		where = " WHERE status = $1"
		args = append(args, string(*status))
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks"+where, args...).Scan(&total); err != nil {
		log.Error("failed to count tasks", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to count tasks: %w", MapError(err))
	}

	offset, ok := req.Offset()
	if !ok || offset >= total {
		log.Debug("task page past end of results",
			slog.Int("page", req.Number),
			slog.Int("size", req.Size),
			slog.Int64("total", total))
		return store.NewPage(req, nil, total), nil
	}

	query := fmt.Sprintf(
		"SELECT %s FROM tasks%s ORDER BY id ASC LIMIT $%d OFFSET $%d",
		taskColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, int64(req.Size), offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query task page",
			slog.Int("page", req.Number),
			slog.Int("size", req.Size),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to query tasks: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	items := make([]*domain.Task, 0, req.Capacity(total))
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		items = append(items, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	log.Debug("task page retrieved",
		slog.Int("page", req.Number),
		slog.Int("size", req.Size),
		slog.Int("items", len(items)),
		slog.Int64("total", total))
	return store.NewPage(req, items, total), nil
}

// FindByID implements store.TaskStore.FindByID.
func (s *TaskStore) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = $1", id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get task: %w", MapError(err))
	}

	return task, nil
}

// Insert implements store.TaskStore.Insert.
func (s *TaskStore) Insert(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during insert", slog.String("error", err.Error()))
		return nil, err
	}

	query := `
		INSERT INTO tasks (title, description, status, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + taskColumns

	now := time.Now().UTC()
	created, err := scanTask(s.db.QueryRowContext(
		ctx,
		query,
		task.Title,
		task.Description,
		string(task.Status),
		domain.FormatDate(task.DueDate),
		now,
		now,
	))
	if err != nil {
		log.Error("failed to insert task", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to insert task: %w", MapError(err))
	}

	log.Info("task created",
		slog.Int64("task_id", created.ID),
		slog.String("status", string(created.Status)))
	return created, nil
}

// Update implements store.TaskStore.Update as a single statement; absent
// patch fields bind NULL and COALESCE keeps the stored value.
func (s *TaskStore) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		log.Warn("task patch validation failed", slog.Int64("task_id", id), slog.String("error", err.Error()))
		return nil, err
	}

	query := `
		UPDATE tasks SET
			title = COALESCE($1, title),
			description = COALESCE($2, description),
			status = COALESCE($3, status),
			due_date = COALESCE($4, due_date),
			updated_at = $5
		WHERE id = $6
		RETURNING ` + taskColumns

	var status, dueDate any
	if patch.Status != nil {
		status = string(*patch.Status)
	}
	if patch.DueDate != nil {
		dueDate = domain.FormatDate(*patch.DueDate)
	}

	updated, err := scanTask(s.db.QueryRowContext(
		ctx,
		query,
		nullableString(patch.Title),
		nullableString(patch.Description),
		status,
		dueDate,
		time.Now().UTC(),
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for update", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update task: %w", MapError(err))
	}

	log.Info("task updated", slog.Int64("task_id", id))
	return updated, nil
}

// DeleteByID implements store.TaskStore.DeleteByID.
func (s *TaskStore) DeleteByID(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		log.Error("failed to delete task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete task: %w", MapError(err))
	}

	if err := CheckRowsAffected(result); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found for delete", slog.Int64("task_id", id))
		}
		return err
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}

// CountByStatus implements store.TaskStore.CountByStatus.
func (s *TaskStore) CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.Valid() {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidTaskStatus, string(status))
	}

	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks WHERE status = $1", string(status)).Scan(&count)
	if err != nil {
		log.Error("failed to count tasks by status",
			slog.String("status", string(status)),
			slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to count tasks: %w", MapError(err))
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task   domain.Task
		status string
		due    dateValue
	)
	if err := row.Scan(&task.ID, &task.Title, &task.Description, &status, &due); err != nil {
		return nil, err
	}
	task.Status = domain.TaskStatus(status)
	task.DueDate = due.Time
	return &task, nil
}

// dateValue scans a DATE column from either driver: pgx yields time.Time,
// go-sqlite3 yields time.Time or the stored text depending on the column's declared type.
type dateValue struct {
	time.Time
}

// Scan implements sql.Scanner.
func (d *dateValue) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = domain.TruncateToDate(v)
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	case nil:
		d.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("unsupported due_date type %T", src)
	}
}

func (d *dateValue) parse(s string) error {
	if len(s) > len(domain.DateLayout) {
		s = s[:len(domain.DateLayout)]
	}
	t, err := domain.ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
