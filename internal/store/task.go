package store

import (
	"context"
	"math"

	"github.com/camelcase/task-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// FindPage returns one page of tasks in ascending ID order, optionally
	// restricted to a status. Returns ErrInvalidPage for a page request
	// below 1 and domain.ErrInvalidTaskStatus for an unknown status.
	FindPage(ctx context.Context, req PageRequest, status *domain.TaskStatus) (*Page, error)

	// FindByID retrieves a task by its identifier.
	// Returns ErrTaskNotFound if the task does not exist.
	FindByID(ctx context.Context, id int64) (*domain.Task, error)

	// Insert persists a new task and returns it with its assigned ID.
	// The ID of the argument is ignored.
	Insert(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// Update applies the non-nil fields of patch to the stored task and
	// returns the result. Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// DeleteByID removes a task. Returns ErrTaskNotFound if the task does not exist.
	DeleteByID(ctx context.Context, id int64) error

	// CountByStatus returns the number of tasks with the given status.
	CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error)
}

// PageRequest selects a page. Number is 1-indexed.
type PageRequest struct {
	Number int
	Size   int
}

// Validate returns ErrInvalidPage when Number or Size is below 1.
func (r PageRequest) Validate() error {
	if r.Number < 1 || r.Size < 1 {
		return ErrInvalidPage
	}
	return nil
}

// Offset is the number of items preceding the page. ok is false when the
// offset does not fit in an int64; such a page lies past any stored data.
func (r PageRequest) Offset() (offset int64, ok bool) {
	if r.Number < 1 || r.Size < 1 {
		return 0, true
	}
	preceding, size := int64(r.Number-1), int64(r.Size)
	if preceding > math.MaxInt64/size {
		return 0, false
	}
	return preceding * size, true
}

// Capacity is the number of items the page holds out of total matches.
func (r PageRequest) Capacity(total int64) int {
	offset, ok := r.Offset()
	if !ok || offset >= total {
		return 0
	}
	if remaining := total - offset; remaining < int64(r.Size) {
		return int(remaining)
	}
	return r.Size
}

// Page is one slice of an ordered task listing.
type Page struct {
	Items      []*domain.Task
	Number     int
	Size       int
	TotalItems int64
	TotalPages int
}

// NewPage builds a Page, deriving TotalPages as ceil(total/size).
func NewPage(req PageRequest, items []*domain.Task, total int64) *Page {
	if items == nil {
		items = []*domain.Task{}
	}

	pages := 0
	if size := int64(req.Size); size > 0 {
		full := total / size
		if total%size != 0 {
			full++
		}
		pages = int(full)
	}

	return &Page{
		Items:      items,
		Number:     req.Number,
		Size:       req.Size,
		TotalItems: total,
		TotalPages: pages,
	}
}

// ValidateStatusFilter rejects a non-nil status that is not a known value.
func ValidateStatusFilter(status *domain.TaskStatus) error {
	if status != nil && !status.Valid() {
		return domain.ErrInvalidTaskStatus
	}
	return nil
}
