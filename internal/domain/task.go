package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// TaskStatus represents the progress state of a task.
type TaskStatus string

// Possible task status values. These are the persisted names.
const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// taskStatusByName maps lower-cased input to a status.
var taskStatusByName = map[string]TaskStatus{
	"pending":     TaskStatusPending,
	"in_progress": TaskStatusInProgress,
	"completed":   TaskStatusCompleted,
}

// Title length bounds, in characters.
const (
	TitleMinLength = 3
	TitleMaxLength = 100
)

// DateLayout is the wire and storage format of a due date.
const DateLayout = "2006-01-02"

// ParseTaskStatus converts a case-insensitive status name to a TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status, ok := taskStatusByName[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskStatus, s)
	}
	return status, nil
}

// TaskStatuses lists every valid status in declaration order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted}
}

// StatusChoices renders the valid statuses in lower case for messages,
// e.g. "pending, in_progress, completed".
func StatusChoices() string {
	statuses := TaskStatuses()
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.Lower())
	}
	return strings.Join(names, ", ")
}

// Valid reports whether s is one of the declared statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// Lower returns the lower-case REST representation, e.g. "in_progress".
func (s TaskStatus) Lower() string {
	return strings.ToLower(string(s))
}

// ParseTaskID parses a transport-level identifier into the store key.
func ParseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// FormatTaskID renders a store key as the opaque transport identifier.
func FormatTaskID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ParseDate parses a YYYY-MM-DD calendar date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q must be YYYY-MM-DD", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate renders a due date as YYYY-MM-DD. The zero time renders as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// TruncateToDate drops the time-of-day, keeping the calendar date in UTC.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Task is a unit of work with a title, optional description, status and due date.
type Task struct {
	ID          int64
	Title       string
	Description string
	Status      TaskStatus
	DueDate     time.Time
}

// NewTask creates a validated, not yet persisted Task.
func NewTask(title, description string, status TaskStatus, dueDate time.Time) (*Task, error) {
	task := &Task{
		Title:       title,
		Description: description,
		Status:      status,
		DueDate:     TruncateToDate(dueDate),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks every field constraint and returns ValidationErrors listing
// each failure, or nil.
func (t *Task) Validate() error {
	var errs ValidationErrors

	if fe := validateTitle(t.Title); fe != nil {
		errs = append(errs, *fe)
	}

	if t.Status == "" {
		errs = append(errs, FieldError{Field: "status", Message: "is required"})
	} else if !t.Status.Valid() {
		errs = append(errs, FieldError{Field: "status", Message: "must be one of " + StatusChoices()})
	}

	if t.DueDate.IsZero() {
		errs = append(errs, FieldError{Field: "dueDate", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply overwrites the fields present in p.
func (t *Task) Apply(p TaskPatch) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.DueDate != nil {
		t.DueDate = TruncateToDate(*p.DueDate)
	}
}

// TaskPatch carries the fields of a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	DueDate     *time.Time
}

// Validate checks the constraints of the fields that are present.
func (p TaskPatch) Validate() error {
	var errs ValidationErrors

	if p.Title != nil {
		if fe := validateTitle(*p.Title); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		errs = append(errs, FieldError{Field: "status", Message: "must be one of " + StatusChoices()})
	}
	if p.DueDate != nil && p.DueDate.IsZero() {
		errs = append(errs, FieldError{Field: "dueDate", Message: "must be a valid date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.DueDate == nil
}

func validateTitle(title string) *FieldError {
	n := utf8.RuneCountInString(title)
	switch {
	case n == 0:
		return &FieldError{Field: "title", Message: "is required"}
	case n < TitleMinLength || n > TitleMaxLength:
		return &FieldError{
			Field:   "title",
			Message: fmt.Sprintf("must be between %d and %d characters", TitleMinLength, TitleMaxLength),
		}
	default:
		return nil
	}
}
