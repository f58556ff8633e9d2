package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    TaskStatus
		wantErr bool
	}{
		{input: "pending", want: TaskStatusPending},
		{input: "PENDING", want: TaskStatusPending},
		{input: "In_Progress", want: TaskStatusInProgress},
		{input: "IN_PROGRESS", want: TaskStatusInProgress},
		{input: " completed ", want: TaskStatusCompleted},
		{input: "CANCELLED", wantErr: true},
		{input: "in progress", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseTaskStatus(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTaskStatus)
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTaskStatusLower(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pending", TaskStatusPending.Lower())
	assert.Equal(t, "in_progress", TaskStatusInProgress.Lower())
	assert.Equal(t, "completed", TaskStatusCompleted.Lower())
	assert.False(t, TaskStatus("DONE").Valid())
	assert.Len(t, TaskStatuses(), 3)
	assert.Equal(t, "pending, in_progress, completed", StatusChoices())
}

func TestParseTaskID(t *testing.T) {
	t.Parallel()

	id, err := ParseTaskID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "42", FormatTaskID(id))

	for _, bad := range []string{"", "abc", "0", "-1", "1.5"} {
		_, err := ParseTaskID(bad)
		assert.ErrorIs(t, err, ErrInvalidID, "input %q", bad)
		assert.ErrorIs(t, err, ErrInvalidArgument, "input %q", bad)
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2025-06-01", FormatDate(d))
	assert.Equal(t, "", FormatDate(time.Time{}))

	_, err = ParseDate("06/01/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewTask(t *testing.T) {
	t.Parallel()

	due := time.Date(2025, time.June, 1, 15, 30, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		task, err := NewTask("Write report", "quarterly", TaskStatusPending, due)
		require.NoError(t, err)
		assert.Equal(t, int64(0), task.ID)
		assert.Equal(t, "Write report", task.Title)
		assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), task.DueDate)
	})

	t.Run("collects every field error", func(t *testing.T) {
		task, err := NewTask("ab", "", "", time.Time{})
		require.Error(t, err)
		assert.Nil(t, task)
		assert.True(t, errors.Is(err, ErrValidation))

		var verrs ValidationErrors
		require.True(t, errors.As(err, &verrs))
		require.Len(t, verrs, 3)
		assert.Equal(t, "title", verrs[0].Field)
		assert.Equal(t, "status", verrs[1].Field)
		assert.Equal(t, "dueDate", verrs[2].Field)
		assert.Equal(t, "title: must be between 3 and 100 characters", verrs.Details()[0])
	})
}

func TestTaskValidateTitleBounds(t *testing.T) {
	t.Parallel()

	due := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{name: "empty", title: "", wantErr: true},
		{name: "too short", title: "ab", wantErr: true},
		{name: "min", title: "abc"},
		{name: "max", title: strings.Repeat("x", TitleMaxLength)},
		{name: "too long", title: strings.Repeat("x", TitleMaxLength+1), wantErr: true},
		{name: "multibyte counted as characters", title: "日本語"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			task := &Task{Title: tc.title, Status: TaskStatusPending, DueDate: due}
			err := task.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTaskApply(t *testing.T) {
	t.Parallel()

	due := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	task := &Task{ID: 1, Title: "Original", Description: "keep me", Status: TaskStatusPending, DueDate: due}

	status := TaskStatusCompleted
	task.Apply(TaskPatch{Status: &status})

	assert.Equal(t, "Original", task.Title)
	assert.Equal(t, "keep me", task.Description)
	assert.Equal(t, TaskStatusCompleted, task.Status)
	assert.Equal(t, due, task.DueDate)

	title := "Renamed"
	newDue := due.Add(36 * time.Hour)
	task.Apply(TaskPatch{Title: &title, DueDate: &newDue})
	assert.Equal(t, "Renamed", task.Title)
	assert.Equal(t, time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC), task.DueDate)
}

func TestTaskPatchValidate(t *testing.T) {
	t.Parallel()

	assert.True(t, TaskPatch{}.IsEmpty())
	assert.NoError(t, TaskPatch{}.Validate())

	short := "ab"
	err := TaskPatch{Title: &short}.Validate()
	assert.ErrorIs(t, err, ErrValidation)

	bogus := TaskStatus("DONE")
	err = TaskPatch{Status: &bogus}.Validate()
	assert.ErrorIs(t, err, ErrValidation)

	ok := "Fine title"
	assert.NoError(t, TaskPatch{Title: &ok}.Validate())
	assert.False(t, TaskPatch{Title: &ok}.IsEmpty())
}
