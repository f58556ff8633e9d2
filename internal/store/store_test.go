package store_test

import (
	"errors"
	"math"
	"testing"

	"github.com/camelcase/task-api/internal/domain"
	"github.com/camelcase/task-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestErrorDefinitions(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.Is(store.ErrTaskNotFound, store.ErrNotFound))
	assert.True(t, store.IsNotFoundError(store.ErrTaskNotFound))
	assert.Equal(t, "entity not found: task", store.ErrTaskNotFound.Error())
	assert.True(t, errors.Is(store.ErrInvalidPage, domain.ErrInvalidArgument))
	assert.False(t, store.IsNotFoundError(store.ErrInvalidEntity))
}

func TestPageRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		req        store.PageRequest
		wantErr    bool
		wantOffset int64
		overflow   bool
	}{
		{name: "first page", req: store.PageRequest{Number: 1, Size: 10}, wantOffset: 0},
		{name: "third page", req: store.PageRequest{Number: 3, Size: 2}, wantOffset: 4},
		{name: "offset overflows", req: store.PageRequest{Number: 1 << 62, Size: 4}, overflow: true},
		{name: "largest page and size", req: store.PageRequest{Number: math.MaxInt, Size: math.MaxInt}, overflow: true},
		{name: "zero page", req: store.PageRequest{Number: 0, Size: 10}, wantErr: true},
		{name: "zero size", req: store.PageRequest{Number: 1, Size: 0}, wantErr: true},
		{name: "negative", req: store.PageRequest{Number: -1, Size: -1}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, store.ErrInvalidPage)
				return
			}
			assert.NoError(t, err)
			offset, ok := tc.req.Offset()
			assert.Equal(t, !tc.overflow, ok)
			assert.Equal(t, tc.wantOffset, offset)
		})
	}
}

func TestPageRequestCapacity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		req   store.PageRequest
		total int64
		want  int
	}{
		{name: "full page", req: store.PageRequest{Number: 1, Size: 10}, total: 25, want: 10},
		{name: "partial last page", req: store.PageRequest{Number: 3, Size: 10}, total: 25, want: 5},
		{name: "past the end", req: store.PageRequest{Number: 4, Size: 10}, total: 25, want: 0},
		{name: "huge size", req: store.PageRequest{Number: 1, Size: 1 << 46}, total: 3, want: 3},
		{name: "offset overflows", req: store.PageRequest{Number: 1 << 62, Size: 4}, total: 3, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.req.Capacity(tc.total))
		})
	}
}

func TestNewPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total     int64
		size      int
		wantPages int
	}{
		{total: 0, size: 10, wantPages: 0},
		{total: 1, size: 10, wantPages: 1},
		{total: 10, size: 10, wantPages: 1},
		{total: 11, size: 10, wantPages: 2},
		{total: 5, size: 2, wantPages: 3},
		{total: 3, size: math.MaxInt, wantPages: 1},
	}

	for _, tc := range tests {
		page := store.NewPage(store.PageRequest{Number: 1, Size: tc.size}, nil, tc.total)
		assert.Equal(t, tc.wantPages, page.TotalPages, "total=%d size=%d", tc.total, tc.size)
		assert.Equal(t, tc.total, page.TotalItems)
		assert.NotNil(t, page.Items)
	}
}

func TestValidateStatusFilter(t *testing.T) {
	t.Parallel()

	assert.NoError(t, store.ValidateStatusFilter(nil))
	ok := domain.TaskStatusCompleted
	assert.NoError(t, store.ValidateStatusFilter(&ok))
	bad := domain.TaskStatus("CANCELLED")
	assert.ErrorIs(t, store.ValidateStatusFilter(&bad), domain.ErrInvalidArgument)
}
