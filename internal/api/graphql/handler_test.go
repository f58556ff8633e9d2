package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camelcase/task-api/internal/mocks"
	"github.com/camelcase/task-api/internal/platform/memory"
	"github.com/camelcase/task-api/internal/service"
	"github.com/camelcase/task-api/internal/store"
)

func newTestHandler(t *testing.T, tasks store.TaskStore) *Handler {
	t.Helper()
	svc, err := service.NewTaskService(tasks, nil)
	require.NoError(t, err)
	h, err := NewHandler(svc, nil)
	require.NoError(t, err)
	return h
}

type gqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message    string                 `json:"message"`
		Extensions map[string]interface{} `json:"extensions"`
	} `json:"errors"`
}

func exec(t *testing.T, h *Handler, query string, vars map[string]interface{}) gqlResponse {
	t.Helper()
	resp := h.schema.Exec(context.Background(), query, "", vars)
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	var out gqlResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

const createMutation = `mutation($in: TaskCreateRequestInput!) {
  create(taskCreateRequestInput: $in) { id title description status dueDate }
}`

func TestCreateQueryAndPage(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t, memory.NewTaskStore(nil))

	out := exec(t, h, createMutation, map[string]interface{}{
		"in": map[string]interface{}{"title": "Write docs", "status": "IN_PROGRESS", "dueDate": "2025-06-01"},
	})
	require.Empty(t, out.Errors)
	assert.JSONEq(t,
		`{"id":"1","title":"Write docs","description":null,"status":"IN_PROGRESS","dueDate":"2025-06-01"}`,
		string(out.Data["create"]))

	out = exec(t, h, `{ task(id: "1") { title status } }`, nil)
	require.Empty(t, out.Errors)
	assert.JSONEq(t, `{"title":"Write docs","status":"IN_PROGRESS"}`, string(out.Data["task"]))

	out = exec(t, h, `{ taskPage { totalPages totalItems tasks { id } } }`, nil)
	require.Empty(t, out.Errors)
	assert.JSONEq(t, `{"totalPages":1,"totalItems":1,"tasks":[{"id":"1"}]}`, string(out.Data["taskPage"]))

	out = exec(t, h, `{ taskPage(taskStatus: COMPLETED) { totalItems } countTasks(status: "in_progress") }`, nil)
	require.Empty(t, out.Errors)
	assert.JSONEq(t, `{"totalItems":0}`, string(out.Data["taskPage"]))
	assert.JSONEq(t, `1`, string(out.Data["countTasks"]))
}

func TestUpdateIsPartial(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t, memory.NewTaskStore(nil))

	out := exec(t, h, createMutation, map[string]interface{}{
		"in": map[string]interface{}{"title": "Write docs", "description": "keep", "status": "PENDING", "dueDate": "2025-06-01"},
	})
	require.Empty(t, out.Errors)

	out = exec(t, h, `mutation { update(id: "1", taskUpdateRequestInput: {status: COMPLETED}) { title description status } }`, nil)
	require.Empty(t, out.Errors)
	assert.JSONEq(t, `{"title":"Write docs","description":"keep","status":"COMPLETED"}`, string(out.Data["update"]))
}

func TestDeleteReportsMissingAsFalse(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t, memory.NewTaskStore(nil))

	out := exec(t, h, createMutation, map[string]interface{}{
		"in": map[string]interface{}{"title": "Write docs", "status": "PENDING", "dueDate": "2025-06-01"},
	})
	require.Empty(t, out.Errors)

	out = exec(t, h, `mutation { delete(id: "1") { success } }`, nil)
	require.Empty(t, out.Errors)
	assert.JSONEq(t, `{"success":true}`, string(out.Data["delete"]))

	out = exec(t, h, `mutation { deleteTask(id: "1") { success } }`, nil)
	require.Empty(t, out.Errors)
	assert.JSONEq(t, `{"success":false}`, string(out.Data["deleteTask"]))
}

func TestResolverErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		storeErr error
		query    string
		wantMsg  string
		wantCode string
	}{
		{
			name:     "not found",
			storeErr: store.ErrTaskNotFound,
			query:    `{ task(id: "9") { id } }`,
			wantMsg:  "Task with ID 9 not found",
			wantCode: CodeNotFound,
		},
		{
			name:     "invalid id",
			query:    `{ task(id: "x") { id } }`,
			wantMsg:  "Validation error: id: must be a positive integer",
			wantCode: CodeBadRequest,
		},
		{
			name:     "unknown count status",
			query:    `{ countTasks(status: "CANCELLED") }`,
			wantMsg:  "Validation error: status: must be one of pending, in_progress, completed",
			wantCode: CodeBadRequest,
		},
		{
			name:     "missing fields on create",
			query:    `mutation { create(taskCreateRequestInput: {description: "x"}) { id } }`,
			wantMsg:  "Validation error: title: is required; status: is required; dueDate: is required",
			wantCode: CodeBadRequest,
		},
		{
			name:     "store failure is sanitized",
			storeErr: errors.New("connection reset by postgres://u:p@db"),
			query:    `{ task(id: "1") { id } }`,
			wantMsg:  "Internal server error",
			wantCode: CodeInternal,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := newTestHandler(t, &mocks.MockTaskStore{Err: tc.storeErr})

			out := exec(t, h, tc.query, nil)

			require.Len(t, out.Errors, 1)
			assert.Equal(t, tc.wantMsg, out.Errors[0].Message)
			assert.Equal(t, tc.wantCode, out.Errors[0].Extensions["code"])
		})
	}
}

func TestNewHandlerParsesSchema(t *testing.T) {
	t.Parallel()
	svc, err := service.NewTaskService(memory.NewTaskStore(nil), nil)
	require.NoError(t, err)

	h, err := NewHandler(svc, nil)

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.schema)
}

func TestTaskPageArguments(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t, memory.NewTaskStore(nil))
	for _, title := range []string{"First task", "Second task", "Third task"} {
		out := exec(t, h, createMutation, map[string]interface{}{
			"in": map[string]interface{}{"title": title, "status": "PENDING", "dueDate": "2025-06-01"},
		})
		require.Empty(t, out.Errors)
	}

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "defaults",
			query: `{ taskPage { totalPages totalItems tasks { id } } }`,
			want:  `{"totalPages":1,"totalItems":3,"tasks":[{"id":"1"},{"id":"2"},{"id":"3"}]}`,
		},
		{
			name:  "explicit page and size",
			query: `{ taskPage(page: 2, size: 2) { totalPages totalItems tasks { id } } }`,
			want:  `{"totalPages":2,"totalItems":3,"tasks":[{"id":"3"}]}`,
		},
		{
			name:  "largest page and size",
			query: `{ taskPage(page: 2147483647, size: 2147483647) { totalPages totalItems tasks { id } } }`,
			want:  `{"totalPages":1,"totalItems":3,"tasks":[]}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := exec(t, h, tc.query, nil)
			require.Empty(t, out.Errors)
			assert.JSONEq(t, tc.want, string(out.Data["taskPage"]))
		})
	}
}

func TestHTTPEndpoints(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t, memory.NewTaskStore(nil))

	body := `{"query":"{ taskPage(page: 1, size: 5) { totalItems } }"}`
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":{"taskPage":{"totalItems":0}}}`, rr.Body.String())

	rr = httptest.NewRecorder()
	h.Schema(rr, httptest.NewRequest(http.MethodGet, "/graphql/schema", nil))
	assert.Contains(t, rr.Body.String(), "enum TaskStatusEnum")

	rr = httptest.NewRecorder()
	h.GraphiQL(rr, httptest.NewRequest(http.MethodGet, "/graphiql", nil))
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "/graphql")
}

// failingWriter is a ResponseWriter whose body writes always fail.
type failingWriter struct {
	header http.Header
}

func (w *failingWriter) Header() http.Header { return w.header }

func (w *failingWriter) Write([]byte) (int, error) { return 0, errors.New("connection closed") }

func (w *failingWriter) WriteHeader(int) {}

func TestWriteFailuresAreLogged(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc, err := service.NewTaskService(memory.NewTaskStore(nil), nil)
	require.NoError(t, err)
	h, err := NewHandler(svc, logger)
	require.NoError(t, err)

	h.Schema(&failingWriter{header: http.Header{}}, httptest.NewRequest(http.MethodGet, "/graphql/schema", nil))
	h.GraphiQL(&failingWriter{header: http.Header{}}, httptest.NewRequest(http.MethodGet, "/graphiql", nil))

	assert.Contains(t, buf.String(), "Failed to write GraphQL schema response")
	assert.Contains(t, buf.String(), "Failed to write GraphiQL page")
	assert.Contains(t, buf.String(), "connection closed")
}
