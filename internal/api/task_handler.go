package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/camelcase/task-api/internal/api/shared"
	"github.com/camelcase/task-api/internal/platform/logger"
	"github.com/camelcase/task-api/internal/service"
)

// TaskHandler serves the /tasks resource.
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// Routes mounts the task endpoints on r.
func (h *TaskHandler) Routes(r chi.Router) {
	r.Get("/", h.ListTasks)
	r.Post("/", h.CreateTask)
	r.Get("/{id}", h.GetTask)
	r.Put("/{id}", h.UpdateTask)
	r.Delete("/{id}", h.DeleteTask)
}

// ListTasks handles GET /tasks?status=&page=&size=.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", DefaultPage)
	if err != nil {
		respondValidationError(w, r, err, err.Error())
		return
	}
	size, err := queryInt(r, "size", DefaultPageSize)
	if err != nil {
		respondValidationError(w, r, err, err.Error())
		return
	}

	result, err := h.tasks.ListTasks(r.Context(), page, size, r.URL.Query().Get("status"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, pageToResponse(result))
}

// CreateTask handles POST /tasks. It answers 200 with the stored task.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		respondValidationError(w, r, err, "malformed JSON request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		respondValidationError(w, r, err)
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), req.Input())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("task created via REST", slog.Int64("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// GetTask handles GET /tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	task, err := h.tasks.GetTask(r.Context(), id)
	if err != nil {
		handleTaskError(w, r, id, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PUT /tasks/{id}. Only the fields present in the body change.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		respondValidationError(w, r, err, "malformed JSON request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		respondValidationError(w, r, err)
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), id, req.Input())
	if err != nil {
		handleTaskError(w, r, id, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.tasks.DeleteTask(r.Context(), id); err != nil {
		handleTaskError(w, r, id, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: true})
}
