package api

import (
	"github.com/camelcase/task-api/internal/domain"
	"github.com/camelcase/task-api/internal/service"
	"github.com/camelcase/task-api/internal/store"
)

// LoginRequest defines the payload for the login endpoint.
// It is accepted as JSON or as a urlencoded form.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	// AccessToken is the bearer token for subsequent requests
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the token lifetime in seconds
	ExpiresIn int64 `json:"expires_in"`
}

// CreateTaskRequest defines the payload for creating a task. Required fields
// are enforced by the domain so that defaulting can fill them when enabled.
type CreateTaskRequest struct {
	Title       *string `json:"title,omitempty"       validate:"omitempty,min=3,max=100"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"      validate:"omitempty,task_status"`
	DueDate     *string `json:"dueDate,omitempty"     validate:"omitempty,datetime=2006-01-02"`
}

// Input converts the request into service input.
func (r CreateTaskRequest) Input() service.CreateTaskInput {
	return service.CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		DueDate:     r.DueDate,
	}
}

// UpdateTaskRequest defines the payload for a partial task update.
// Omitted fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"       validate:"omitempty,min=3,max=100"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"      validate:"omitempty,task_status"`
	DueDate     *string `json:"dueDate,omitempty"     validate:"omitempty,datetime=2006-01-02"`
}

// Input converts the request into service input.
func (r UpdateTaskRequest) Input() service.UpdateTaskInput {
	return service.UpdateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		DueDate:     r.DueDate,
	}
}

// TaskResponse is the REST representation of a task.
type TaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate"`
}

// TaskListResponse is one page of tasks.
type TaskListResponse struct {
	Tasks      []TaskResponse `json:"tasks"`
	TotalPages int            `json:"totalPages"`
	TotalItems int64          `json:"totalItems"`
}

// SuccessResponse acknowledges an operation without a body of its own.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// taskToResponse converts a domain task to its REST representation.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          domain.FormatTaskID(task.ID),
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status.Lower(),
		DueDate:     domain.FormatDate(task.DueDate),
	}
}

// pageToResponse converts a store page to its REST representation.
func pageToResponse(page *store.Page) TaskListResponse {
	tasks := make([]TaskResponse, 0, len(page.Items))
	for _, task := range page.Items {
		tasks = append(tasks, taskToResponse(task))
	}
	return TaskListResponse{
		Tasks:      tasks,
		TotalPages: page.TotalPages,
		TotalItems: page.TotalItems,
	}
}
