package dto

import (
	"time"

	"github.com/google/uuid"

	"todo-tracker-api/internal/domain"
)

// CreateTodoRequest represents the request to create a new todo
type CreateTodoRequest struct {
	Title string `json:"title" binding:"required,min=1,max=255" example:"Buy milk"`
}

// UpdateTodoRequest represents a partial update. All fields are optional;
// only fields present in the request are applied, and only title/completed
// transitions are audited.
type UpdateTodoRequest struct {
	Title     *string `json:"title" binding:"omitempty,min=1,max=255" example:"Buy oat milk"`
	Completed *bool   `json:"completed,omitempty" example:"true"`
	Position  *int    `json:"position,omitempty" binding:"omitempty,min=0"`
	ColumnID  *string `json:"columnId,omitempty" binding:"omitempty,max=100" example:"in-progress"`
}

// ReorderRequest carries the complete ordered sequence of todo ids
type ReorderRequest struct {
	TodoIDs []uuid.UUID `json:"todoIds" binding:"required"`
}

// TodoResponse represents a todo returned to clients
type TodoResponse struct {
	ID          uuid.UUID            `json:"id"`
	Title       string               `json:"title"`
	Completed   bool                 `json:"completed"`
	Position    int                  `json:"position"`
	ColumnID    *string              `json:"columnId,omitempty"`
	Attachments []AttachmentResponse `json:"attachments,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// ChangeResponse represents one audit log entry returned to clients
type ChangeResponse struct {
	ID            uuid.UUID         `json:"id"`
	TodoID        uuid.UUID         `json:"todoId"`
	ChangeType    domain.ChangeType `json:"changeType"`
	PreviousValue *string           `json:"previousValue,omitempty"`
	NewValue      *string           `json:"newValue,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// ToTodoResponse converts a Todo domain model to its response DTO
func ToTodoResponse(todo *domain.Todo) *TodoResponse {
	resp := &TodoResponse{
		ID:        todo.ID,
		Title:     todo.Title,
		Completed: todo.Completed,
		Position:  todo.Position,
		ColumnID:  todo.ColumnID,
		CreatedAt: todo.CreatedAt,
		UpdatedAt: todo.UpdatedAt,
	}
	if len(todo.Attachments) > 0 {
		resp.Attachments = make([]AttachmentResponse, 0, len(todo.Attachments))
		for i := range todo.Attachments {
			resp.Attachments = append(resp.Attachments, *ToAttachmentResponse(&todo.Attachments[i]))
		}
	}
	return resp
}

// ToTodoResponses converts a slice of Todo domain models
func ToTodoResponses(todos []*domain.Todo) []*TodoResponse {
	responses := make([]*TodoResponse, 0, len(todos))
	for _, todo := range todos {
		responses = append(responses, ToTodoResponse(todo))
	}
	return responses
}

// ToChangeResponse converts a TodoChange domain model to its response DTO
func ToChangeResponse(change *domain.TodoChange) *ChangeResponse {
	return &ChangeResponse{
		ID:            change.ID,
		TodoID:        change.TodoID,
		ChangeType:    change.ChangeType,
		PreviousValue: change.PreviousValue,
		NewValue:      change.NewValue,
		CreatedAt:     change.CreatedAt,
	}
}

// ToChangeResponses converts a slice of TodoChange domain models
func ToChangeResponses(changes []*domain.TodoChange) []*ChangeResponse {
	responses := make([]*ChangeResponse, 0, len(changes))
	for _, change := range changes {
		responses = append(responses, ToChangeResponse(change))
	}
	return responses
}
