package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Description string     `json:"description" validate:"omitempty,max=1000"`
	Priority    int        `json:"priority" validate:"omitempty,min=1,max=5"`
	DueDate     *time.Time `json:"dueDate"`
	AssigneeID  *uuid.UUID `json:"assigneeId"`
	JobID       *uuid.UUID `json:"jobId"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	Status      *string    `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Priority    *int       `json:"priority" validate:"omitempty,min=1,max=5"`
	DueDate     *time.Time `json:"dueDate"`
	AssigneeID  *uuid.UUID `json:"assigneeId"`
}

type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"projectId"`
	JobID       *uuid.UUID `json:"jobId,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    int        `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	AssigneeID  *uuid.UUID `json:"assigneeId"`
	CreatedBy   uuid.UUID  `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
