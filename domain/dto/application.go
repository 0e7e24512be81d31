package dto

import (
	"time"

	"github.com/google/uuid"
)

type ApplyRequest struct {
	JobID uuid.UUID `json:"jobId" validate:"required"`
}

type ApplyResponse struct {
	ChatID      uuid.UUID            `json:"chatId"`
	Application *ApplicationResponse `json:"application"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined"`
}

type ApplicationResponse struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"jobId"`
	ChatID    uuid.UUID `json:"chatId"`
	WorkerID  uuid.UUID `json:"workerId"`
	ManagerID uuid.UUID `json:"managerId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
