package services

import (
	"context"

	"github.com/google/uuid"

	"buildboard/domain/models"
)

type ApplicationService interface {
	// ApplyToJob idempotent: เรียกซ้ำได้ chat เดิม และ application เดิม
	ApplyToJob(ctx context.Context, jobID, workerID uuid.UUID) (*models.Application, error)
	SetApplicationStatus(ctx context.Context, chatID uuid.UUID, status string, actorID uuid.UUID) (*models.Application, error)
	GetByChat(ctx context.Context, chatID, viewerID uuid.UUID) (*models.Application, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*models.Application, error)
	ListForJob(ctx context.Context, jobID, ownerID uuid.UUID) ([]*models.Application, error)
}
