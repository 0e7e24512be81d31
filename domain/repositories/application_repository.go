package repositories

import (
	"context"

	"github.com/google/uuid"

	"buildboard/domain/models"
)

type ApplicationRepository interface {
	// CreateIfAbsent conflict บน (job_id, worker_id) = no-op, created=false
	CreateIfAbsent(ctx context.Context, app *models.Application) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	GetByJobAndWorker(ctx context.Context, jobID, workerID uuid.UUID) (*models.Application, error)
	GetByChatID(ctx context.Context, chatID uuid.UUID) (*models.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	// ListByUser application ที่ user เป็น worker หรือ manager
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]*models.Application, error)
}
