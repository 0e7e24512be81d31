package services

import (
	"context"
	"io"

	"github.com/google/uuid"

	"buildboard/domain/dto"
	"buildboard/domain/models"
)

type JobService interface {
	CreateJob(ctx context.Context, ownerID uuid.UUID, req *dto.CreateJobRequest) (*models.Job, error)
	GetJob(ctx context.Context, id, viewerID uuid.UUID) (*models.Job, error)
	ListJobs(ctx context.Context, filter *dto.JobFilterRequest, viewerID uuid.UUID) ([]*models.Job, int64, error)
	UpdateJob(ctx context.Context, id, actorID uuid.UUID, req *dto.UpdateJobRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, id, actorID uuid.UUID) error
	SetJobImage(ctx context.Context, id, actorID uuid.UUID, file io.Reader, filename, contentType string) (*models.Job, error)
	ListWorkers(ctx context.Context, jobID, viewerID uuid.UUID) ([]*models.User, error)

	// AdvanceLifecycle เลื่อน status ตามวันที่ (เรียกจาก scheduler)
	AdvanceLifecycle(ctx context.Context) error
}
