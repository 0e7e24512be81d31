package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"buildboard/domain/models"
)

type JobFilter struct {
	Status  string
	OwnerID *uuid.UUID
	Skill   string
	Query   string // ค้นใน title, site, location
	// ViewerID private job จะติดมาด้วยเฉพาะเมื่อ viewer เป็นเจ้าของ
	ViewerID uuid.UUID
}

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	// UpdateFields เขียนเฉพาะ column ที่อยู่ใน fields (key = column name)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter JobFilter, offset, limit int) ([]*models.Job, int64, error)

	// AddWorker idempotent: pair ที่มีอยู่แล้วไม่ถือเป็น error
	AddWorker(ctx context.Context, jobID, userID uuid.UUID) error
	ListWorkerIDs(ctx context.Context, jobID uuid.UUID) ([]uuid.UUID, error)

	// MarkStarted open -> in_progress เมื่อ start_date <= now
	MarkStarted(ctx context.Context, now time.Time) (int64, error)
	// MarkCompleted ที่ยังไม่ completed -> completed เมื่อ end_date < now
	MarkCompleted(ctx context.Context, now time.Time) (int64, error)
}
