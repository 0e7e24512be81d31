package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationDeclined = "declined"
)

// Application หนึ่ง worker สมัครหนึ่ง job ได้ครั้งเดียว (unique job_id + worker_id)
type Application struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	JobID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_application_job_worker"`
	WorkerID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_application_job_worker"`
	ChatID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ManagerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    string    `gorm:"size:20;default:'pending'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Application) TableName() string {
	return "applications"
}

func (a *Application) IsDecided() bool {
	return a.Status == ApplicationAccepted || a.Status == ApplicationDeclined
}

func IsApplicationDecision(status string) bool {
	return status == ApplicationAccepted || status == ApplicationDeclined
}
