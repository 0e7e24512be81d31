package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	JobStatusOpen       = "open"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
)

type Job struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title       string    `gorm:"not null"`
	Site        string    `gorm:"not null"`
	StartDate   *time.Time
	EndDate     *time.Time
	Schedule    string         // "Jan 2, 2026 - Jan 5, 2026" คำนวณจาก StartDate/EndDate ทุกครั้งที่เขียน
	Status      string         `gorm:"size:20;default:'open';index"`
	Location    string
	PayRate     string
	Description string         `gorm:"type:text"`
	ImageURL    string
	ImageKey    string
	Skills      pq.StringArray `gorm:"type:text[]"`
	Latitude    *float64
	Longitude   *float64
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Owner       *User     `gorm:"foreignKey:OwnerID"`
	IsPrivate   bool      `gorm:"default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Job) TableName() string {
	return "jobs"
}

func (j *Job) IsOwnedBy(userID uuid.UUID) bool {
	return j.OwnerID == userID
}

// VisibleTo private job เห็นได้เฉพาะเจ้าของ
func (j *Job) VisibleTo(userID uuid.UUID) bool {
	return !j.IsPrivate || j.OwnerID == userID
}

// FormatSchedule สร้าง display string จากช่วงวันที่
func FormatSchedule(start, end *time.Time) string {
	const layout = "Jan 2, 2006"
	switch {
	case start != nil && end != nil:
		return start.Format(layout) + " - " + end.Format(layout)
	case start != nil:
		return "From " + start.Format(layout)
	case end != nil:
		return "Until " + end.Format(layout)
	default:
		return ""
	}
}

// JobWorker roster ของ job (worker ที่ถูก accept แล้ว)
type JobWorker struct {
	JobID     uuid.UUID `gorm:"primaryKey;type:uuid"`
	UserID    uuid.UUID `gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time
}

func (JobWorker) TableName() string {
	return "job_workers"
}
