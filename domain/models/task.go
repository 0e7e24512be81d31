package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TaskPending    = "pending"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
	TaskCancelled  = "cancelled"
)

type Task struct {
	ID          uuid.UUID  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	JobID       *uuid.UUID `gorm:"type:uuid"`
	Title       string     `gorm:"not null"`
	Description string
	Status      string `gorm:"default:'pending'"`
	Priority    int    `gorm:"default:1"`
	DueDate     *time.Time
	AssigneeID  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Task) TableName() string {
	return "tasks"
}
