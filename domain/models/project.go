package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProjectActive   = "active"
	ProjectArchived = "archived"
)

type Project struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"not null"`
	Description string    `gorm:"type:text"`
	Status      string    `gorm:"size:20;default:'active'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Project) TableName() string {
	return "projects"
}
