package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Profile เอกสาร free-form ต่อ user (bio, skills, images, ...) เก็บเป็น jsonb
type Profile struct {
	UserID    uuid.UUID      `gorm:"primaryKey;type:uuid"`
	Document  datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt time.Time
}

func (Profile) TableName() string {
	return "profiles"
}
