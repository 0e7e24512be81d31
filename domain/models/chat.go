package models

import (
	"time"

	"github.com/google/uuid"
)

type Chat struct {
	ID        uuid.UUID  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title     string     `gorm:"not null"`
	JobID     *uuid.UUID `gorm:"type:uuid;index"` // มีค่าเมื่อสร้างจากการสมัคร job
	CreatedBy uuid.UUID  `gorm:"type:uuid"`
	Members   []ChatMember `gorm:"foreignKey:ChatID"`
	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"index"`
}

func (Chat) TableName() string {
	return "chats"
}

func (c *Chat) MemberIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.Members))
	for _, m := range c.Members {
		ids = append(ids, m.UserID)
	}
	return ids
}

func (c *Chat) HasMember(userID uuid.UUID) bool {
	for _, m := range c.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

type ChatMember struct {
	ChatID   uuid.UUID `gorm:"primaryKey;type:uuid"`
	UserID   uuid.UUID `gorm:"primaryKey;type:uuid;index"`
	JoinedAt time.Time `gorm:"autoCreateTime"`
}

func (ChatMember) TableName() string {
	return "chat_members"
}
