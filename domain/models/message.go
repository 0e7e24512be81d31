package models

import (
	"time"

	"github.com/google/uuid"
)

// Message AuthorID เป็น nil = system message
type Message struct {
	ID        uuid.UUID  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ChatID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_message_chat_created,priority:1"`
	AuthorID  *uuid.UUID `gorm:"type:uuid"`
	Body      string     `gorm:"type:text;not null"`
	CreatedAt time.Time  `gorm:"index:idx_message_chat_created,priority:2"`
}

func (Message) TableName() string {
	return "messages"
}

func (m *Message) IsSystem() bool {
	return m.AuthorID == nil
}
