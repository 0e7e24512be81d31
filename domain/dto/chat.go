package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChatRequest struct {
	Title     string      `json:"title" validate:"required,min=1,max=200"`
	MemberIDs []uuid.UUID `json:"memberIds" validate:"omitempty,max=50"`
}

// SendMessageRequest body ว่างหรือมีแต่ whitespace ถูกตรวจที่ service
type SendMessageRequest struct {
	Body string `json:"body" validate:"max=4000"`
}

type ChatResponse struct {
	ID        uuid.UUID   `json:"id"`
	Title     string      `json:"title"`
	JobID     *uuid.UUID  `json:"jobId,omitempty"`
	CreatedBy uuid.UUID   `json:"createdBy"`
	MemberIDs []uuid.UUID `json:"memberIds"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type MessageResponse struct {
	ID        uuid.UUID  `json:"id"`
	ChatID    uuid.UUID  `json:"chatId"`
	AuthorID  *uuid.UUID `json:"authorId"`
	System    bool       `json:"system"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"createdAt"`
}
