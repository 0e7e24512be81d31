package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"buildboard/domain/models"
)

type ChatRepository interface {
	// Create สร้าง chat พร้อม members ใน chat.Members
	Create(ctx context.Context, chat *models.Chat) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Chat, error)
	// FindDirectForJob หา chat ของ job ที่มีสมาชิกเป็น a กับ b เท่านั้น
	FindDirectForJob(ctx context.Context, jobID, a, b uuid.UUID) (*models.Chat, error)
	// AddMember idempotent
	AddMember(ctx context.Context, chatID, userID uuid.UUID) error
	ListByMember(ctx context.Context, userID uuid.UUID) ([]*models.Chat, error)
	Touch(ctx context.Context, chatID uuid.UUID, at time.Time) error
}

type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	// ListByChat เรียงตาม (created_at, id) จากเก่าไปใหม่
	ListByChat(ctx context.Context, chatID uuid.UUID) ([]*models.Message, error)
}
