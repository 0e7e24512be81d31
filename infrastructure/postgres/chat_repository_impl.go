package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"buildboard/domain/models"
	"buildboard/domain/repositories"
)

type ChatRepositoryImpl struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) repositories.ChatRepository {
	return &ChatRepositoryImpl{db: db}
}

// Create บันทึก chat และ chat.Members (gorm association) ในคำสั่งเดียว
func (r *ChatRepositoryImpl) Create(ctx context.Context, chat *models.Chat) error {
	stampMembers(chat, time.Now())
	return r.db.WithContext(ctx).Create(chat).Error
}

// stampMembers ใส่ JoinedAt ให้ member ที่ยังไม่มีเวลา
func stampMembers(chat *models.Chat, now time.Time) {
	for i := range chat.Members {
		if chat.Members[i].JoinedAt.IsZero() {
			chat.Members[i].JoinedAt = now
		}
	}
}

func (r *ChatRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Chat, error) {
	var chat models.Chat
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("joined_at ASC, user_id ASC") }).
		Where("id = ?", id).
		First(&chat).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &chat, nil
}

func (r *ChatRepositoryImpl) FindDirectForJob(ctx context.Context, jobID, a, b uuid.UUID) (*models.Chat, error) {
	var chat models.Chat
	err := r.db.WithContext(ctx).
		Preload("Members").
		Where("job_id = ?", jobID).
		Where("EXISTS (SELECT 1 FROM chat_members m WHERE m.chat_id = chats.id AND m.user_id = ?)", a).
		Where("EXISTS (SELECT 1 FROM chat_members m WHERE m.chat_id = chats.id AND m.user_id = ?)", b).
		Where("(SELECT COUNT(*) FROM chat_members m WHERE m.chat_id = chats.id) = 2").
		Order("created_at ASC").
		First(&chat).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &chat, nil
}

func (r *ChatRepositoryImpl) AddMember(ctx context.Context, chatID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ChatMember{ChatID: chatID, UserID: userID, JoinedAt: time.Now()}).Error
}

func (r *ChatRepositoryImpl) ListByMember(ctx context.Context, userID uuid.UUID) ([]*models.Chat, error) {
	var chats []*models.Chat
	err := r.db.WithContext(ctx).
		Preload("Members").
		Joins("JOIN chat_members cm ON cm.chat_id = chats.id AND cm.user_id = ?", userID).
		Order("chats.updated_at DESC").
		Find(&chats).Error
	return chats, err
}

func (r *ChatRepositoryImpl) Touch(ctx context.Context, chatID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Chat{}).
		Where("id = ?", chatID).
		Update("updated_at", at).Error
}

type MessageRepositoryImpl struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) repositories.MessageRepository {
	return &MessageRepositoryImpl{db: db}
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *MessageRepositoryImpl) ListByChat(ctx context.Context, chatID uuid.UUID) ([]*models.Message, error) {
	var msgs []*models.Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	return msgs, err
}
