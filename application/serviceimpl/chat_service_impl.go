package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"buildboard/domain/models"
	"buildboard/domain/ports"
	"buildboard/domain/repositories"
	"buildboard/domain/services"
	"buildboard/pkg/logger"
)

const maxMessageLength = 4000

type ChatServiceImpl struct {
	store   repositories.Store
	events  chatEvents
	limiter ports.RateLimiterPort
}

func NewChatService(store repositories.Store, publisher ports.ChatEventPublisherPort, limiter ports.RateLimiterPort) services.ChatService {
	return &ChatServiceImpl{
		store:   store,
		events:  chatEvents{publisher: publisher},
		limiter: limiter,
	}
}

// CreateChat ผู้สร้างเป็นสมาชิกเสมอ; member ที่ซ้ำถูกรวมเป็นคนเดียว
func (s *ChatServiceImpl) CreateChat(ctx context.Context, creatorID uuid.UUID, title string, memberIDs []uuid.UUID) (*models.Chat, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", services.ErrValidation)
	}

	ids := []uuid.UUID{creatorID}
	seen := map[uuid.UUID]struct{}{creatorID: {}}
	for _, id := range memberIDs {
		if id == uuid.Nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	users, err := s.store.Users().ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(users) != len(ids) {
		return nil, fmt.Errorf("%w: unknown member id", services.ErrValidation)
	}

	chat := &models.Chat{
		ID:        uuid.New(),
		Title:     title,
		CreatedBy: creatorID,
	}
	for _, id := range ids {
		chat.Members = append(chat.Members, models.ChatMember{UserID: id})
	}

	if err := s.store.Chats().Create(ctx, chat); err != nil {
		logger.ErrorContext(ctx, "Failed to create chat", "creator_id", creatorID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Chat created", "chat_id", chat.ID, "members", len(ids))
	return s.store.Chats().GetByID(ctx, chat.ID)
}

func (s *ChatServiceImpl) ListChats(ctx context.Context, userID uuid.UUID) ([]*models.Chat, error) {
	return s.store.Chats().ListByMember(ctx, userID)
}

func (s *ChatServiceImpl) GetChat(ctx context.Context, chatID, viewerID uuid.UUID) (*models.Chat, error) {
	chat, err := s.store.Chats().GetByID(ctx, chatID)
	if err != nil {
		return nil, notFound(err, "chat not found")
	}
	if !chat.HasMember(viewerID) {
		return nil, fmt.Errorf("%w: not a member of this chat", services.ErrForbidden)
	}
	return chat, nil
}

// SendMessage ผู้ส่งถูกเพิ่มเป็นสมาชิกอัตโนมัติ; publish หลัง commit
func (s *ChatServiceImpl) SendMessage(ctx context.Context, chatID uuid.UUID, body string, authorID uuid.UUID) (*models.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: message body is required", services.ErrValidation)
	}
	if len(body) > maxMessageLength {
		return nil, fmt.Errorf("%w: message body is too long", services.ErrValidation)
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, "chat:"+authorID.String())
		if err != nil {
			logger.WarnContext(ctx, "Rate limiter unavailable, allowing message", "user_id", authorID, "error", err)
		} else if !allowed {
			return nil, fmt.Errorf("%w: too many messages, slow down", services.ErrRateLimited)
		}
	}

	author := authorID
	msg := &models.Message{
		ID:       uuid.New(),
		ChatID:   chatID,
		AuthorID: &author,
		Body:     body,
	}

	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		if _, err := tx.Chats().GetByID(ctx, chatID); err != nil {
			return notFound(err, "chat not found")
		}
		if err := tx.Chats().AddMember(ctx, chatID, authorID); err != nil {
			return fmt.Errorf("add member: %w", err)
		}
		if err := tx.Messages().Create(ctx, msg); err != nil {
			return fmt.Errorf("create message: %w", err)
		}
		return tx.Chats().Touch(ctx, chatID, msg.CreatedAt)
	})
	if err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			logger.ErrorContext(ctx, "Failed to send message", "chat_id", chatID, "error", err)
		}
		return nil, err
	}

	s.events.messageCreated(ctx, msg)
	return msg, nil
}

func (s *ChatServiceImpl) ListMessages(ctx context.Context, chatID, viewerID uuid.UUID) ([]*models.Message, error) {
	if _, err := s.GetChat(ctx, chatID, viewerID); err != nil {
		return nil, err
	}
	return s.store.Messages().ListByChat(ctx, chatID)
}
