package services

import (
	"context"

	"github.com/google/uuid"

	"buildboard/domain/models"
)

type ChatService interface {
	CreateChat(ctx context.Context, creatorID uuid.UUID, title string, memberIDs []uuid.UUID) (*models.Chat, error)
	ListChats(ctx context.Context, userID uuid.UUID) ([]*models.Chat, error)
	GetChat(ctx context.Context, chatID, viewerID uuid.UUID) (*models.Chat, error)
	SendMessage(ctx context.Context, chatID uuid.UUID, body string, authorID uuid.UUID) (*models.Message, error)
	ListMessages(ctx context.Context, chatID, viewerID uuid.UUID) ([]*models.Message, error)
}
