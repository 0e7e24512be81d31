package handlers

import (
	"github.com/gofiber/fiber/v2"

	"buildboard/domain/dto"
	"buildboard/domain/services"
	"buildboard/pkg/logger"
	"buildboard/pkg/utils"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) CreateChat(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var req dto.CreateChatRequest
	if !parseBody(c, &req) {
		return nil
	}

	chat, err := h.chatService.CreateChat(ctx, user.ID, req.Title, req.MemberIDs)
	if err != nil {
		logger.WarnContext(ctx, "Chat creation failed", "user_id", user.ID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Chat created", "chat_id", chat.ID, "members", len(chat.Members))
	return utils.CreatedResponse(c, dto.ChatToChatResponse(chat))
}

func (h *ChatHandler) ListChats(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	chats, err := h.chatService.ListChats(ctx, user.ID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.ChatsToChatResponses(chats))
}

func (h *ChatHandler) GetChat(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}
	chatID, ok := parseIDParam(c, "id", "chat ID")
	if !ok {
		return nil
	}

	chat, err := h.chatService.GetChat(ctx, chatID, user.ID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.ChatToChatResponse(chat))
}

func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}
	chatID, ok := parseIDParam(c, "id", "chat ID")
	if !ok {
		return nil
	}

	msgs, err := h.chatService.ListMessages(ctx, chatID, user.ID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.MessagesToMessageResponses(msgs))
}

func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}
	chatID, ok := parseIDParam(c, "id", "chat ID")
	if !ok {
		return nil
	}

	var req dto.SendMessageRequest
	if !parseBody(c, &req) {
		return nil
	}

	msg, err := h.chatService.SendMessage(ctx, chatID, req.Body, user.ID)
	if err != nil {
		logger.WarnContext(ctx, "Send message failed", "chat_id", chatID, "user_id", user.ID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.CreatedResponse(c, dto.MessageToMessageResponse(msg))
}
