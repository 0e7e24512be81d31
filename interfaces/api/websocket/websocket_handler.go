package websocket

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	hub "buildboard/infrastructure/websocket"
	"buildboard/pkg/logger"
	"buildboard/pkg/utils"
)

const localsWSUser = "ws_user"

type WebSocketHandler struct {
	hub       *hub.Hub
	jwtSecret string
}

func NewWebSocketHandler(h *hub.Hub, jwtSecret string) *WebSocketHandler {
	return &WebSocketHandler{hub: h, jwtSecret: jwtSecret}
}

// WebSocketUpgrade ตรวจ token (header หรือ ?token=) และสิทธิ์ห้องก่อน upgrade
func (h *WebSocketHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	token := utils.ExtractTokenFromHeader(c.Get("Authorization"))
	if token == "" {
		token = c.Query("token")
	}
	user, err := utils.ValidateTokenStringToUUID(token, h.jwtSecret)
	if err != nil {
		logger.WarnContext(c.UserContext(), "WebSocket auth failed", "error", err)
		return utils.UnauthorizedResponse(c, "Invalid token")
	}

	room := c.Query("room")
	if !h.hub.Authorize(c.UserContext(), user.ID, room) {
		logger.WarnContext(c.UserContext(), "WebSocket room denied", "user_id", user.ID, "room", room)
		return utils.ForbiddenResponse(c, "Not a member of this chat")
	}

	c.Locals(localsWSUser, user.ID)
	return c.Next()
}

func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	userID, _ := c.Locals(localsWSUser).(uuid.UUID)
	roomID := c.Query("room", "")

	h.hub.Register(c, userID, roomID)
	defer h.hub.Unregister(c)

	logger.Info("WebSocket connected", "user_id", userID, "room", roomID)

	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug("WebSocket read ended", "user_id", userID, "error", err)
			break
		}

		h.hub.HandleClientMessage(context.Background(), c, message)
	}
}
