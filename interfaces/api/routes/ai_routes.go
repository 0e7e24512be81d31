package routes

import (
	"github.com/gofiber/fiber/v2"

	"buildboard/interfaces/api/handlers"
	"buildboard/interfaces/api/middleware"
)

func SetupAIRoutes(api fiber.Router, h *handlers.Handlers, secret string) {
	api.Post("/ai/chat", middleware.Protected(secret), h.AIHandler.Chat)
}
