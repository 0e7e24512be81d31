package routes

import (
	"github.com/gofiber/fiber/v2"

	"buildboard/interfaces/api/handlers"
	"buildboard/interfaces/api/middleware"
)

func SetupChatRoutes(api fiber.Router, h *handlers.Handlers, secret string) {
	chats := api.Group("/chats")
	chats.Use(middleware.Protected(secret))
	chats.Post("/", h.ChatHandler.CreateChat)
	chats.Get("/", h.ChatHandler.ListChats)
	chats.Get("/:id", h.ChatHandler.GetChat)
	chats.Get("/:id/messages", h.ChatHandler.ListMessages)
	chats.Post("/:id/messages", h.ChatHandler.SendMessage)
}
