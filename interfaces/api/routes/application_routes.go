package routes

import (
	"github.com/gofiber/fiber/v2"

	"buildboard/interfaces/api/handlers"
	"buildboard/interfaces/api/middleware"
)

func SetupApplicationRoutes(api fiber.Router, h *handlers.Handlers, secret string) {
	applications := api.Group("/applications")
	applications.Use(middleware.Protected(secret))
	applications.Post("/", h.ApplicationHandler.Apply)
	applications.Get("/", h.ApplicationHandler.ListMine)
	applications.Get("/by-chat/:chatId", h.ApplicationHandler.GetByChat)
	applications.Patch("/by-chat/:chatId", h.ApplicationHandler.UpdateStatus)
}
