package routes

import (
	"github.com/gofiber/fiber/v2"

	"buildboard/interfaces/api/handlers"
	"buildboard/interfaces/api/middleware"
)

func SetupAuthRoutes(api fiber.Router, h *handlers.Handlers, secret string) {
	auth := api.Group("/auth")
	auth.Post("/register", h.AuthHandler.Register)
	auth.Post("/login", h.AuthHandler.Login)
	auth.Get("/me", middleware.Protected(secret), h.AuthHandler.Me)

	api.Get("/me", middleware.Protected(secret), h.AuthHandler.Me)
}
