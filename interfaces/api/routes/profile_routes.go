package routes

import (
	"github.com/gofiber/fiber/v2"

	"buildboard/interfaces/api/handlers"
	"buildboard/interfaces/api/middleware"
)

func SetupProfileRoutes(api fiber.Router, h *handlers.Handlers, secret string) {
	profiles := api.Group("/profiles")
	profiles.Get("/:id", h.ProfileHandler.GetProfile)
	profiles.Put("/:id", middleware.Protected(secret), h.ProfileHandler.PutProfile)
}
