package routes

import (
	"github.com/gofiber/fiber/v2"

	"buildboard/interfaces/api/handlers"
	"buildboard/interfaces/api/middleware"
)

func SetupSubscriptionRoutes(api fiber.Router, h *handlers.Handlers, secret string) {
	subscriptions := api.Group("/subscriptions")
	subscriptions.Use(middleware.Protected(secret))

	subscriptions.Post("/", h.SubscriptionHandler.Subscribe)
	subscriptions.Get("/me", h.SubscriptionHandler.GetMine)
	subscriptions.Delete("/me", h.SubscriptionHandler.CancelMine)
}
