package routes

import (
	"github.com/gofiber/fiber/v2"

	"buildboard/interfaces/api/handlers"
	"buildboard/interfaces/api/middleware"
)

func SetupUploadRoutes(api fiber.Router, h *handlers.Handlers, secret string) {
	uploads := api.Group("/uploads")
	uploads.Use(middleware.Protected(secret))
	uploads.Post("/avatar", h.UploadHandler.UploadAvatar)
	uploads.Post("/banner", h.UploadHandler.UploadBanner)
	uploads.Get("/signed-url", h.UploadHandler.SignedURL)
	uploads.Get("/file", h.UploadHandler.File)
}
