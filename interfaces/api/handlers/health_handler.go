package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	appName string
}

func NewHealthHandler(appName string) *HealthHandler {
	if appName == "" {
		appName = "BuildBoard API"
	}
	return &HealthHandler{appName: appName}
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"message": "Server is running",
		"service": h.appName,
	})
}

func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Welcome to " + h.appName,
		"version": "1.0.0",
		"docs":    "/api/v1",
		"health":  "/health",
	})
}
