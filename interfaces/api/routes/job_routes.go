package routes

import (
	"github.com/gofiber/fiber/v2"

	"buildboard/domain/models"
	"buildboard/interfaces/api/handlers"
	"buildboard/interfaces/api/middleware"
)

func SetupJobRoutes(api fiber.Router, h *handlers.Handlers, secret string) {
	protected := middleware.Protected(secret)

	jobs := api.Group("/jobs")
	jobs.Get("/", middleware.Optional(secret), h.JobHandler.ListJobs)
	jobs.Post("/", protected, middleware.RequireAnyRole(models.RoleManager, models.RoleAdmin), h.JobHandler.CreateJob)
	jobs.Get("/:id", middleware.Optional(secret), h.JobHandler.GetJob)
	jobs.Patch("/:id", protected, h.JobHandler.UpdateJob)
	jobs.Delete("/:id", protected, h.JobHandler.DeleteJob)
	jobs.Post("/:id/image", protected, h.JobHandler.UploadImage)
	jobs.Get("/:id/workers", middleware.Optional(secret), h.JobHandler.ListWorkers)
	jobs.Get("/:id/applications", protected, h.JobHandler.ListApplications)
}
