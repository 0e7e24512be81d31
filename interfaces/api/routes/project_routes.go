package routes

import (
	"github.com/gofiber/fiber/v2"

	"buildboard/interfaces/api/handlers"
	"buildboard/interfaces/api/middleware"
)

func SetupProjectRoutes(api fiber.Router, h *handlers.Handlers, secret string) {
	projects := api.Group("/projects")
	projects.Use(middleware.Protected(secret))
	projects.Post("/", h.ProjectHandler.CreateProject)
	projects.Get("/", h.ProjectHandler.ListProjects)
	projects.Get("/:id", h.ProjectHandler.GetProject)
	projects.Put("/:id", h.ProjectHandler.UpdateProject)
	projects.Delete("/:id", h.ProjectHandler.DeleteProject)
	projects.Post("/:id/tasks", h.TaskHandler.CreateTask)
	projects.Get("/:id/tasks", h.TaskHandler.ListProjectTasks)
}
