package routes

import (
	"opportunity-admin-backend/masters/controllers"
	"opportunity-admin-backend/masters/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func MasterRouterInit(
	app *fiber.App,
	db *gorm.DB,
	masterRepository repositories.MasterRepository,
) {
	masterController := &controllers.MasterController{
		Repo: masterRepository,
		DB:   db,
	}

	categoryRoutes := app.Group("/api/v1/categories")
	categoryRoutes.Post("/", masterController.CreateCategoryController)
	categoryRoutes.Get("/", masterController.GetCategoriesController)
	categoryRoutes.Put("/:id", masterController.UpdateCategoryController)
	categoryRoutes.Delete("/:id", masterController.DeleteCategoryController)

	organizerRoutes := app.Group("/api/v1/organizers")
	organizerRoutes.Post("/", masterController.CreateOrganizerController)
	organizerRoutes.Get("/", masterController.GetOrganizersController)
	organizerRoutes.Put("/:id", masterController.UpdateOrganizerController)
	organizerRoutes.Delete("/:id", masterController.DeleteOrganizerController)
}
