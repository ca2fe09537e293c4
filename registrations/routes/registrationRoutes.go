package routes

import (
	"opportunity-admin-backend/registrations/controllers"
	"opportunity-admin-backend/registrations/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func RegistrationRouterInit(
	app *fiber.App,
	db *gorm.DB,
	registrationRepository repositories.RegistrationRepository,
) {
	registrationController := &controllers.RegistrationController{
		Repo: registrationRepository,
		DB:   db,
	}

	rosterRoutes := app.Group("/api/v1/opportunities/:id/registrations")
	rosterRoutes.Get("/", registrationController.GetRosterController)
	rosterRoutes.Get("/export", registrationController.ExportRosterController)
}
