package routes

import (
	"opportunity-admin-backend/search/controllers"
	"opportunity-admin-backend/search/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SearchRouterInit(
	app *fiber.App,
	db *gorm.DB,
	searchRepository repositories.SearchRepositoryInterface,
) {
	searchController := &controllers.SearchController{
		Repo: searchRepository,
		DB:   db,
	}

	searchRoutes := app.Group("/api/v1/search")
	searchRoutes.Get("/opportunities", searchController.SearchOpportunitiesController)
	searchRoutes.Post("/opportunities/reindex", searchController.ReindexOpportunitiesController)
}
