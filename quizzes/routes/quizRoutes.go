package routes

import (
	"opportunity-admin-backend/quizzes/controllers"
	"opportunity-admin-backend/quizzes/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func QuizRouterInit(
	app *fiber.App,
	db *gorm.DB,
	quizRepository repositories.QuizRepository,
) {
	quizController := &controllers.QuizController{
		Repo: quizRepository,
		DB:   db,
	}

	quizRoutes := app.Group("/api/v1/quizzes")
	quizRoutes.Post("/", quizController.CreateQuizController)
	quizRoutes.Get("/:id", quizController.GetQuizController)
	quizRoutes.Put("/:id", quizController.UpdateQuizController)
	quizRoutes.Delete("/:id", quizController.DeleteQuizController)

	app.Get("/api/v1/opportunities/:id/quizzes", quizController.GetQuizzesByOpportunityController)
}
