package routes

import (
	"opportunity-admin-backend/opportunities/controllers"
	"opportunity-admin-backend/opportunities/repositories"
	"opportunity-admin-backend/opportunities/services"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func OpportunityRouterInit(
	app *fiber.App,
	db *gorm.DB,
	opportunityRepository repositories.OpportunityRepository,
	sessionService *services.SessionService,
	asynqClient *asynq.Client,
) {
	opportunityController := &controllers.OpportunityController{
		Repo:        opportunityRepository,
		DB:          db,
		Sessions:    sessionService,
		AsynqClient: asynqClient,
	}

	opportunityRoutes := app.Group("/api/v1/opportunities")

	// Bulk upload wizard
	opportunityRoutes.Get("/bulk-upload/template", opportunityController.DownloadTemplateController)
	opportunityRoutes.Get("/bulk-upload/errors", opportunityController.GetBulkUploadErrorsController)
	opportunityRoutes.Post("/bulk-upload/sessions", opportunityController.CreateUploadSessionController)
	opportunityRoutes.Get("/bulk-upload/sessions/:id", opportunityController.GetUploadSessionController)
	opportunityRoutes.Put("/bulk-upload/sessions/:id/records/:tempId", opportunityController.EditUploadRecordController)
	opportunityRoutes.Delete("/bulk-upload/sessions/:id/records/:tempId", opportunityController.DeleteUploadRecordController)
	opportunityRoutes.Delete("/bulk-upload/sessions/:id/invalid-records", opportunityController.DeleteInvalidRecordsController)
	opportunityRoutes.Post("/bulk-upload/sessions/:id/submit", opportunityController.SubmitUploadSessionController)
	opportunityRoutes.Post("/bulk-upload/sessions/:id/reset", opportunityController.ResetUploadSessionController)
	opportunityRoutes.Post("/bulk-upload/sessions/:id/refresh-reference", opportunityController.RefreshReferenceDataController)
	opportunityRoutes.Get("/bulk-upload/sessions/:id/error-report", opportunityController.DownloadErrorReportController)

	// CRUD
	opportunityRoutes.Post("/", opportunityController.CreateOpportunityController)
	opportunityRoutes.Get("/", opportunityController.GetFilteredOpportunitiesController)
	opportunityRoutes.Get("/:id", opportunityController.GetOpportunityController)
	opportunityRoutes.Put("/:id", opportunityController.UpdateOpportunityController)
	opportunityRoutes.Delete("/:id", opportunityController.DeleteOpportunityController)
}
