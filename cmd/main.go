package main

import (
	"context"

	"opportunity-admin-backend/config"
	seeddb "opportunity-admin-backend/db"
	"opportunity-admin-backend/internal/bootstrap"
	"opportunity-admin-backend/internal/tasks"
	"opportunity-admin-backend/middleware"
	"opportunity-admin-backend/utils"

	// Repositories
	masters_repositories "opportunity-admin-backend/masters/repositories"
	opportunities_repositories "opportunity-admin-backend/opportunities/repositories"
	quizzes_repositories "opportunity-admin-backend/quizzes/repositories"
	registrations_repositories "opportunity-admin-backend/registrations/repositories"
	search_repositories "opportunity-admin-backend/search/repositories"

	// Services
	opportunities_services "opportunity-admin-backend/opportunities/services"
	search_services "opportunity-admin-backend/search/services"

	// Routes
	masters_routes "opportunity-admin-backend/masters/routes"
	opportunities_routes "opportunity-admin-backend/opportunities/routes"
	quizzes_routes "opportunity-admin-backend/quizzes/routes"
	registrations_routes "opportunity-admin-backend/registrations/routes"
	search_routes "opportunity-admin-backend/search/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Initialize Zap logger
	config.InitLogger()

	// Load environment variables
	if err := godotenv.Load(".env"); err != nil {
		config.Logger.Warn("No .env file found, relying on process environment")
	}

	app := fiber.New()
	middleware.InitCors(app)

	// Initialize database and configs
	db := config.ConfigureDatabase()
	if err := seeddb.SeedOpportunityCategories(db, "system"); err != nil {
		config.Logger.Error("Category seeding failed", zap.Error(err))
	}
	port := config.GetEnvOrDefault("PORT", "8080")
	ctx := context.Background()

	redisAddr := config.GetEnvOrDefault("REDIS_ADDRESS", "localhost:6379")
	redisClient, err := config.InitRedisServer(ctx, redisAddr)
	if err != nil {
		config.Logger.Fatal("Redis connection failed", zap.Error(err))
	}

	// Asynq manages its own Redis connection
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	indexPath := config.GetEnvOrDefault("BLEVE_INDEX_PATH", "./bleve_data")

	// Mailer for background error-report emails
	utils.InitializeMailer()

	// Serve generated exports
	app.Static("/public", "./public")

	// Repositories
	indexingService := search_services.NewIndexingService(config.Logger, indexPath)
	_, searchRepo := search_repositories.NewSearchRepository(indexingService)
	opportunityRepo := opportunities_repositories.NewOpportunityRepository(db, searchRepo)
	masterRepo := masters_repositories.NewMasterRepository(db)
	registrationRepo := registrations_repositories.NewRegistrationRepository(db)
	quizRepo := quizzes_repositories.NewQuizRepository(db)

	// Bulk upload session machinery
	referenceService := opportunities_services.NewReferenceService(db, redisClient)
	sessionStore := opportunities_services.NewSessionStore()
	sessionService := opportunities_services.NewSessionService(sessionStore, opportunityRepo, referenceService)

	// Routes
	opportunities_routes.OpportunityRouterInit(app, db, opportunityRepo, sessionService, asynqClient)
	masters_routes.MasterRouterInit(app, db, masterRepo)
	registrations_routes.RegistrationRouterInit(app, db, registrationRepo)
	quizzes_routes.QuizRouterInit(app, db, quizRepo)
	search_routes.SearchRouterInit(app, db, searchRepo)

	// Background email worker
	worker := tasks.StartWorker(redisAddr, opportunityRepo)
	defer worker.Shutdown()

	// Rebuild the search index from the database
	bootstrap.IndexSearchData(db, searchRepo)

	// Background cleanup of export files, cache entries and idle sessions
	go utils.RunScheduledCleanup(redisClient, sessionStore.EvictIdle)

	config.Logger.Info("Server starting", zap.String("port", port))
	config.Logger.Fatal("Server failed", zap.String("port", port), zap.Error(app.Listen(":"+port)))
}
