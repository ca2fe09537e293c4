package controllers

import (
	"opportunity-admin-backend/opportunities/repositories"
	"opportunity-admin-backend/opportunities/services"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

type OpportunityController struct {
	Repo        repositories.OpportunityRepository
	DB          *gorm.DB
	Sessions    *services.SessionService
	AsynqClient *asynq.Client
}
