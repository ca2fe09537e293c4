package controllers

import (
	"opportunity-admin-backend/config"
	"opportunity-admin-backend/db/models"
	"opportunity-admin-backend/opportunities/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CreateOpportunityController handles manual creation from the console form
func (oc *OpportunityController) CreateOpportunityController(c *fiber.Ctx) error {
	var opportunity models.Opportunity
	if err := c.BodyParser(&opportunity); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if opportunity.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}
	if opportunity.CreatedBy == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing 'created_by' field",
		})
	}

	if opportunity.Slug == "" {
		opportunity.Slug = services.GenerateSlug(opportunity.Title)
	}

	if err := oc.Repo.CreateOpportunity(&opportunity); err != nil {
		config.Logger.Error("Failed to create opportunity", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create opportunity",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": opportunity,
	})
}
