package controllers

import (
	"errors"

	"opportunity-admin-backend/config"
	"opportunity-admin-backend/db/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UpdateOpportunityController applies a partial update to an existing
// opportunity. The request body is parsed over the stored record, so omitted
// fields keep their current values.
func (oc *OpportunityController) UpdateOpportunityController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid opportunity id",
		})
	}

	opportunity, err := oc.Repo.GetOpportunityByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Opportunity not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch opportunity",
		})
	}

	if err := c.BodyParser(opportunity); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	opportunity.ID = id

	if opportunity.Status != models.DraftStatus &&
		opportunity.Status != models.PublishedStatus &&
		opportunity.Status != models.ArchivedStatus {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status must be draft, published or archived",
		})
	}

	if err := oc.Repo.UpdateOpportunity(opportunity); err != nil {
		config.Logger.Error("Failed to update opportunity",
			zap.Error(err),
			zap.String("opportunityID", id.String()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update opportunity",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": opportunity,
	})
}
