package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOpportunityController returns a single opportunity by id
func (oc *OpportunityController) GetOpportunityController(c *fiber.Ctx) error {
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

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": opportunity,
	})
}
