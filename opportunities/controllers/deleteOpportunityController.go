package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// DeleteOpportunityController soft-deletes an opportunity
func (oc *OpportunityController) DeleteOpportunityController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid opportunity id",
		})
	}

	if err := oc.Repo.DeleteOpportunity(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete opportunity",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Opportunity deleted",
	})
}
