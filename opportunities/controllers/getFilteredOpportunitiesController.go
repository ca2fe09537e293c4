package controllers

import (
	"opportunity-admin-backend/config"
	"opportunity-admin-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetFilteredOpportunitiesController lists opportunities with pagination and
// optional status, mode, state, category_id and search filters
func (oc *OpportunityController) GetFilteredOpportunitiesController(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	offset := (params.Page - 1) * params.PageSize

	opportunities, total, err := oc.Repo.GetFilteredOpportunities(params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch filtered opportunities", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch opportunities",
		})
	}

	return c.Status(fiber.StatusOK).JSON(pagination.NewPaginatedResponse(c, opportunities, total, params))
}
