package controllers

import (
	"opportunity-admin-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetBulkUploadErrorsController lists persisted bulk upload error rows
func (oc *OpportunityController) GetBulkUploadErrorsController(c *fiber.Ctx) error {
	pageSize := c.QueryInt("page_size", 10)
	if pageSize <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid page_size parameter",
		})
	}

	page := c.QueryInt("page", 1)
	if page <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid page parameter",
		})
	}

	offset := (page - 1) * pageSize

	rows, total, err := oc.Repo.GetFilteredBulkUploadErrors(pageSize, offset)
	if err != nil {
		config.Logger.Error("Failed to fetch bulk upload errors", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch bulk upload errors",
		})
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": rows,
		"meta": fiber.Map{
			"current_page": page,
			"page_size":    pageSize,
			"total":        total,
			"total_pages":  totalPages,
		},
	})
}
