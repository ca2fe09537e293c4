package controllers

import (
	"errors"

	"opportunity-admin-backend/config"
	"opportunity-admin-backend/db/models"
	"opportunity-admin-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateOrganizerController adds a new organizer master record
func (mc *MasterController) CreateOrganizerController(c *fiber.Ctx) error {
	var organizer models.Organizer
	if err := c.BodyParser(&organizer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if organizer.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}
	if organizer.CreatedBy == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing 'created_by' field",
		})
	}

	exists, err := mc.Repo.OrganizerNameExists(organizer.Name, nil)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check organizer name",
		})
	}
	if exists {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "An organizer with this name already exists",
		})
	}

	organizer.IsActive = true
	if err := mc.Repo.CreateOrganizer(&organizer); err != nil {
		config.Logger.Error("Failed to create organizer", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create organizer",
		})
	}

	utils.InvalidateCacheAsync("refdata")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": organizer,
	})
}

// GetOrganizersController lists organizers, active only unless include_inactive=true
func (mc *MasterController) GetOrganizersController(c *fiber.Ctx) error {
	includeInactive := c.Query("include_inactive") == "true"

	organizers, err := mc.Repo.GetOrganizers(includeInactive)
	if err != nil {
		config.Logger.Error("Failed to fetch organizers", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch organizers",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": organizers,
	})
}

// UpdateOrganizerController updates an organizer master record
func (mc *MasterController) UpdateOrganizerController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid organizer id",
		})
	}

	organizer, err := mc.Repo.GetOrganizerByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Organizer not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch organizer",
		})
	}

	if err := c.BodyParser(organizer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	organizer.ID = id

	if organizer.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	exists, err := mc.Repo.OrganizerNameExists(organizer.Name, &id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check organizer name",
		})
	}
	if exists {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "An organizer with this name already exists",
		})
	}

	if err := mc.Repo.UpdateOrganizer(organizer); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update organizer",
		})
	}

	utils.InvalidateCacheAsync("refdata")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": organizer,
	})
}

// DeleteOrganizerController soft-deletes an organizer master record
func (mc *MasterController) DeleteOrganizerController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid organizer id",
		})
	}

	if err := mc.Repo.DeleteOrganizer(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete organizer",
		})
	}

	utils.InvalidateCacheAsync("refdata")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Organizer deleted",
	})
}
