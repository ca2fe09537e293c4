package controllers

import (
	"errors"

	"opportunity-admin-backend/config"
	"opportunity-admin-backend/db/models"
	"opportunity-admin-backend/masters/repositories"
	"opportunity-admin-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MasterController struct {
	Repo repositories.MasterRepository
	DB   *gorm.DB
}

// CreateCategoryController adds a new opportunity category master record
func (mc *MasterController) CreateCategoryController(c *fiber.Ctx) error {
	var category models.OpportunityCategory
	if err := c.BodyParser(&category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if category.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}
	if category.CreatedBy == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing 'created_by' field",
		})
	}

	exists, err := mc.Repo.CategoryNameExists(category.Name, nil)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check category name",
		})
	}
	if exists {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "A category with this name already exists",
		})
	}

	category.IsActive = true
	if err := mc.Repo.CreateCategory(&category); err != nil {
		config.Logger.Error("Failed to create category", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create category",
		})
	}

	// Validation passes resolve categories against the cached reference data
	utils.InvalidateCacheAsync("refdata")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": category,
	})
}

// GetCategoriesController lists categories, active only unless include_inactive=true
func (mc *MasterController) GetCategoriesController(c *fiber.Ctx) error {
	includeInactive := c.Query("include_inactive") == "true"

	categories, err := mc.Repo.GetCategories(includeInactive)
	if err != nil {
		config.Logger.Error("Failed to fetch categories", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch categories",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": categories,
	})
}

// UpdateCategoryController updates a category master record
func (mc *MasterController) UpdateCategoryController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid category id",
		})
	}

	category, err := mc.Repo.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch category",
		})
	}

	if err := c.BodyParser(category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	category.ID = id

	if category.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	exists, err := mc.Repo.CategoryNameExists(category.Name, &id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check category name",
		})
	}
	if exists {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "A category with this name already exists",
		})
	}

	if err := mc.Repo.UpdateCategory(category); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update category",
		})
	}

	utils.InvalidateCacheAsync("refdata")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": category,
	})
}

// DeleteCategoryController soft-deletes a category master record
func (mc *MasterController) DeleteCategoryController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid category id",
		})
	}

	if err := mc.Repo.DeleteCategory(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete category",
		})
	}

	utils.InvalidateCacheAsync("refdata")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Category deleted",
	})
}
