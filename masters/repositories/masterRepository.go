package repositories

import (
	"fmt"
	"strings"

	"opportunity-admin-backend/config"
	"opportunity-admin-backend/db/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MasterRepository interface {
	CreateCategory(category *models.OpportunityCategory) error
	GetCategories(includeInactive bool) ([]models.OpportunityCategory, error)
	GetCategoryByID(id uuid.UUID) (*models.OpportunityCategory, error)
	UpdateCategory(category *models.OpportunityCategory) error
	DeleteCategory(id uuid.UUID) error
	CategoryNameExists(name string, excludeID *uuid.UUID) (bool, error)

	CreateOrganizer(organizer *models.Organizer) error
	GetOrganizers(includeInactive bool) ([]models.Organizer, error)
	GetOrganizerByID(id uuid.UUID) (*models.Organizer, error)
	UpdateOrganizer(organizer *models.Organizer) error
	DeleteOrganizer(id uuid.UUID) error
	OrganizerNameExists(name string, excludeID *uuid.UUID) (bool, error)
}

type masterRepository struct {
	DB *gorm.DB
}

// NewMasterRepository initializes the repository for category and organizer
// master data
func NewMasterRepository(db *gorm.DB) MasterRepository {
	return &masterRepository{DB: db}
}

func (mr *masterRepository) CreateCategory(category *models.OpportunityCategory) error {
	if err := mr.DB.Create(category).Error; err != nil {
		config.Logger.Error("Failed to create category",
			zap.Error(err),
			zap.String("name", category.Name))
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (mr *masterRepository) GetCategories(includeInactive bool) ([]models.OpportunityCategory, error) {
	var categories []models.OpportunityCategory
	query := mr.DB.Order("name")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (mr *masterRepository) GetCategoryByID(id uuid.UUID) (*models.OpportunityCategory, error) {
	var category models.OpportunityCategory
	if err := mr.DB.First(&category, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get category %s: %w", id, err)
	}
	return &category, nil
}

func (mr *masterRepository) UpdateCategory(category *models.OpportunityCategory) error {
	if err := mr.DB.Save(category).Error; err != nil {
		config.Logger.Error("Failed to update category",
			zap.Error(err),
			zap.String("categoryID", category.ID.String()))
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

func (mr *masterRepository) DeleteCategory(id uuid.UUID) error {
	if err := mr.DB.Delete(&models.OpportunityCategory{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (mr *masterRepository) CategoryNameExists(name string, excludeID *uuid.UUID) (bool, error) {
	return mr.nameExists(&models.OpportunityCategory{}, name, excludeID)
}

func (mr *masterRepository) CreateOrganizer(organizer *models.Organizer) error {
	if err := mr.DB.Create(organizer).Error; err != nil {
		config.Logger.Error("Failed to create organizer",
			zap.Error(err),
			zap.String("name", organizer.Name))
		return fmt.Errorf("failed to create organizer: %w", err)
	}
	return nil
}

func (mr *masterRepository) GetOrganizers(includeInactive bool) ([]models.Organizer, error) {
	var organizers []models.Organizer
	query := mr.DB.Order("name")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&organizers).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch organizers: %w", err)
	}
	return organizers, nil
}

func (mr *masterRepository) GetOrganizerByID(id uuid.UUID) (*models.Organizer, error) {
	var organizer models.Organizer
	if err := mr.DB.First(&organizer, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get organizer %s: %w", id, err)
	}
	return &organizer, nil
}

func (mr *masterRepository) UpdateOrganizer(organizer *models.Organizer) error {
	if err := mr.DB.Save(organizer).Error; err != nil {
		config.Logger.Error("Failed to update organizer",
			zap.Error(err),
			zap.String("organizerID", organizer.ID.String()))
		return fmt.Errorf("failed to update organizer: %w", err)
	}
	return nil
}

func (mr *masterRepository) DeleteOrganizer(id uuid.UUID) error {
	if err := mr.DB.Delete(&models.Organizer{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete organizer: %w", err)
	}
	return nil
}

func (mr *masterRepository) OrganizerNameExists(name string, excludeID *uuid.UUID) (bool, error) {
	return mr.nameExists(&models.Organizer{}, name, excludeID)
}

// nameExists checks for a case-insensitive name collision, optionally
// ignoring the record being updated
func (mr *masterRepository) nameExists(model interface{}, name string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := mr.DB.Model(model).Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check name uniqueness: %w", err)
	}
	return count > 0, nil
}
