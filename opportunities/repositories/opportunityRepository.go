package repositories

import (
	"fmt"
	"strings"

	"opportunity-admin-backend/config"
	"opportunity-admin-backend/db/models"
	searchrepos "opportunity-admin-backend/search/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OpportunityRepository interface {
	CreateOpportunity(opportunity *models.Opportunity) error
	GetOpportunityByID(id uuid.UUID) (*models.Opportunity, error)
	GetFilteredOpportunities(limit, offset int, filters map[string]string) ([]models.Opportunity, int64, error)
	UpdateOpportunity(opportunity *models.Opportunity) error
	DeleteOpportunity(id uuid.UUID) error
	LogBulkUploadErrors(rows []models.BulkUploadErrorOpportunity) error
	GetFilteredBulkUploadErrors(limit, offset int) ([]models.BulkUploadErrorOpportunity, int64, error)
	LogEmailSent(emailLog *models.EmailLog) error
}

type opportunityRepository struct {
	DB      *gorm.DB
	Indexer searchrepos.SearchRepositoryInterface
}

// NewOpportunityRepository initializes a new opportunity repository. The
// indexer may be nil; writes then skip search indexing.
func NewOpportunityRepository(db *gorm.DB, indexer searchrepos.SearchRepositoryInterface) OpportunityRepository {
	return &opportunityRepository{DB: db, Indexer: indexer}
}

func (or *opportunityRepository) CreateOpportunity(opportunity *models.Opportunity) error {
	if opportunity.Status == "" {
		opportunity.Status = models.DraftStatus
	}

	if err := or.DB.Create(opportunity).Error; err != nil {
		config.Logger.Error("Failed to create opportunity",
			zap.Error(err),
			zap.String("title", opportunity.Title))
		return fmt.Errorf("failed to create opportunity: %w", err)
	}

	if or.Indexer != nil {
		// Indexing failures never fail the write
		if err := or.Indexer.IndexSingleOpportunity(*opportunity); err != nil {
			config.Logger.Warn("Opportunity created but not indexed",
				zap.String("opportunityID", opportunity.ID.String()))
		}
	}

	config.Logger.Info("Created opportunity",
		zap.String("opportunityID", opportunity.ID.String()),
		zap.String("title", opportunity.Title),
		zap.String("status", string(opportunity.Status)))
	return nil
}

func (or *opportunityRepository) GetOpportunityByID(id uuid.UUID) (*models.Opportunity, error) {
	var opportunity models.Opportunity
	if err := or.DB.Preload("Category").Preload("Organizer").First(&opportunity, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get opportunity %s: %w", id, err)
	}
	return &opportunity, nil
}

func (or *opportunityRepository) GetFilteredOpportunities(limit, offset int, filters map[string]string) ([]models.Opportunity, int64, error) {
	var opportunities []models.Opportunity
	var total int64

	query := or.DB.Model(&models.Opportunity{})

	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if mode := filters["mode"]; mode != "" {
		query = query.Where("mode = ?", mode)
	}
	if state := filters["state"]; state != "" {
		query = query.Where("state = ?", state)
	}
	if categoryID := filters["category_id"]; categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if search := strings.TrimSpace(filters["search"]); search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("updated_at DESC, created_at DESC").Limit(limit).Offset(offset).Find(&opportunities).Error; err != nil {
		return nil, 0, err
	}

	return opportunities, total, nil
}

func (or *opportunityRepository) UpdateOpportunity(opportunity *models.Opportunity) error {
	if err := or.DB.Save(opportunity).Error; err != nil {
		config.Logger.Error("Failed to update opportunity",
			zap.Error(err),
			zap.String("opportunityID", opportunity.ID.String()))
		return fmt.Errorf("failed to update opportunity: %w", err)
	}

	if or.Indexer != nil {
		if err := or.Indexer.UpdateOpportunity(*opportunity); err != nil {
			config.Logger.Warn("Opportunity updated but index is stale",
				zap.String("opportunityID", opportunity.ID.String()))
		}
	}
	return nil
}

func (or *opportunityRepository) DeleteOpportunity(id uuid.UUID) error {
	if err := or.DB.Delete(&models.Opportunity{}, "id = ?", id).Error; err != nil {
		config.Logger.Error("Failed to delete opportunity",
			zap.Error(err),
			zap.String("opportunityID", id.String()))
		return fmt.Errorf("failed to delete opportunity: %w", err)
	}

	if or.Indexer != nil {
		if err := or.Indexer.DeleteOpportunity(id.String()); err != nil {
			config.Logger.Warn("Opportunity deleted but still indexed",
				zap.String("opportunityID", id.String()))
		}
	}
	return nil
}

func (or *opportunityRepository) LogBulkUploadErrors(rows []models.BulkUploadErrorOpportunity) error {
	if len(rows) == 0 {
		return nil
	}
	if err := or.DB.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to log bulk upload errors: %w", err)
	}
	return nil
}

func (or *opportunityRepository) GetFilteredBulkUploadErrors(limit, offset int) ([]models.BulkUploadErrorOpportunity, int64, error) {
	var rows []models.BulkUploadErrorOpportunity
	var total int64

	if err := or.DB.Model(&models.BulkUploadErrorOpportunity{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := or.DB.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (or *opportunityRepository) LogEmailSent(emailLog *models.EmailLog) error {
	if emailLog.ID == uuid.Nil {
		emailLog.ID = uuid.New()
	}
	if err := or.DB.Create(emailLog).Error; err != nil {
		return fmt.Errorf("failed to log email: %w", err)
	}
	return nil
}
