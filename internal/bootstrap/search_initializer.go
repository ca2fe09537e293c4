package bootstrap

import (
	"opportunity-admin-backend/config"
	"opportunity-admin-backend/db/models"
	searchRepositories "opportunity-admin-backend/search/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IndexSearchData rebuilds the opportunity search index from the database at
// startup so the index never drifts after out-of-band writes
func IndexSearchData(db *gorm.DB, searchRepo searchRepositories.SearchRepositoryInterface) {
	var opportunities []models.Opportunity
	if err := db.Find(&opportunities).Error; err != nil {
		config.Logger.Error("Error fetching opportunities for search indexing", zap.Error(err))
		return
	}

	if err := searchRepo.IndexExistingOpportunities(opportunities); err != nil {
		config.Logger.Error("Failed to index opportunities", zap.Error(err))
		return
	}

	config.Logger.Info("Search index rebuilt", zap.Int("opportunities", len(opportunities)))
}
