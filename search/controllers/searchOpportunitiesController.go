package controllers

import (
	"opportunity-admin-backend/config"
	"opportunity-admin-backend/db/models"
	"opportunity-admin-backend/search/repositories"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SearchController struct {
	Repo repositories.SearchRepositoryInterface
	DB   *gorm.DB
}

// SearchOpportunitiesController serves typeahead search over the Bleve index
func (sc *SearchController) SearchOpportunitiesController(c *fiber.Ctx) error {
	query := c.Query("q")
	status := c.Query("status")
	mode := c.Query("mode")
	state := c.Query("state")
	categoryName := c.Query("category")

	results, err := sc.Repo.SearchOpportunities(query, status, mode, state, categoryName)
	if err != nil {
		config.Logger.Error("Opportunity search failed", zap.Error(err), zap.String("query", query))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Search failed",
		})
	}

	matches := make([]interface{}, 0, len(results.Hits))
	for _, hit := range results.Hits {
		if len(hit.Fields) > 0 {
			matches = append(matches, hit.Fields)
			continue
		}
		doc, err := sc.Repo.GetOpportunityDocument(hit.ID)
		if err != nil {
			continue
		}
		matches = append(matches, doc)
	}

	return c.JSON(fiber.Map{
		"results": matches,
		"total":   results.Total,
	})
}

// ReindexOpportunitiesController rebuilds the opportunity index from the database
func (sc *SearchController) ReindexOpportunitiesController(c *fiber.Ctx) error {
	var opportunities []models.Opportunity
	if err := sc.DB.Find(&opportunities).Error; err != nil {
		config.Logger.Error("Failed to load opportunities for reindexing", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load opportunities",
		})
	}

	if err := sc.Repo.IndexExistingOpportunities(opportunities); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reindex opportunities",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Reindex complete",
		"indexed": len(opportunities),
	})
}
