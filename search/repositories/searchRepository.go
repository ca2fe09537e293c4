package repositories

import (
	"encoding/json"
	"strings"

	"opportunity-admin-backend/config"
	"opportunity-admin-backend/db/models"
	searchservices "opportunity-admin-backend/search/services"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"
)

const opportunityIndex = "opportunities"

type SearchRepository struct {
	indexer searchservices.IndexingServiceInterface
}

type SearchRepositoryInterface interface {
	IndexSingleOpportunity(opportunity models.Opportunity) error
	IndexExistingOpportunities(opportunities []models.Opportunity) error
	UpdateOpportunity(opportunity models.Opportunity) error
	DeleteOpportunity(opportunityID string) error
	SearchOpportunities(queryString, status, mode, state, categoryName string) (*bleve.SearchResult, error)
	GetOpportunityDocument(opportunityID string) (interface{}, error)
}

// Constructor returning both the struct and the interface
func NewSearchRepository(indexer searchservices.IndexingServiceInterface) (*SearchRepository, SearchRepositoryInterface) {
	repo := &SearchRepository{indexer: indexer}
	return repo, repo
}

// bleveOpportunityDoc is the minimal document shape kept in the index
type bleveOpportunityDoc struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	CategoryName   string   `json:"category_name,omitempty"`
	OrganizerName  string   `json:"organizer_name,omitempty"`
	Mode           string   `json:"mode"`
	State          string   `json:"state,omitempty"`
	Status         string   `json:"status"`
	SearchKeywords []string `json:"search_keywords,omitempty"`
}

func buildOpportunityDoc(opportunity models.Opportunity) bleveOpportunityDoc {
	doc := bleveOpportunityDoc{
		ID:     opportunity.ID.String(),
		Title:  opportunity.Title,
		Slug:   opportunity.Slug,
		Mode:   string(opportunity.Mode),
		Status: string(opportunity.Status),
	}
	if opportunity.CategoryName != nil {
		doc.CategoryName = *opportunity.CategoryName
	}
	if opportunity.OrganizerName != nil {
		doc.OrganizerName = *opportunity.OrganizerName
	}
	if opportunity.State != nil {
		doc.State = *opportunity.State
	}
	if len(opportunity.SearchKeywords) > 0 {
		var keywords []string
		if err := json.Unmarshal(opportunity.SearchKeywords, &keywords); err == nil {
			doc.SearchKeywords = keywords
		}
	}
	return doc
}

func (r *SearchRepository) IndexSingleOpportunity(opportunity models.Opportunity) error {
	doc := buildOpportunityDoc(opportunity)

	err := r.indexer.IndexDocument(opportunityIndex, opportunity.ID.String(), doc)
	if err != nil {
		config.Logger.Error("Failed to index opportunity",
			zap.Error(err),
			zap.String("opportunityID", opportunity.ID.String()))
		return err
	}

	return nil
}

func (r *SearchRepository) IndexExistingOpportunities(opportunities []models.Opportunity) error {
	docsToIndex := make(map[string]interface{})

	for _, opportunity := range opportunities {
		docsToIndex[opportunity.ID.String()] = buildOpportunityDoc(opportunity)
	}

	if len(docsToIndex) == 0 {
		config.Logger.Info("No opportunities to index")
		return nil
	}

	if err := r.indexer.BulkIndexDocuments(opportunityIndex, docsToIndex); err != nil {
		config.Logger.Error("Failed to bulk index opportunities", zap.Error(err))
		return err
	}

	config.Logger.Info("Bulk indexed opportunities", zap.Int("count", len(docsToIndex)))
	return nil
}

func (r *SearchRepository) UpdateOpportunity(opportunity models.Opportunity) error {
	doc := buildOpportunityDoc(opportunity)

	err := r.indexer.UpdateDocument(opportunityIndex, opportunity.ID.String(), doc)
	if err != nil {
		config.Logger.Error("Failed to update opportunity document",
			zap.Error(err),
			zap.String("opportunityID", opportunity.ID.String()))
		return err
	}

	return nil
}

func (r *SearchRepository) DeleteOpportunity(opportunityID string) error {
	if err := r.indexer.DeleteDocument(opportunityIndex, opportunityID); err != nil {
		config.Logger.Error("Failed to delete opportunity document",
			zap.Error(err),
			zap.String("opportunityID", opportunityID))
		return err
	}
	return nil
}

func (r *SearchRepository) SearchOpportunities(
	queryString string,
	status string,
	mode string,
	state string,
	categoryName string,
) (*bleve.SearchResult, error) {
	booleanQuery := bleve.NewBooleanQuery()
	queryString = strings.TrimSpace(queryString)
	queryStringLower := strings.ToLower(queryString)

	if queryString != "" {
		exactMatch := bleve.NewBooleanQuery()

		titleExact := bleve.NewTermQuery(queryStringLower)
		titleExact.SetField("title")
		titleExact.SetBoost(10.0)
		exactMatch.AddShould(titleExact)

		organizerExact := bleve.NewTermQuery(queryStringLower)
		organizerExact.SetField("organizer_name")
		organizerExact.SetBoost(8.0)
		exactMatch.AddShould(organizerExact)

		titleMatch := bleve.NewMatchQuery(queryString)
		titleMatch.SetField("title")
		titleMatch.SetBoost(7.0)
		exactMatch.AddShould(titleMatch)

		keywordMatch := bleve.NewMatchQuery(queryString)
		keywordMatch.SetField("search_keywords")
		keywordMatch.SetBoost(6.0)
		exactMatch.AddShould(keywordMatch)

		prefixMatch := bleve.NewBooleanQuery()

		titlePrefix := bleve.NewPrefixQuery(queryStringLower)
		titlePrefix.SetField("title")
		titlePrefix.SetBoost(5.0)
		prefixMatch.AddShould(titlePrefix)

		organizerPrefix := bleve.NewPrefixQuery(queryStringLower)
		organizerPrefix.SetField("organizer_name")
		organizerPrefix.SetBoost(4.0)
		prefixMatch.AddShould(organizerPrefix)

		// Fuzzy search for typos
		fuzzyQuery := bleve.NewFuzzyQuery(queryStringLower)
		fuzzyQuery.SetField("title")
		fuzzyQuery.SetBoost(3.0)
		fuzzyQuery.SetFuzziness(1)
		prefixMatch.AddShould(fuzzyQuery)

		booleanQuery.AddShould(exactMatch)
		booleanQuery.AddShould(prefixMatch)
	}

	finalQuery := bleve.NewBooleanQuery()
	if queryString != "" {
		finalQuery.AddMust(booleanQuery)
	}

	if status != "" {
		statusQuery := bleve.NewTermQuery(strings.ToLower(status))
		statusQuery.SetField("status")
		finalQuery.AddMust(statusQuery)
	}

	if mode != "" {
		modeQuery := bleve.NewTermQuery(strings.ToLower(mode))
		modeQuery.SetField("mode")
		finalQuery.AddMust(modeQuery)
	}

	if state != "" {
		stateQuery := bleve.NewMatchQuery(state)
		stateQuery.SetField("state")
		finalQuery.AddMust(stateQuery)
	}

	if categoryName != "" {
		categoryQuery := bleve.NewMatchQuery(categoryName)
		categoryQuery.SetField("category_name")
		finalQuery.AddMust(categoryQuery)
	}

	if queryString == "" && status == "" && mode == "" && state == "" && categoryName == "" {
		return r.indexer.SearchIndex(opportunityIndex, bleve.NewMatchAllQuery(), 20)
	}

	return r.indexer.SearchIndex(opportunityIndex, finalQuery, 20)
}

func (r *SearchRepository) GetOpportunityDocument(opportunityID string) (interface{}, error) {
	return r.indexer.GetDocument(opportunityIndex, opportunityID)
}
