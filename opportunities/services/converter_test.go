package services

import (
	"encoding/json"
	"strings"
	"testing"

	"opportunity-admin-backend/db/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	slug := GenerateSlug("National Math Olympiad 2026!")
	assert.True(t, strings.HasPrefix(slug, "national-math-olympiad-2026-"))
	assert.NotContains(t, slug, " ")
	assert.NotContains(t, slug, "!")

	// Re-used titles still produce distinct slugs
	assert.NotEqual(t, GenerateSlug("Same Title"), GenerateSlug("Same Title"))

	// A title with no usable characters still yields a non-empty slug
	assert.NotEmpty(t, GenerateSlug("!!!"))
}

func TestBuildOpportunityModel(t *testing.T) {
	categoryID := "11111111-1111-1111-1111-111111111111"
	record := validRecord()
	record.CategoryID = &categoryID
	record.StartDate = strPtr("2026-05-01T00:00:00Z")
	record.EndDate = strPtr("2026-06-01T00:00:00Z")
	record.EndDateTBD = true
	record.Status = "published"
	record.Benefits = []string{"Medal", "Certificate"}

	opportunity, err := BuildOpportunityModel(record, "ops@example.org")
	require.NoError(t, err)

	assert.Equal(t, "Regional Math Olympiad", opportunity.Title)
	assert.Equal(t, "ops@example.org", opportunity.CreatedBy)

	// Bulk uploads always land as drafts regardless of the record's status
	assert.Equal(t, models.DraftStatus, opportunity.Status)

	require.NotNil(t, opportunity.CategoryID)
	assert.Equal(t, categoryID, opportunity.CategoryID.String())

	// TBD wins over the concrete end date
	require.NotNil(t, opportunity.StartDate)
	assert.Nil(t, opportunity.EndDate)
	assert.True(t, opportunity.EndDateTBD)

	assert.Equal(t, "INR", opportunity.Currency)
	assert.Equal(t, models.ExternalRegistrationMode, opportunity.RegistrationMode)

	var benefits []string
	require.NoError(t, json.Unmarshal(opportunity.Benefits, &benefits))
	assert.Equal(t, []string{"Medal", "Certificate"}, benefits)
}

func TestBuildOpportunityModelRequiresTitle(t *testing.T) {
	record := validRecord()
	record.Title = nil

	_, err := BuildOpportunityModel(record, "ops@example.org")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title is required")
}
