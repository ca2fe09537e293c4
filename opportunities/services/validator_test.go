package services

import (
	"testing"

	"opportunity-admin-backend/db/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(value string) *string {
	return &value
}

func testReferenceContext() *ReferenceContext {
	return &ReferenceContext{
		Categories: []CategoryRef{
			{ID: "11111111-1111-1111-1111-111111111111", Name: "Olympiad"},
		},
		Organizers: []OrganizerRef{
			{ID: "22222222-2222-2222-2222-222222222222", Name: "MathSoc", Logo: "https://cdn.example.org/mathsoc.png"},
		},
		ExistingTitles: map[string]struct{}{
			"national math olympiad": {},
		},
	}
}

func validRecord() *ParsedOpportunity {
	return &ParsedOpportunity{
		TempID:           "tmp-1",
		RowNumber:        2,
		Title:            strPtr("Regional Math Olympiad"),
		Category:         strPtr("Olympiad"),
		Organizer:        strPtr("MathSoc"),
		GradeEligibility: strPtr("6-12"),
		Mode:             "online",
		Eligibility:      []string{"Grades 6 to 12"},
		Benefits:         []string{"Medal"},
	}
}

func findingFields(findings []ValidationFinding) []string {
	fields := make([]string, 0, len(findings))
	for _, finding := range findings {
		fields = append(fields, finding.Field)
	}
	return fields
}

func TestValidateOpportunityCleanRecord(t *testing.T) {
	record := validRecord()
	result := ValidateOpportunity(record, testReferenceContext())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)

	// Reference matches resolve master ids and the organizer logo
	require.NotNil(t, record.CategoryID)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", *record.CategoryID)
	require.NotNil(t, record.OrganizerID)
	require.NotNil(t, record.OrganizerLogo)
	assert.Equal(t, "https://cdn.example.org/mathsoc.png", *record.OrganizerLogo)
}

func TestValidateOpportunityRequiredFields(t *testing.T) {
	record := &ParsedOpportunity{TempID: "tmp-1", RowNumber: 2, Mode: "online"}
	result := ValidateOpportunity(record, testReferenceContext())

	assert.False(t, result.IsValid)
	fields := findingFields(result.Errors)
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "category")
	assert.Contains(t, fields, "organizer")
	assert.Contains(t, fields, "gradeEligibility")
}

func TestValidateOpportunityUnknownReferenceIsWarning(t *testing.T) {
	record := validRecord()
	record.Category = strPtr("Bootcamp")
	record.Organizer = strPtr("Unknown Org")

	result := ValidateOpportunity(record, testReferenceContext())

	assert.True(t, result.IsValid, "missing reference data must not block the row")
	fields := findingFields(result.Warnings)
	assert.Contains(t, fields, "category")
	assert.Contains(t, fields, "organizer")
	assert.Nil(t, record.CategoryID)
	assert.Nil(t, record.OrganizerID)
}

func TestValidateOpportunityCaseInsensitiveReferenceMatch(t *testing.T) {
	record := validRecord()
	record.Category = strPtr("olympiad")
	record.Organizer = strPtr("MATHSOC")

	result := ValidateOpportunity(record, testReferenceContext())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Warnings)
	assert.NotNil(t, record.CategoryID)
	assert.NotNil(t, record.OrganizerID)
}

func TestValidateOpportunityDuplicateTitleWarning(t *testing.T) {
	record := validRecord()
	record.Title = strPtr("National Math Olympiad")

	result := ValidateOpportunity(record, testReferenceContext())

	assert.True(t, result.IsValid)
	assert.Contains(t, findingFields(result.Warnings), "title")
}

func TestValidateOpportunityDateOrdering(t *testing.T) {
	record := validRecord()
	record.StartDate = strPtr("2026-05-01T00:00:00Z")
	record.EndDate = strPtr("2026-04-01T00:00:00Z")

	result := ValidateOpportunity(record, testReferenceContext())

	assert.False(t, result.IsValid)
	assert.Contains(t, findingFields(result.Errors), "dates")
}

func TestValidateOpportunityDeadlineAfterStartWarns(t *testing.T) {
	record := validRecord()
	record.StartDate = strPtr("2026-05-01T00:00:00Z")
	record.RegistrationDeadline = strPtr("2026-05-10T00:00:00Z")

	result := ValidateOpportunity(record, testReferenceContext())

	assert.True(t, result.IsValid)
	assert.Contains(t, findingFields(result.Warnings), "registrationDeadline")
}

func TestValidateOpportunityTBDWithConcreteDate(t *testing.T) {
	record := validRecord()
	record.StartDate = strPtr("2026-05-01T00:00:00Z")
	record.StartDateTBD = true

	result := ValidateOpportunity(record, testReferenceContext())

	assert.True(t, result.IsValid)
	assert.Contains(t, findingFields(result.Warnings), "startDate")
}

func TestValidateOpportunityTimelineAutoCorrection(t *testing.T) {
	record := validRecord()
	record.Timeline = []models.TimelineEvent{
		{Date: "2026-04-01", Event: "Finals", Status: "finished"},
	}

	result := ValidateOpportunity(record, testReferenceContext())

	assert.True(t, result.IsValid)
	assert.Equal(t, models.UpcomingTimelineStatus, record.Timeline[0].Status)
	require.Len(t, result.AutoCorrections, 1)
	assert.Contains(t, result.AutoCorrections[0], "upcoming")
	assert.Contains(t, findingFields(result.Warnings), "timeline[0]")
}

func TestValidateOpportunityTimelineCompleteness(t *testing.T) {
	record := validRecord()
	record.Timeline = []models.TimelineEvent{
		{Date: "", Event: "Finals", Status: models.UpcomingTimelineStatus},
		{Date: "2026-04-01", Event: "", Status: models.UpcomingTimelineStatus},
	}

	result := ValidateOpportunity(record, testReferenceContext())

	assert.False(t, result.IsValid)
	fields := findingFields(result.Errors)
	assert.Contains(t, fields, "timeline[0]")
	assert.Contains(t, fields, "timeline[1]")
}

func TestValidateOpportunityURLs(t *testing.T) {
	record := validRecord()
	record.ApplicationURL = strPtr("not-a-url")
	record.Image = strPtr("also-not-a-url")

	result := ValidateOpportunity(record, testReferenceContext())

	// A broken application URL blocks; a broken image URL only warns
	assert.False(t, result.IsValid)
	assert.Contains(t, findingFields(result.Errors), "applicationUrl")
	assert.Contains(t, findingFields(result.Warnings), "image")
}

func TestValidateOpportunityModeEnum(t *testing.T) {
	record := validRecord()
	record.Mode = "in-person"

	result := ValidateOpportunity(record, testReferenceContext())

	assert.False(t, result.IsValid)
	assert.Contains(t, findingFields(result.Errors), "mode")
}

func TestValidateOpportunityStateRecommendedOffline(t *testing.T) {
	record := validRecord()
	record.Mode = "offline"

	result := ValidateOpportunity(record, testReferenceContext())

	assert.True(t, result.IsValid)
	assert.Contains(t, findingFields(result.Warnings), "state")

	record = validRecord()
	record.Mode = "offline"
	record.State = strPtr("Karnataka")
	result = ValidateOpportunity(record, testReferenceContext())
	assert.NotContains(t, findingFields(result.Warnings), "state")
}

func TestValidateOpportunityEligibilityTypeEnum(t *testing.T) {
	record := validRecord()
	record.EligibilityType = strPtr("class")

	result := ValidateOpportunity(record, testReferenceContext())

	assert.False(t, result.IsValid)
	assert.Contains(t, findingFields(result.Errors), "eligibilityType")
}

func TestValidateOpportunityContentNudges(t *testing.T) {
	record := validRecord()
	record.Benefits = []string{}
	record.Eligibility = []string{}

	result := ValidateOpportunity(record, testReferenceContext())

	assert.True(t, result.IsValid, "info findings never block")
	fields := findingFields(result.Warnings)
	assert.Contains(t, fields, "benefits")
	assert.Contains(t, fields, "eligibility")

	for _, warning := range result.Warnings {
		if warning.Field == "benefits" || warning.Field == "eligibility" {
			assert.Equal(t, InfoSeverity, warning.Severity)
		}
	}
}

func TestValidateOpportunityIdempotent(t *testing.T) {
	record := validRecord()
	record.Timeline = []models.TimelineEvent{
		{Date: "2026-04-01", Event: "Finals", Status: "finished"},
	}

	first := ValidateOpportunity(record, testReferenceContext())
	second := ValidateOpportunity(record, testReferenceContext())

	// The auto-correction already happened, so the second pass is clean
	assert.Equal(t, first.IsValid, second.IsValid)
	assert.Empty(t, second.AutoCorrections)
	assert.NotContains(t, findingFields(second.Warnings), "timeline[0]")
}

func TestValidateOpportunitiesPreservesOrder(t *testing.T) {
	records := []*ParsedOpportunity{}
	for i := 0; i < 20; i++ {
		record := validRecord()
		if i%2 == 1 {
			record.Title = nil
		}
		records = append(records, record)
	}

	results := ValidateOpportunities(records, testReferenceContext())
	require.Len(t, results, 20)

	for i, result := range results {
		if i%2 == 1 {
			assert.False(t, result.IsValid, "record %d", i)
		} else {
			assert.True(t, result.IsValid, "record %d", i)
		}
	}
}
