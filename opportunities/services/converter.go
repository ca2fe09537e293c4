package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"opportunity-admin-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug builds a URL-safe slug from a title, suffixed with a short
// random fragment so re-used titles stay unique
func GenerateSlug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugPattern.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	suffix := strings.Split(uuid.New().String(), "-")[0]
	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}

// BuildOpportunityModel converts a validated candidate record into the
// persistence model. Status is always forced to draft for bulk uploads, and
// dates flagged TBD are dropped in favour of the flag.
func BuildOpportunityModel(parsed *ParsedOpportunity, createdBy string) (*models.Opportunity, error) {
	if parsed.Title == nil {
		return nil, fmt.Errorf("row %d: title is required", parsed.RowNumber)
	}

	opportunity := &models.Opportunity{
		ID:    uuid.New(),
		Title: *parsed.Title,
		Slug:  GenerateSlug(*parsed.Title),

		CategoryName:  parsed.Category,
		OrganizerName: parsed.Organizer,
		OrganizerLogo: parsed.OrganizerLogo,

		GradeEligibility: parsed.GradeEligibility,
		AgeEligibility:   parsed.AgeEligibility,

		Mode:  models.OpportunityMode(parsed.Mode),
		State: parsed.State,

		StartDateTBD:            parsed.StartDateTBD,
		EndDateTBD:              parsed.EndDateTBD,
		RegistrationDeadlineTBD: parsed.RegistrationDeadlineTBD,

		Fee:       parsed.Fee,
		FeeAmount: parsed.FeeAmount,
		Currency:  parsed.Currency,

		Description:    parsed.Description,
		Image:          parsed.Image,
		ApplicationURL: parsed.ApplicationURL,

		RegistrationMode: models.RegistrationMode(parsed.RegistrationMode),
		Status:           models.DraftStatus,
		CreatedBy:        createdBy,
	}

	if opportunity.Currency == "" {
		opportunity.Currency = "INR"
	}
	if opportunity.RegistrationMode == "" {
		opportunity.RegistrationMode = models.ExternalRegistrationMode
	}

	if parsed.EligibilityType != nil {
		eligibilityType := models.EligibilityType(*parsed.EligibilityType)
		opportunity.EligibilityType = &eligibilityType
	}

	// Resolved master ids from the validation pass
	if parsed.CategoryID != nil {
		categoryID, err := uuid.Parse(*parsed.CategoryID)
		if err == nil {
			opportunity.CategoryID = &categoryID
		}
	}
	if parsed.OrganizerID != nil {
		organizerID, err := uuid.Parse(*parsed.OrganizerID)
		if err == nil {
			opportunity.OrganizerID = &organizerID
		}
	}

	// A date flagged TBD wins over any concrete value the sheet carried
	if !parsed.StartDateTBD {
		opportunity.StartDate = parseInstant(parsed.StartDate)
	}
	if !parsed.EndDateTBD {
		opportunity.EndDate = parseInstant(parsed.EndDate)
	}
	if !parsed.RegistrationDeadlineTBD {
		opportunity.RegistrationDeadline = parseInstant(parsed.RegistrationDeadline)
	}

	var err error
	if opportunity.Eligibility, err = marshalJSON(parsed.Eligibility); err != nil {
		return nil, fmt.Errorf("row %d: %w", parsed.RowNumber, err)
	}
	if opportunity.Benefits, err = marshalJSON(parsed.Benefits); err != nil {
		return nil, fmt.Errorf("row %d: %w", parsed.RowNumber, err)
	}
	if opportunity.RegistrationProcess, err = marshalJSON(parsed.RegistrationProcess); err != nil {
		return nil, fmt.Errorf("row %d: %w", parsed.RowNumber, err)
	}
	if opportunity.Segments, err = marshalJSON(parsed.Segments); err != nil {
		return nil, fmt.Errorf("row %d: %w", parsed.RowNumber, err)
	}
	if opportunity.SearchKeywords, err = marshalJSON(parsed.SearchKeywords); err != nil {
		return nil, fmt.Errorf("row %d: %w", parsed.RowNumber, err)
	}
	if opportunity.Timeline, err = marshalJSON(parsed.Timeline); err != nil {
		return nil, fmt.Errorf("row %d: %w", parsed.RowNumber, err)
	}

	return opportunity, nil
}

func parseInstant(value *string) *time.Time {
	if value == nil {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil
	}
	return &parsed
}

func marshalJSON(value interface{}) (datatypes.JSON, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode field: %w", err)
	}
	return datatypes.JSON(raw), nil
}
