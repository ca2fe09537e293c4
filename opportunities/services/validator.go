package services

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"opportunity-admin-backend/db/models"
)

// CategoryRef and OrganizerRef are the reference-data shapes consumed at
// validation time, fetched once before a validation pass and held immutably
// for its duration.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type OrganizerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// ReferenceContext carries the known categories, organizers and lowercased
// existing titles used for cross-checking. It is never mutated by validation.
type ReferenceContext struct {
	Categories     []CategoryRef
	Organizers     []OrganizerRef
	ExistingTitles map[string]struct{}
}

var validTimelineStatuses = map[models.TimelineStatus]struct{}{
	models.CompletedTimelineStatus: {},
	models.ActiveTimelineStatus:    {},
	models.UpcomingTimelineStatus:  {},
}

// ValidateOpportunity runs the full rule set over one parsed record and
// produces exactly one ValidationResult. All rules run every time, no
// short-circuiting. The only side effect is the documented auto-correction
// of invalid timeline statuses, which mutates the in-memory timeline entries
// and nothing else.
func ValidateOpportunity(opportunity *ParsedOpportunity, ctx *ReferenceContext) ValidationResult {
	errors := []ValidationFinding{}
	warnings := []ValidationFinding{}
	autoCorrections := []string{}

	// Required fields
	requireField(&errors, "title", opportunity.Title)
	requireField(&errors, "category", opportunity.Category)
	requireField(&errors, "organizer", opportunity.Organizer)
	requireField(&errors, "gradeEligibility", opportunity.GradeEligibility)
	if strings.TrimSpace(opportunity.Mode) == "" {
		errors = append(errors, ValidationFinding{
			Field:    "mode",
			Message:  "mode is required",
			Severity: ErrorSeverity,
		})
	}

	// Category existence is a warning, not an error: categories can be
	// created during manual approval after the upload
	if opportunity.Category != nil {
		if match := findCategory(ctx.Categories, *opportunity.Category); match != nil {
			opportunity.CategoryID = &match.ID
			opportunity.CategoryName = &match.Name
		} else {
			warnings = append(warnings, ValidationFinding{
				Field:    "category",
				Message:  fmt.Sprintf("Category %q not found in database. Can be added during manual approval.", *opportunity.Category),
				Severity: WarningSeverity,
				Value:    *opportunity.Category,
			})
		}
	}

	// Organizer existence, same policy as category
	if opportunity.Organizer != nil {
		if match := findOrganizer(ctx.Organizers, *opportunity.Organizer); match != nil {
			opportunity.OrganizerID = &match.ID
			opportunity.OrganizerName = &match.Name
			if match.Logo != "" {
				logo := match.Logo
				opportunity.OrganizerLogo = &logo
			}
		} else {
			warnings = append(warnings, ValidationFinding{
				Field:    "organizer",
				Message:  fmt.Sprintf("Organizer %q not found in database. Can be added during manual approval.", *opportunity.Organizer),
				Severity: WarningSeverity,
				Value:    *opportunity.Organizer,
			})
		}
	}

	// Duplicate title check against existing opportunities
	if opportunity.Title != nil && len(ctx.ExistingTitles) > 0 {
		if _, exists := ctx.ExistingTitles[strings.ToLower(strings.TrimSpace(*opportunity.Title))]; exists {
			warnings = append(warnings, ValidationFinding{
				Field:    "title",
				Message:  fmt.Sprintf("An opportunity titled %q already exists.", *opportunity.Title),
				Severity: WarningSeverity,
				Value:    *opportunity.Title,
			})
		}
	}

	// Date ordering
	if opportunity.StartDate != nil && opportunity.EndDate != nil {
		start, startErr := time.Parse(time.RFC3339, *opportunity.StartDate)
		end, endErr := time.Parse(time.RFC3339, *opportunity.EndDate)
		if startErr == nil && endErr == nil && end.Before(start) {
			errors = append(errors, ValidationFinding{
				Field:    "dates",
				Message:  "End date cannot be before start date",
				Severity: ErrorSeverity,
			})
		}
	}

	// A registration deadline after the start date is unusual but some
	// workflows allow late registration windows
	if opportunity.RegistrationDeadline != nil && opportunity.StartDate != nil {
		deadline, deadlineErr := time.Parse(time.RFC3339, *opportunity.RegistrationDeadline)
		start, startErr := time.Parse(time.RFC3339, *opportunity.StartDate)
		if deadlineErr == nil && startErr == nil && deadline.After(start) {
			warnings = append(warnings, ValidationFinding{
				Field:    "registrationDeadline",
				Message:  "Registration deadline is after the start date",
				Severity: WarningSeverity,
			})
		}
	}

	// TBD flags alongside concrete dates signal inconsistent input
	if opportunity.StartDateTBD && opportunity.StartDate != nil {
		warnings = append(warnings, ValidationFinding{
			Field:    "startDate",
			Message:  "Start date marked as TBD but a date is provided. The TBD flag will be ignored.",
			Severity: WarningSeverity,
		})
	}
	if opportunity.EndDateTBD && opportunity.EndDate != nil {
		warnings = append(warnings, ValidationFinding{
			Field:    "endDate",
			Message:  "End date marked as TBD but a date is provided. The TBD flag will be ignored.",
			Severity: WarningSeverity,
		})
	}
	if opportunity.RegistrationDeadlineTBD && opportunity.RegistrationDeadline != nil {
		warnings = append(warnings, ValidationFinding{
			Field:    "registrationDeadline",
			Message:  "Registration deadline marked as TBD but a date is provided. The TBD flag will be ignored.",
			Severity: WarningSeverity,
		})
	}

	// Timeline entries must carry both a date and an event; invalid statuses
	// are auto-corrected to upcoming and reported
	for index := range opportunity.Timeline {
		event := &opportunity.Timeline[index]
		field := fmt.Sprintf("timeline[%d]", index)

		if event.Date == "" {
			errors = append(errors, ValidationFinding{
				Field:    field,
				Message:  fmt.Sprintf("Timeline event %q is missing a date", event.Event),
				Severity: ErrorSeverity,
			})
		}
		if event.Event == "" {
			errors = append(errors, ValidationFinding{
				Field:    field,
				Message:  fmt.Sprintf("Timeline entry %d is missing an event description", index+1),
				Severity: ErrorSeverity,
			})
		}

		if _, ok := validTimelineStatuses[event.Status]; !ok {
			warnings = append(warnings, ValidationFinding{
				Field:    field,
				Message:  fmt.Sprintf("Timeline event %q has invalid status %q. Using \"upcoming\" instead.", event.Event, event.Status),
				Severity: WarningSeverity,
				Value:    string(event.Status),
			})
			event.Status = models.UpcomingTimelineStatus
			autoCorrections = append(autoCorrections, fmt.Sprintf("Timeline event %q status auto-corrected to \"upcoming\"", event.Event))
		}
	}

	// URLs: a broken application URL blocks registration, a broken image
	// URL is only cosmetic
	if opportunity.ApplicationURL != nil && !isValidURL(*opportunity.ApplicationURL) {
		errors = append(errors, ValidationFinding{
			Field:    "applicationUrl",
			Message:  "Application URL is not a valid URL",
			Severity: ErrorSeverity,
			Value:    *opportunity.ApplicationURL,
		})
	}
	if opportunity.Image != nil && !isValidURL(*opportunity.Image) {
		warnings = append(warnings, ValidationFinding{
			Field:    "image",
			Message:  "Image URL may not be valid",
			Severity: WarningSeverity,
			Value:    *opportunity.Image,
		})
	}

	// Mode re-validation: the normalizer defaults to online at parse time,
	// but the edit loop can reintroduce arbitrary values
	if opportunity.Mode != "" {
		switch models.OpportunityMode(opportunity.Mode) {
		case models.OnlineMode, models.OfflineMode, models.HybridMode:
		default:
			errors = append(errors, ValidationFinding{
				Field:    "mode",
				Message:  "Mode must be one of: online, offline, hybrid",
				Severity: ErrorSeverity,
				Value:    opportunity.Mode,
			})
		}
	}

	// State is recommended when students have to show up somewhere
	if (opportunity.Mode == string(models.OfflineMode) || opportunity.Mode == string(models.HybridMode)) && opportunity.State == nil {
		warnings = append(warnings, ValidationFinding{
			Field:    "state",
			Message:  "State is recommended for offline/hybrid opportunities",
			Severity: WarningSeverity,
		})
	}

	// Eligibility type enum
	if opportunity.EligibilityType != nil {
		switch models.EligibilityType(*opportunity.EligibilityType) {
		case models.GradeEligibilityType, models.AgeEligibilityType, models.BothEligibilityType:
		default:
			errors = append(errors, ValidationFinding{
				Field:    "eligibilityType",
				Message:  "Eligibility type must be one of: grade, age, both",
				Severity: ErrorSeverity,
				Value:    *opportunity.EligibilityType,
			})
		}
	}

	// Informational nudges towards content completeness, never blocking
	if len(opportunity.Benefits) == 0 {
		warnings = append(warnings, ValidationFinding{
			Field:    "benefits",
			Message:  "No benefits listed. Consider adding benefits to make the opportunity more appealing.",
			Severity: InfoSeverity,
		})
	}
	if len(opportunity.Eligibility) == 0 {
		warnings = append(warnings, ValidationFinding{
			Field:    "eligibility",
			Message:  "No eligibility criteria listed.",
			Severity: InfoSeverity,
		})
	}

	return ValidationResult{
		IsValid:         len(errors) == 0,
		Errors:          errors,
		Warnings:        warnings,
		AutoCorrections: autoCorrections,
	}
}

// ValidateOpportunities validates every record independently; records share
// no mutable state so the batch fans out across goroutines and joins before
// returning. Result order matches input order.
func ValidateOpportunities(opportunities []*ParsedOpportunity, ctx *ReferenceContext) []ValidationResult {
	results := make([]ValidationResult, len(opportunities))

	var wg sync.WaitGroup
	for i, opportunity := range opportunities {
		wg.Add(1)
		go func(i int, opportunity *ParsedOpportunity) {
			defer wg.Done()
			results[i] = ValidateOpportunity(opportunity, ctx)
		}(i, opportunity)
	}
	wg.Wait()

	return results
}

func requireField(errors *[]ValidationFinding, field string, value *string) {
	if value == nil || strings.TrimSpace(*value) == "" {
		*errors = append(*errors, ValidationFinding{
			Field:    field,
			Message:  fmt.Sprintf("%s is required", field),
			Severity: ErrorSeverity,
		})
	}
}

func findCategory(categories []CategoryRef, name string) *CategoryRef {
	for i := range categories {
		if strings.EqualFold(categories[i].Name, name) {
			return &categories[i]
		}
	}
	return nil
}

func findOrganizer(organizers []OrganizerRef, name string) *OrganizerRef {
	for i := range organizers {
		if strings.EqualFold(organizers[i].Name, name) {
			return &organizers[i]
		}
	}
	return nil
}

func isValidURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
