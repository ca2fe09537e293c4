package services

import (
	"regexp"
	"strings"
	"time"

	"opportunity-admin-backend/db/models"

	"github.com/shopspring/decimal"
)

// Field normalizers turn raw spreadsheet cell text into typed values. They
// are total: malformed input degrades to absent or a safe default, and
// correctness enforcement is left to the validator.

var arrayDelimiters = regexp.MustCompile(`[,;|]`)

var feeAmountPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// dateLayouts are tried in order when parsing spreadsheet dates
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"01-02-06",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
}

// NormalizeString trims whitespace; empty input becomes absent
func NormalizeString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// NormalizeArrayField splits a delimited cell on comma, semicolon or pipe,
// trims each token and drops empties. Absent input yields an empty list.
func NormalizeArrayField(value string) []string {
	result := []string{}
	if strings.TrimSpace(value) == "" {
		return result
	}
	for _, token := range arrayDelimiters.Split(value, -1) {
		token = strings.TrimSpace(token)
		if token != "" {
			result = append(result, token)
		}
	}
	return result
}

// NormalizeBoolean treats "true", "1" and "yes" (any case) as true;
// everything else, including absent, is false
func NormalizeBoolean(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// NormalizeDate parses a cell as a date and returns an RFC3339 UTC instant.
// Unparseable or absent input becomes absent, never a default date.
func NormalizeDate(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			iso := parsed.UTC().Format(time.RFC3339)
			return &iso
		}
	}
	return nil
}

// NormalizeMode lower-cases the cell and keeps offline/hybrid; anything
// else, including absent, defaults to online
func NormalizeMode(value string) string {
	mode := strings.ToLower(strings.TrimSpace(value))
	if mode == string(models.OfflineMode) || mode == string(models.HybridMode) {
		return mode
	}
	return string(models.OnlineMode)
}

// NormalizeEligibilityType keeps grade/age/both; anything else becomes
// absent, since absence is itself meaningful downstream
func NormalizeEligibilityType(value string) *string {
	eligibilityType := strings.ToLower(strings.TrimSpace(value))
	switch eligibilityType {
	case string(models.GradeEligibilityType), string(models.AgeEligibilityType), string(models.BothEligibilityType):
		return &eligibilityType
	}
	return nil
}

// NormalizeTimeline parses "date|event|status" entries separated by ";".
// An entry is kept only when both date and event are non-empty after
// trimming; a missing status defaults to upcoming. Source order is kept.
func NormalizeTimeline(value string) []models.TimelineEvent {
	timeline := []models.TimelineEvent{}
	if strings.TrimSpace(value) == "" {
		return timeline
	}

	for _, entry := range strings.Split(value, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, "|")
		if len(parts) < 2 {
			continue
		}

		date := strings.TrimSpace(parts[0])
		event := strings.TrimSpace(parts[1])
		status := string(models.UpcomingTimelineStatus)
		if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
			status = strings.TrimSpace(parts[2])
		}

		if date == "" || event == "" {
			continue
		}

		timeline = append(timeline, models.TimelineEvent{
			Date:   date,
			Event:  event,
			Status: models.TimelineStatus(status),
		})
	}
	return timeline
}

// NormalizeFeeAmount extracts the first numeric amount from free-text fee
// ("INR 500 per team" -> 500). Non-numeric fees stay absent; the fee text
// itself is always preserved on the record.
func NormalizeFeeAmount(value string) *decimal.Decimal {
	match := feeAmountPattern.FindString(value)
	if match == "" {
		return nil
	}
	amount, err := decimal.NewFromString(match)
	if err != nil {
		return nil
	}
	return &amount
}
