package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildErrorReportRowsSelectsOnlyProblemRows(t *testing.T) {
	records := []OpportunityWithValidation{
		{
			Opportunity: &ParsedOpportunity{RowNumber: 2, Title: strPtr("Clean Row")},
			Validation:  ValidationResult{IsValid: true},
		},
		{
			Opportunity: &ParsedOpportunity{RowNumber: 3, Title: strPtr("Bad Row"), Category: strPtr("Olympiad")},
			Validation: ValidationResult{
				IsValid: false,
				Errors: []ValidationFinding{
					{Field: "gradeEligibility", Message: "gradeEligibility is required", Severity: ErrorSeverity},
				},
				Warnings: []ValidationFinding{
					{Field: "organizer", Message: "Organizer \"X\" not found in database. Can be added during manual approval.", Severity: WarningSeverity},
				},
			},
		},
		{
			Opportunity: &ParsedOpportunity{RowNumber: 4, Title: strPtr("Warned Row")},
			Validation: ValidationResult{
				IsValid: true,
				Warnings: []ValidationFinding{
					{Field: "image", Message: "Image URL may not be valid", Severity: WarningSeverity},
				},
			},
		},
	}

	rows := BuildErrorReportRows(records)
	require.Len(t, rows, 2)

	assert.Equal(t, 3, rows[0].RowNumber)
	assert.Equal(t, "Bad Row", rows[0].Title)
	assert.Equal(t, "Error", rows[0].Status)
	assert.Equal(t, 1, rows[0].ErrorCount)
	assert.Equal(t, 1, rows[0].WarningCount)
	assert.Contains(t, rows[0].Issues, "ERROR: gradeEligibility - gradeEligibility is required")
	assert.Contains(t, rows[0].Issues, " | WARNING: organizer - ")

	assert.Equal(t, 4, rows[1].RowNumber)
	assert.Equal(t, "Warning", rows[1].Status)
	assert.Equal(t, 0, rows[1].ErrorCount)
}

func TestBuildErrorReportRowsEmptyForCleanBatch(t *testing.T) {
	records := []OpportunityWithValidation{
		{
			Opportunity: &ParsedOpportunity{RowNumber: 2, Title: strPtr("Clean Row")},
			Validation:  ValidationResult{IsValid: true},
		},
	}

	assert.Empty(t, BuildErrorReportRows(records))
}
