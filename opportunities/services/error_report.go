package services

import (
	"fmt"
	"strings"

	"opportunity-admin-backend/utils"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrorReportRow is one exported line of the invalid/warned-rows report.
// Field names double as the export column headers.
type ErrorReportRow struct {
	RowNumber    int
	Title        string
	Category     string
	Organizer    string
	Status       string
	ErrorCount   int
	WarningCount int
	Issues       string
}

var errorReportHeaders = []string{
	"RowNumber", "Title", "Category", "Organizer", "Status",
	"ErrorCount", "WarningCount", "Issues",
}

// BuildErrorReportRows selects only records with errors or warnings, one
// export row per record, with a single concatenated issues string.
func BuildErrorReportRows(records []OpportunityWithValidation) []ErrorReportRow {
	titleCaser := cases.Title(language.English)
	rows := []ErrorReportRow{}

	for _, record := range records {
		validation := record.Validation
		if validation.IsValid && len(validation.Warnings) == 0 {
			continue
		}

		status := "warning"
		if !validation.IsValid {
			status = "error"
		}

		var issues []string
		for _, finding := range validation.Errors {
			issues = append(issues, fmt.Sprintf("ERROR: %s - %s", finding.Field, finding.Message))
		}
		for _, finding := range validation.Warnings {
			issues = append(issues, fmt.Sprintf("WARNING: %s - %s", finding.Field, finding.Message))
		}

		rows = append(rows, ErrorReportRow{
			RowNumber:    record.Opportunity.RowNumber,
			Title:        stringValue(record.Opportunity.Title),
			Category:     stringValue(record.Opportunity.Category),
			Organizer:    stringValue(record.Opportunity.Organizer),
			Status:       titleCaser.String(status),
			ErrorCount:   len(validation.Errors),
			WarningCount: len(validation.Warnings),
			Issues:       strings.Join(issues, " | "),
		})
	}

	return rows
}

// GenerateErrorReport writes the report workbook into the public files
// directory and returns its download link. Empty reports produce no file.
func GenerateErrorReport(records []OpportunityWithValidation, reportName string) (string, error) {
	rows := BuildErrorReportRows(records)
	if len(rows) == 0 {
		return "", nil
	}

	filePath, err := utils.GenerateExcel(rows, reportName, errorReportHeaders)
	if err != nil {
		return "", fmt.Errorf("failed to generate error report: %w", err)
	}

	return utils.GenerateDownloadLink(filePath), nil
}
