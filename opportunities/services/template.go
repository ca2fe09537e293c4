package services

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// templateExampleRow is one filled-in example so operator files are
// structurally self-describing. Column order matches TemplateHeaders.
var templateExampleRow = []string{
	"National Science Olympiad",
	"Olympiad",
	"Science Foundation of India",
	"6-12",
	"grade",
	"",
	"online",
	"",
	"2025-09-01",
	"2025-09-30",
	"2025-08-20",
	"false",
	"false",
	"false",
	"INR 250",
	"A national-level science olympiad for school students.",
	"https://example.org/olympiad.png",
	"https://example.org/apply",
	"Open to all boards; Grades 6 to 12",
	"Certificates; Cash prizes; Mentorship",
	"Register online; Pay fee; Appear for exam",
	"featured",
	"science, olympiad, national",
	"2025-09-01|Registration Opens|upcoming; 2025-09-30|Exam Day|upcoming",
}

// BuildTemplateWorkbook creates the downloadable upload template: every
// recognized header plus one example row
func BuildTemplateWorkbook() (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Opportunities"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating template sheet: %w", err)
	}

	for col, header := range TemplateHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("error resolving header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("error writing header %s: %w", header, err)
		}
	}

	for col, value := range templateExampleRow {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return nil, fmt.Errorf("error resolving example cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return nil, fmt.Errorf("error writing example value: %w", err)
		}
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")
	return f, nil
}
