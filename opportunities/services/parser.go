package services

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"opportunity-admin-backend/db/models"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// headerAliases maps each logical field to its accepted header spellings,
// checked in priority order; the first header present in the sheet wins.
var headerAliases = map[string][]string{
	"title":                   {"title", "Title"},
	"category":                {"category", "Category"},
	"organizer":               {"organizer", "Organizer"},
	"gradeEligibility":        {"gradeEligibility", "GradeEligibility", "grade_eligibility"},
	"eligibilityType":         {"eligibilityType", "EligibilityType", "eligibility_type"},
	"ageEligibility":          {"ageEligibility", "AgeEligibility", "age_eligibility"},
	"mode":                    {"mode", "Mode"},
	"state":                   {"state", "State"},
	"startDate":               {"startDate", "StartDate", "start_date"},
	"endDate":                 {"endDate", "EndDate", "end_date"},
	"registrationDeadline":    {"registrationDeadline", "RegistrationDeadline", "registration_deadline"},
	"startDateTBD":            {"startDateTBD", "StartDateTBD", "start_date_tbd"},
	"endDateTBD":              {"endDateTBD", "EndDateTBD", "end_date_tbd"},
	"registrationDeadlineTBD": {"registrationDeadlineTBD", "RegistrationDeadlineTBD", "registration_deadline_tbd"},
	"fee":                     {"fee", "Fee"},
	"description":             {"description", "Description"},
	"image":                   {"image", "Image", "imageUrl"},
	"applicationUrl":          {"applicationUrl", "ApplicationUrl", "application_url"},
	"eligibility":             {"eligibility", "Eligibility"},
	"benefits":                {"benefits", "Benefits"},
	"registrationProcess":     {"registrationProcess", "RegistrationProcess", "registration_process"},
	"segments":                {"segments", "Segments"},
	"searchKeywords":          {"searchKeywords", "SearchKeywords", "search_keywords"},
	"timeline":                {"timeline", "Timeline"},
}

// TemplateHeaders lists every recognized header in template column order
var TemplateHeaders = []string{
	"title", "category", "organizer", "gradeEligibility", "eligibilityType",
	"ageEligibility", "mode", "state", "startDate", "endDate",
	"registrationDeadline", "startDateTBD", "endDateTBD", "registrationDeadlineTBD",
	"fee", "description", "image", "applicationUrl", "eligibility", "benefits",
	"registrationProcess", "segments", "searchKeywords", "timeline",
}

// resolveField returns the cell value for a logical field, trying each
// accepted header spelling in priority order
func resolveField(row map[string]string, field string) string {
	for _, alias := range headerAliases[field] {
		if value, ok := row[alias]; ok && value != "" {
			return value
		}
	}
	return ""
}

// ParseUploadedFile reads an uploaded .xlsx or .csv file and returns one
// ParsedOpportunity per data row. It reads only the first sheet, rejects
// files with zero data rows, and numbers rows from 2 so operator-facing
// messages point at the physical spreadsheet row.
func ParseUploadedFile(filePath string, registrationMode models.RegistrationMode) ([]*ParsedOpportunity, error) {
	var rows [][]string
	var err error

	if strings.EqualFold(filepath.Ext(filePath), ".csv") {
		rows, err = readCSVRows(filePath)
	} else {
		rows, err = readExcelRows(filePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("the uploaded file is empty or has no data rows")
	}

	header := rows[0]
	opportunities := make([]*ParsedOpportunity, 0, len(rows)-1)

	for i, row := range rows[1:] {
		rowMap := make(map[string]string, len(header))
		for col, name := range header {
			name = strings.TrimSpace(name)
			if name == "" || col >= len(row) {
				continue
			}
			rowMap[name] = strings.TrimSpace(row[col])
		}

		opportunities = append(opportunities, parseRow(rowMap, i+2, registrationMode))
	}

	return opportunities, nil
}

// parseRow maps one raw row through the field normalizers into a candidate
// record. rowNumber already accounts for the header row.
func parseRow(row map[string]string, rowNumber int, registrationMode models.RegistrationMode) *ParsedOpportunity {
	fee := NormalizeString(resolveField(row, "fee"))

	opportunity := &ParsedOpportunity{
		TempID:    uuid.New().String(),
		RowNumber: rowNumber,
		RawData:   row,

		Title:     NormalizeString(resolveField(row, "title")),
		Category:  NormalizeString(resolveField(row, "category")),
		Organizer: NormalizeString(resolveField(row, "organizer")),

		GradeEligibility: NormalizeString(resolveField(row, "gradeEligibility")),
		EligibilityType:  NormalizeEligibilityType(resolveField(row, "eligibilityType")),
		AgeEligibility:   NormalizeString(resolveField(row, "ageEligibility")),

		Mode:  NormalizeMode(resolveField(row, "mode")),
		State: NormalizeString(resolveField(row, "state")),

		StartDate:               NormalizeDate(resolveField(row, "startDate")),
		EndDate:                 NormalizeDate(resolveField(row, "endDate")),
		RegistrationDeadline:    NormalizeDate(resolveField(row, "registrationDeadline")),
		StartDateTBD:            NormalizeBoolean(resolveField(row, "startDateTBD")),
		EndDateTBD:              NormalizeBoolean(resolveField(row, "endDateTBD")),
		RegistrationDeadlineTBD: NormalizeBoolean(resolveField(row, "registrationDeadlineTBD")),

		Fee:       fee,
		FeeAmount: NormalizeFeeAmount(resolveField(row, "fee")),
		Currency:  "INR",

		Description:    NormalizeString(resolveField(row, "description")),
		Image:          NormalizeString(resolveField(row, "image")),
		ApplicationURL: NormalizeString(resolveField(row, "applicationUrl")),

		Eligibility:         NormalizeArrayField(resolveField(row, "eligibility")),
		Benefits:            NormalizeArrayField(resolveField(row, "benefits")),
		RegistrationProcess: NormalizeArrayField(resolveField(row, "registrationProcess")),
		Segments:            NormalizeArrayField(resolveField(row, "segments")),
		SearchKeywords:      NormalizeArrayField(resolveField(row, "searchKeywords")),

		Timeline: NormalizeTimeline(resolveField(row, "timeline")),

		RegistrationMode: string(registrationMode),
		Status:           string(models.DraftStatus),
	}

	return opportunity
}

func readExcelRows(filePath string) ([][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Only the first sheet is read for multi-sheet workbooks
	sheetName := f.GetSheetName(0)
	return f.GetRows(sheetName)
}

func readCSVRows(filePath string) ([][]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}
