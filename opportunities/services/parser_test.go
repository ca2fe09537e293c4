package services

import (
	"os"
	"path/filepath"
	"testing"

	"opportunity-admin-backend/db/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, ref, cell))
		}
	}

	path := filepath.Join(t.TempDir(), "upload.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func writeTestCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseUploadedFileRowNumbering(t *testing.T) {
	path := writeTestWorkbook(t, [][]string{
		{"title", "category", "organizer"},
		{"Math Olympiad", "Olympiad", "MathSoc"},
		{"Essay Contest", "Competition", "LitClub"},
	})

	parsed, err := ParseUploadedFile(path, models.ExternalRegistrationMode)
	require.NoError(t, err)
	require.Len(t, parsed, 2)

	// Row numbers point at the physical spreadsheet rows, after the header
	assert.Equal(t, 2, parsed[0].RowNumber)
	assert.Equal(t, 3, parsed[1].RowNumber)

	require.NotNil(t, parsed[0].Title)
	assert.Equal(t, "Math Olympiad", *parsed[0].Title)
	assert.NotEqual(t, parsed[0].TempID, parsed[1].TempID)
	assert.Equal(t, "draft", parsed[0].Status)
	assert.Equal(t, "external", parsed[0].RegistrationMode)
	assert.Equal(t, "INR", parsed[0].Currency)
}

func TestParseUploadedFileRejectsEmpty(t *testing.T) {
	path := writeTestWorkbook(t, [][]string{
		{"title", "category", "organizer"},
	})

	_, err := ParseUploadedFile(path, models.ExternalRegistrationMode)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty or has no data rows")
}

func TestParseUploadedFileHeaderAliases(t *testing.T) {
	path := writeTestWorkbook(t, [][]string{
		{"Title", "start_date", "ApplicationUrl", "registration_deadline_tbd"},
		{"Robotics Camp", "2026-05-01", "https://example.org/apply", "yes"},
	})

	parsed, err := ParseUploadedFile(path, models.ExternalRegistrationMode)
	require.NoError(t, err)
	require.Len(t, parsed, 1)

	record := parsed[0]
	require.NotNil(t, record.Title)
	assert.Equal(t, "Robotics Camp", *record.Title)
	require.NotNil(t, record.StartDate)
	assert.Equal(t, "2026-05-01T00:00:00Z", *record.StartDate)
	require.NotNil(t, record.ApplicationURL)
	assert.Equal(t, "https://example.org/apply", *record.ApplicationURL)
	assert.True(t, record.RegistrationDeadlineTBD)
}

func TestParseUploadedFileNormalizesFields(t *testing.T) {
	path := writeTestWorkbook(t, [][]string{
		{"title", "mode", "fee", "benefits", "timeline", "eligibilityType"},
		{"Quiz Whiz", "VIRTUAL", "INR 200 per head", "Medal; Certificate", "2026-04-01|Finals|active", "grade"},
	})

	parsed, err := ParseUploadedFile(path, models.InternalRegistrationMode)
	require.NoError(t, err)
	require.Len(t, parsed, 1)

	record := parsed[0]
	assert.Equal(t, "online", record.Mode)
	require.NotNil(t, record.FeeAmount)
	assert.Equal(t, "200", record.FeeAmount.String())
	assert.Equal(t, []string{"Medal", "Certificate"}, record.Benefits)
	require.Len(t, record.Timeline, 1)
	assert.Equal(t, models.ActiveTimelineStatus, record.Timeline[0].Status)
	require.NotNil(t, record.EligibilityType)
	assert.Equal(t, "grade", *record.EligibilityType)
	assert.Equal(t, "internal", record.RegistrationMode)
}

func TestParseUploadedFileCSV(t *testing.T) {
	path := writeTestCSV(t, "title,category,organizer\nScience Fair,Competition,SciClub\n")

	parsed, err := ParseUploadedFile(path, models.ExternalRegistrationMode)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	require.NotNil(t, parsed[0].Title)
	assert.Equal(t, "Science Fair", *parsed[0].Title)
	assert.Equal(t, 2, parsed[0].RowNumber)
}

func TestParseUploadedFileKeepsRawData(t *testing.T) {
	path := writeTestWorkbook(t, [][]string{
		{"title", "unknown_column"},
		{"Chess Open", "something"},
	})

	parsed, err := ParseUploadedFile(path, models.ExternalRegistrationMode)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, "Chess Open", parsed[0].RawData["title"])
	assert.Equal(t, "something", parsed[0].RawData["unknown_column"])
}
