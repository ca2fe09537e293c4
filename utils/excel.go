package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"opportunity-admin-backend/config"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const exportDir = "./public/files"

// EnsureDirectoryExists ensures the specified directory exists before file saving
func EnsureDirectoryExists(filePath string) error {
	dir := filepath.Dir(filePath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return fmt.Errorf("error creating directory: %v", err)
		}
	}
	return nil
}

// GenerateExcel creates an Excel file from a slice of flat structs. Headers
// must match exported field names; values are resolved by reflection.
func GenerateExcel(data interface{}, taskName string, headers []string) (string, error) {
	if err := EnsureDirectoryExists(exportDir + "/placeholder"); err != nil {
		return "", fmt.Errorf("failed to ensure export directory exists: %v", err)
	}

	f := excelize.NewFile()
	sheetName := "Sheet1"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", fmt.Errorf("error resolving header cell: %v", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return "", fmt.Errorf("error setting header %s: %v", header, err)
		}
	}

	dataSlice := reflect.ValueOf(data)
	if dataSlice.Kind() != reflect.Slice {
		return "", fmt.Errorf("expected data to be a slice, got %v", dataSlice.Kind())
	}

	for row := 0; row < dataSlice.Len(); row++ {
		item := dataSlice.Index(row)
		for col, header := range headers {
			field := item.FieldByName(header)
			if !field.IsValid() {
				config.Logger.Warn("Export field not found on struct",
					zap.String("field", header),
					zap.Int("row", row+2))
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return "", fmt.Errorf("error resolving cell for %s: %v", header, err)
			}
			if err := f.SetCellValue(sheetName, cell, field.Interface()); err != nil {
				return "", fmt.Errorf("error setting value for field %s (row %d): %v", header, row+2, err)
			}
		}
	}

	f.SetActiveSheet(index)

	fileName := fmt.Sprintf("%s_%s.xlsx", taskName, time.Now().Format("2006-01-02_15-04-05"))
	relativeFilePath := fmt.Sprintf("%s/%s", exportDir, fileName)

	if err := f.SaveAs(relativeFilePath); err != nil {
		config.Logger.Error("Failed to save generated Excel file",
			zap.String("path", relativeFilePath),
			zap.Error(err))
		return "", err
	}

	return fmt.Sprintf("/public/files/%s", fileName), nil
}

// GenerateDownloadLink turns a public file path into an absolute URL
func GenerateDownloadLink(filePath string) string {
	baseURL := config.GetEnvOrDefault("BASE_URL", "http://localhost:8080")
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(baseURL, "/"), strings.TrimPrefix(filePath, "/"))
}
