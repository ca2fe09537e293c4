package controllers

import (
	"fmt"

	"opportunity-admin-backend/config"
	"opportunity-admin-backend/registrations/repositories"
	"opportunity-admin-backend/utils"
	"opportunity-admin-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RegistrationController struct {
	Repo repositories.RegistrationRepository
	DB   *gorm.DB
}

// rosterExportRow is the flat shape written to the roster workbook. Field
// names double as the export column headers.
type rosterExportRow struct {
	StudentName  string
	StudentEmail string
	Grade        string
	School       string
	State        string
	PhoneNumber  string
	Status       string
	RegisteredAt string
}

var rosterExportHeaders = []string{
	"StudentName", "StudentEmail", "Grade", "School",
	"State", "PhoneNumber", "Status", "RegisteredAt",
}

// GetRosterController lists an opportunity's registrations with pagination,
// filters and summary counts
func (rc *RegistrationController) GetRosterController(c *fiber.Ctx) error {
	opportunityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid opportunity id",
		})
	}

	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	offset := (params.Page - 1) * params.PageSize

	registrations, total, err := rc.Repo.GetFilteredRegistrations(opportunityID, params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch roster",
			zap.Error(err),
			zap.String("opportunityID", opportunityID.String()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch registrations",
		})
	}

	summary, err := rc.Repo.GetRegistrationSummary(opportunityID)
	if err != nil {
		config.Logger.Error("Failed to summarize roster",
			zap.Error(err),
			zap.String("opportunityID", opportunityID.String()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to summarize registrations",
		})
	}

	response := pagination.NewPaginatedResponse(c, registrations, total, params)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"items":      response.Items,
		"pagination": response.Pagination,
		"summary":    summary,
	})
}

// ExportRosterController writes the filtered roster to a workbook and
// returns its download link
func (rc *RegistrationController) ExportRosterController(c *fiber.Ctx) error {
	opportunityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid opportunity id",
		})
	}

	filters := make(map[string]string)
	for _, key := range []string{"status", "state", "grade", "search"} {
		if value := c.Query(key); value != "" {
			filters[key] = value
		}
	}

	registrations, err := rc.Repo.GetAllRegistrations(opportunityID, filters)
	if err != nil {
		config.Logger.Error("Failed to fetch roster for export",
			zap.Error(err),
			zap.String("opportunityID", opportunityID.String()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch registrations",
		})
	}
	if len(registrations) == 0 {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message":       "No registrations to export",
			"download_link": nil,
		})
	}

	rows := make([]rosterExportRow, 0, len(registrations))
	for _, registration := range registrations {
		rows = append(rows, rosterExportRow{
			StudentName:  registration.StudentName,
			StudentEmail: registration.StudentEmail,
			Grade:        stringValue(registration.Grade),
			School:       stringValue(registration.School),
			State:        stringValue(registration.State),
			PhoneNumber:  stringValue(registration.PhoneNumber),
			Status:       string(registration.Status),
			RegisteredAt: registration.RegisteredAt.Format("2006-01-02 15:04"),
		})
	}

	exportName := fmt.Sprintf("roster_%s", opportunityID.String()[:8])
	filePath, err := utils.GenerateExcel(rows, exportName, rosterExportHeaders)
	if err != nil {
		config.Logger.Error("Failed to generate roster export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate export",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"download_link": utils.GenerateDownloadLink(filePath),
		"row_count":     len(rows),
	})
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
