package controllers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"opportunity-admin-backend/config"
	"opportunity-admin-backend/db/models"
	"opportunity-admin-backend/internal/tasks"
	"opportunity-admin-backend/opportunities/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CreateUploadSessionController accepts the spreadsheet, parses and validates
// it and returns the new session in its preview (or failed upload) state
func (oc *OpportunityController) CreateUploadSessionController(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to get file",
		})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".xlsx" && ext != ".csv" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only .xlsx and .csv files are supported",
		})
	}

	if err := os.MkdirAll("./tmp", 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save file",
		})
	}
	tempFilePath := fmt.Sprintf("./tmp/%s_%s", uuid.New().String(), file.Filename)
	if err := c.SaveFile(file, tempFilePath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save file",
		})
	}
	defer os.Remove(tempFilePath)

	registrationMode := models.ExternalRegistrationMode
	if c.FormValue("registration_mode") == string(models.InternalRegistrationMode) {
		registrationMode = models.InternalRegistrationMode
	}

	session := oc.Sessions.StartSession(tempFilePath, file.Filename, registrationMode)

	view := session.Snapshot()
	status := fiber.StatusCreated
	if view.ErrorMessage != "" {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(fiber.Map{
		"session": view,
	})
}

// GetUploadSessionController returns the current state of an upload session
func (oc *OpportunityController) GetUploadSessionController(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session id",
		})
	}

	session, ok := oc.Sessions.Store.Get(sessionID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Upload session not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"session": session,
	})
}

// EditUploadRecordController replaces one record's fields and re-validates
// the whole batch
func (oc *OpportunityController) EditUploadRecordController(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session id",
		})
	}

	var updated services.ParsedOpportunity
	if err := c.BodyParser(&updated); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	session, err := oc.Sessions.EditRecord(sessionID, c.Params("tempId"), updated)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"session": session,
	})
}

// DeleteUploadRecordController removes one record from the session
func (oc *OpportunityController) DeleteUploadRecordController(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session id",
		})
	}

	session, err := oc.Sessions.DeleteRecord(sessionID, c.Params("tempId"))
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"session": session,
	})
}

// DeleteInvalidRecordsController drops every record with errors. The operator
// must pass confirm=true; the removal cannot be undone within the session.
func (oc *OpportunityController) DeleteInvalidRecordsController(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session id",
		})
	}

	confirmed := c.Query("confirm") == "true"
	session, err := oc.Sessions.DeleteInvalid(sessionID, confirmed)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"session": session,
	})
}

// SubmitUploadSessionController persists the batch once no errors remain
func (oc *OpportunityController) SubmitUploadSessionController(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session id",
		})
	}

	var body struct {
		CreatedBy string `json:"created_by"`
	}
	if err := c.BodyParser(&body); err != nil || body.CreatedBy == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing 'created_by' field",
		})
	}

	session, err := oc.Sessions.Submit(sessionID, body.CreatedBy)
	if err != nil {
		if session == nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		// Submission ran but created nothing
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   err.Error(),
			"session": session,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"session": session,
	})
}

// ResetUploadSessionController returns the session to a fresh upload step
func (oc *OpportunityController) ResetUploadSessionController(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session id",
		})
	}

	session, err := oc.Sessions.Reset(sessionID)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"session": session,
	})
}

// RefreshReferenceDataController re-fetches reference data and re-validates
// the batch, for when the operator created a missing category or organizer
// in another tab
func (oc *OpportunityController) RefreshReferenceDataController(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session id",
		})
	}

	session, err := oc.Sessions.RefreshReference(sessionID)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"session": session,
	})
}

// DownloadErrorReportController exports the invalid/warned rows as a
// workbook. With ?email=, the download link is also mailed in the background.
func (oc *OpportunityController) DownloadErrorReportController(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session id",
		})
	}

	session, ok := oc.Sessions.Store.Get(sessionID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Upload session not found",
		})
	}

	view := session.Snapshot()
	reportName := fmt.Sprintf("bulk_upload_errors_%s", sessionID.String()[:8])
	downloadLink, err := services.GenerateErrorReport(view.Records, reportName)
	if err != nil {
		config.Logger.Error("Failed to generate error report",
			zap.Error(err),
			zap.String("sessionID", sessionID.String()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate error report",
		})
	}
	if downloadLink == "" {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message":       "No rows with errors or warnings to report",
			"download_link": nil,
		})
	}

	if email := c.Query("email"); email != "" && oc.AsynqClient != nil {
		task, err := tasks.NewErrorReportEmailTask(tasks.ErrorReportEmailPayload{
			Email:        email,
			FileName:     view.FileName,
			DownloadLink: downloadLink,
			InvalidRows:  view.Stats.InvalidRows,
			WarningRows:  view.Stats.WarningRows,
		})
		if err == nil {
			_, err = oc.AsynqClient.Enqueue(task)
		}
		if err != nil {
			config.Logger.Warn("Failed to enqueue error report email",
				zap.String("email", email),
				zap.Error(err))
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"download_link": downloadLink,
	})
}

// DownloadTemplateController streams the upload template workbook
func (oc *OpportunityController) DownloadTemplateController(c *fiber.Ctx) error {
	workbook, err := services.BuildTemplateWorkbook()
	if err != nil {
		config.Logger.Error("Failed to build upload template", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build template",
		})
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="opportunity_upload_template.xlsx"`)
	if err := workbook.Write(c.Response().BodyWriter()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to write template",
		})
	}
	return nil
}
