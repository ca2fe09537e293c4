package controllers

import (
	"encoding/json"
	"errors"

	"opportunity-admin-backend/config"
	"opportunity-admin-backend/db/models"
	"opportunity-admin-backend/quizzes/repositories"
	"opportunity-admin-backend/quizzes/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuizController struct {
	Repo repositories.QuizRepository
	DB   *gorm.DB
}

type quizRequest struct {
	services.QuizDraft
	OpportunityID            string           `json:"opportunity_id"`
	NegativeMarksPerQuestion *decimal.Decimal `json:"negative_marks_per_question"`
	Status                   string           `json:"status"`
	CreatedBy                string           `json:"created_by"`
	UpdatedBy                string           `json:"updated_by"`
}

// CreateQuizController validates and stores a new quiz draft
func (qc *QuizController) CreateQuizController(c *fiber.Ctx) error {
	var request quizRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	opportunityID, err := uuid.Parse(request.OpportunityID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid opportunity id",
		})
	}
	if request.CreatedBy == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing 'created_by' field",
		})
	}

	validation := services.ValidateQuiz(request.QuizDraft)
	if !validation.IsValid {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":      "Quiz failed validation",
			"validation": validation,
		})
	}

	questions, err := json.Marshal(request.Questions)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to encode questions",
		})
	}

	quiz := models.Quiz{
		OpportunityID:            opportunityID,
		Title:                    request.Title,
		Description:              request.Description,
		DurationMinutes:          request.DurationMinutes,
		NegativeMarking:          request.NegativeMarking,
		NegativeMarksPerQuestion: request.NegativeMarksPerQuestion,
		Questions:                datatypes.JSON(questions),
		Status:                   models.DraftStatus,
		CreatedBy:                request.CreatedBy,
	}

	if err := qc.Repo.CreateQuiz(&quiz); err != nil {
		config.Logger.Error("Failed to create quiz", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create quiz",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": quiz,
	})
}

// GetQuizController returns a single quiz by id
func (qc *QuizController) GetQuizController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid quiz id",
		})
	}

	quiz, err := qc.Repo.GetQuizByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Quiz not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch quiz",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": quiz,
	})
}

// GetQuizzesByOpportunityController lists the quizzes attached to an opportunity
func (qc *QuizController) GetQuizzesByOpportunityController(c *fiber.Ctx) error {
	opportunityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid opportunity id",
		})
	}

	quizzes, err := qc.Repo.GetQuizzesByOpportunity(opportunityID)
	if err != nil {
		config.Logger.Error("Failed to fetch quizzes",
			zap.Error(err),
			zap.String("opportunityID", opportunityID.String()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch quizzes",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": quizzes,
	})
}

// UpdateQuizController re-validates and updates an existing quiz
func (qc *QuizController) UpdateQuizController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid quiz id",
		})
	}

	quiz, err := qc.Repo.GetQuizByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Quiz not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch quiz",
		})
	}

	var request quizRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	validation := services.ValidateQuiz(request.QuizDraft)
	if !validation.IsValid {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":      "Quiz failed validation",
			"validation": validation,
		})
	}

	questions, err := json.Marshal(request.Questions)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to encode questions",
		})
	}

	quiz.Title = request.Title
	quiz.Description = request.Description
	quiz.DurationMinutes = request.DurationMinutes
	quiz.NegativeMarking = request.NegativeMarking
	quiz.NegativeMarksPerQuestion = request.NegativeMarksPerQuestion
	quiz.Questions = datatypes.JSON(questions)
	if request.Status != "" {
		status := models.OpportunityStatus(request.Status)
		if status != models.DraftStatus && status != models.PublishedStatus && status != models.ArchivedStatus {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Status must be draft, published or archived",
			})
		}
		quiz.Status = status
	}
	if request.UpdatedBy != "" {
		quiz.UpdatedBy = &request.UpdatedBy
	}

	if err := qc.Repo.UpdateQuiz(quiz); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update quiz",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": quiz,
	})
}

// DeleteQuizController soft-deletes a quiz
func (qc *QuizController) DeleteQuizController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid quiz id",
		})
	}

	if err := qc.Repo.DeleteQuiz(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete quiz",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Quiz deleted",
	})
}
