package repositories

import (
	"fmt"

	"opportunity-admin-backend/config"
	"opportunity-admin-backend/db/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuizRepository interface {
	CreateQuiz(quiz *models.Quiz) error
	GetQuizByID(id uuid.UUID) (*models.Quiz, error)
	GetQuizzesByOpportunity(opportunityID uuid.UUID) ([]models.Quiz, error)
	UpdateQuiz(quiz *models.Quiz) error
	DeleteQuiz(id uuid.UUID) error
}

type quizRepository struct {
	DB *gorm.DB
}

// NewQuizRepository initializes the quiz repository
func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{DB: db}
}

func (qr *quizRepository) CreateQuiz(quiz *models.Quiz) error {
	if quiz.Status == "" {
		quiz.Status = models.DraftStatus
	}

	if err := qr.DB.Create(quiz).Error; err != nil {
		config.Logger.Error("Failed to create quiz",
			zap.Error(err),
			zap.String("title", quiz.Title))
		return fmt.Errorf("failed to create quiz: %w", err)
	}

	config.Logger.Info("Created quiz",
		zap.String("quizID", quiz.ID.String()),
		zap.String("opportunityID", quiz.OpportunityID.String()))
	return nil
}

func (qr *quizRepository) GetQuizByID(id uuid.UUID) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := qr.DB.First(&quiz, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get quiz %s: %w", id, err)
	}
	return &quiz, nil
}

func (qr *quizRepository) GetQuizzesByOpportunity(opportunityID uuid.UUID) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	if err := qr.DB.Where("opportunity_id = ?", opportunityID).Order("created_at DESC").Find(&quizzes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch quizzes: %w", err)
	}
	return quizzes, nil
}

func (qr *quizRepository) UpdateQuiz(quiz *models.Quiz) error {
	if err := qr.DB.Save(quiz).Error; err != nil {
		config.Logger.Error("Failed to update quiz",
			zap.Error(err),
			zap.String("quizID", quiz.ID.String()))
		return fmt.Errorf("failed to update quiz: %w", err)
	}
	return nil
}

func (qr *quizRepository) DeleteQuiz(id uuid.UUID) error {
	if err := qr.DB.Delete(&models.Quiz{}, "id = ?", id).Error; err != nil {
		config.Logger.Error("Failed to delete quiz",
			zap.Error(err),
			zap.String("quizID", id.String()))
		return fmt.Errorf("failed to delete quiz: %w", err)
	}
	return nil
}
