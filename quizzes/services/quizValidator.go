package services

import (
	"fmt"
	"strings"

	"opportunity-admin-backend/db/models"
)

// QuizFinding is a single structural problem in an authored quiz
type QuizFinding struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// QuizValidationResult is the outcome of structurally validating a quiz
// draft. IsValid is true iff there are zero findings.
type QuizValidationResult struct {
	IsValid bool          `json:"isValid"`
	Errors  []QuizFinding `json:"errors"`
}

// QuizDraft is the authoring payload before persistence
type QuizDraft struct {
	Title           string                `json:"title"`
	Description     *string               `json:"description,omitempty"`
	DurationMinutes int                   `json:"duration_minutes"`
	NegativeMarking bool                  `json:"negative_marking"`
	Questions       []models.QuizQuestion `json:"questions"`
}

// ValidateQuiz checks the structural rules: a non-empty title, at least one
// question, and for every question a non-empty prompt, at least two options
// and a correct index pointing at one of them.
func ValidateQuiz(draft QuizDraft) QuizValidationResult {
	result := QuizValidationResult{Errors: []QuizFinding{}}

	if strings.TrimSpace(draft.Title) == "" {
		result.Errors = append(result.Errors, QuizFinding{
			Field:   "title",
			Message: "Quiz title is required",
		})
	}

	if draft.DurationMinutes < 0 {
		result.Errors = append(result.Errors, QuizFinding{
			Field:   "duration_minutes",
			Message: "Duration cannot be negative",
		})
	}

	if len(draft.Questions) == 0 {
		result.Errors = append(result.Errors, QuizFinding{
			Field:   "questions",
			Message: "A quiz needs at least one question",
		})
	}

	for i, question := range draft.Questions {
		field := fmt.Sprintf("questions[%d]", i)

		if strings.TrimSpace(question.Question) == "" {
			result.Errors = append(result.Errors, QuizFinding{
				Field:   field,
				Message: "Question text is required",
			})
		}

		if len(question.Options) < 2 {
			result.Errors = append(result.Errors, QuizFinding{
				Field:   field,
				Message: "Each question needs at least two options",
			})
		} else if question.CorrectIndex < 0 || question.CorrectIndex >= len(question.Options) {
			result.Errors = append(result.Errors, QuizFinding{
				Field:   field,
				Message: fmt.Sprintf("Correct answer index must be between 0 and %d", len(question.Options)-1),
			})
		}

		for j, option := range question.Options {
			if strings.TrimSpace(option) == "" {
				result.Errors = append(result.Errors, QuizFinding{
					Field:   fmt.Sprintf("%s.options[%d]", field, j),
					Message: "Option text cannot be empty",
				})
			}
		}

		if question.Marks < 0 {
			result.Errors = append(result.Errors, QuizFinding{
				Field:   field,
				Message: "Marks cannot be negative",
			})
		}
	}

	result.IsValid = len(result.Errors) == 0
	return result
}
