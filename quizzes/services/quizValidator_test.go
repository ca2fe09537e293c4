package services

import (
	"testing"

	"opportunity-admin-backend/db/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() QuizDraft {
	return QuizDraft{
		Title:           "Science Quiz Round 1",
		DurationMinutes: 30,
		Questions: []models.QuizQuestion{
			{
				Question:     "What planet is known as the red planet?",
				Options:      []string{"Venus", "Mars", "Jupiter"},
				CorrectIndex: 1,
				Marks:        4,
			},
		},
	}
}

func findingFields(findings []QuizFinding) []string {
	fields := make([]string, 0, len(findings))
	for _, finding := range findings {
		fields = append(fields, finding.Field)
	}
	return fields
}

func TestValidateQuizCleanDraft(t *testing.T) {
	result := ValidateQuiz(validDraft())
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestValidateQuizRequiresTitle(t *testing.T) {
	draft := validDraft()
	draft.Title = "   "

	result := ValidateQuiz(draft)
	assert.False(t, result.IsValid)
	assert.Contains(t, findingFields(result.Errors), "title")
}

func TestValidateQuizRequiresQuestions(t *testing.T) {
	draft := validDraft()
	draft.Questions = nil

	result := ValidateQuiz(draft)
	assert.False(t, result.IsValid)
	assert.Contains(t, findingFields(result.Errors), "questions")
}

func TestValidateQuizQuestionRules(t *testing.T) {
	draft := validDraft()
	draft.Questions = []models.QuizQuestion{
		{Question: "", Options: []string{"A", "B"}, CorrectIndex: 0},
		{Question: "Pick one", Options: []string{"Only"}, CorrectIndex: 0},
		{Question: "Pick another", Options: []string{"A", "B"}, CorrectIndex: 5},
		{Question: "Blank option", Options: []string{"A", " "}, CorrectIndex: 0},
	}

	result := ValidateQuiz(draft)
	require.False(t, result.IsValid)

	fields := findingFields(result.Errors)
	assert.Contains(t, fields, "questions[0]")
	assert.Contains(t, fields, "questions[1]")
	assert.Contains(t, fields, "questions[2]")
	assert.Contains(t, fields, "questions[3].options[1]")
}

func TestValidateQuizNegativeValues(t *testing.T) {
	draft := validDraft()
	draft.DurationMinutes = -5
	draft.Questions[0].Marks = -1

	result := ValidateQuiz(draft)
	assert.False(t, result.IsValid)
	fields := findingFields(result.Errors)
	assert.Contains(t, fields, "duration_minutes")
	assert.Contains(t, fields, "questions[0]")
}
