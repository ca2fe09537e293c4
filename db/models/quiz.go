package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizQuestion is one question of a quiz. Questions are persisted as JSONB
// on the quiz row in authoring order.
type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Marks        int      `json:"marks"`
	Explanation  *string  `json:"explanation,omitempty"`
}

// Quiz is an authored quiz attached to an opportunity
type Quiz struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	OpportunityID uuid.UUID `gorm:"type:uuid;not null;index" json:"opportunity_id"`

	Title           string  `gorm:"not null" json:"title"`
	Description     *string `gorm:"type:text" json:"description"`
	DurationMinutes int     `gorm:"default:0" json:"duration_minutes"`

	NegativeMarking          bool             `gorm:"default:false" json:"negative_marking"`
	NegativeMarksPerQuestion *decimal.Decimal `gorm:"type:decimal(5,2)" json:"negative_marks_per_question"`

	Questions datatypes.JSON    `gorm:"type:jsonb" json:"questions"`
	Status    OpportunityStatus `gorm:"type:varchar(10);default:'draft';index" json:"status"`

	Opportunity *Opportunity `gorm:"foreignKey:OpportunityID" json:"opportunity,omitempty"`

	CreatedBy string         `gorm:"not null" json:"created_by"`
	UpdatedBy *string        `json:"updated_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
