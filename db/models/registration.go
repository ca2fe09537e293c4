package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegistrationStatus is the lifecycle status of a student registration
type RegistrationStatus string

const (
	RegisteredStatus RegistrationStatus = "registered"
	ConfirmedStatus  RegistrationStatus = "confirmed"
	CancelledStatus  RegistrationStatus = "cancelled"
)

// Registration is one student signed up for an opportunity (the roster)
type Registration struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	OpportunityID uuid.UUID `gorm:"type:uuid;not null;index" json:"opportunity_id"`

	StudentName  string  `gorm:"not null" json:"student_name"`
	StudentEmail string  `gorm:"not null;index" json:"student_email"`
	Grade        *string `json:"grade"`
	School       *string `json:"school"`
	State        *string `gorm:"index" json:"state"`
	PhoneNumber  *string `json:"phone_number"`

	Status       RegistrationStatus `gorm:"type:varchar(15);default:'registered';index" json:"status"`
	RegisteredAt time.Time          `gorm:"autoCreateTime" json:"registered_at"`

	Opportunity *Opportunity `gorm:"foreignKey:OpportunityID" json:"opportunity,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *Registration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
