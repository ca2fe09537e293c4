package models

import (
	"time"

	"github.com/google/uuid"
)

// EmailLog records an email sent by the system (e.g. bulk upload error reports)
type EmailLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Recipient      string    `gorm:"not null;index" json:"recipient"`
	Subject        string    `gorm:"not null" json:"subject"`
	Message        string    `gorm:"type:text" json:"message"`
	SentAt         time.Time `json:"sent_at"`
	Active         *bool     `gorm:"default:true" json:"active"`
	AttachmentPath string    `json:"attachment_path"`
}
