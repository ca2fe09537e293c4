package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BulkUploadErrorType classifies why a row was rejected server-side
type BulkUploadErrorType string

const (
	ValidationErrorType  BulkUploadErrorType = "VALIDATION"
	MissingDataErrorType BulkUploadErrorType = "MISSING_DATA"
	DuplicateErrorType   BulkUploadErrorType = "DUPLICATE"
	PersistenceErrorType BulkUploadErrorType = "PERSISTENCE"
)

// AddedViaType records the channel a record came through
type AddedViaType string

const (
	BulkAddedViaType   AddedViaType = "BULK_UPLOAD"
	ManualAddedViaType AddedViaType = "MANUAL"
)

// BulkUploadErrorOpportunity is an audit row for a spreadsheet row that was
// rejected during a bulk upload, kept so operators can review what failed.
type BulkUploadErrorOpportunity struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	RowNumber int       `gorm:"not null" json:"row_number"`

	Title     string `json:"title"`
	Category  string `json:"category"`
	Organizer string `json:"organizer"`

	Reason    string              `gorm:"type:text;not null" json:"reason"`
	ErrorType BulkUploadErrorType `gorm:"type:varchar(20);not null" json:"error_type"`
	AddedVia  AddedViaType        `gorm:"type:varchar(20);not null" json:"added_via"`

	CreatedBy string         `gorm:"not null" json:"created_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *BulkUploadErrorOpportunity) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
