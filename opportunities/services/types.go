package services

import (
	"opportunity-admin-backend/db/models"

	"github.com/shopspring/decimal"
)

// BulkUploadStep is the wizard step a session is currently in
type BulkUploadStep string

const (
	UploadStep     BulkUploadStep = "upload"
	ValidationStep BulkUploadStep = "validation"
	PreviewStep    BulkUploadStep = "preview"
	SuccessStep    BulkUploadStep = "success"
)

// FindingSeverity classifies a validation finding
type FindingSeverity string

const (
	ErrorSeverity   FindingSeverity = "error"
	WarningSeverity FindingSeverity = "warning"
	InfoSeverity    FindingSeverity = "info"
)

// ValidationFinding is a single rule violation on one field of a record
type ValidationFinding struct {
	Field    string          `json:"field"`
	Message  string          `json:"message"`
	Severity FindingSeverity `json:"severity"`
	Value    string          `json:"value,omitempty"`
}

// ValidationResult is the full outcome of validating one parsed record.
// IsValid is true iff there are zero error-severity findings; warnings and
// info findings never affect validity.
type ValidationResult struct {
	IsValid         bool                `json:"isValid"`
	Errors          []ValidationFinding `json:"errors"`
	Warnings        []ValidationFinding `json:"warnings"`
	AutoCorrections []string            `json:"autoCorrections"`
}

// ParsedOpportunity is one spreadsheet row after normalization, not yet
// persisted. TempID is unique within the upload session and never stored;
// RowNumber points at the physical spreadsheet row and stays stable even
// when other rows are deleted.
type ParsedOpportunity struct {
	TempID    string            `json:"tempId"`
	RowNumber int               `json:"rowNumber"`
	RawData   map[string]string `json:"rawData,omitempty"`

	// Basic fields
	Title     *string `json:"title,omitempty"`
	Category  *string `json:"category,omitempty"`
	Organizer *string `json:"organizer,omitempty"`

	// Eligibility
	GradeEligibility *string `json:"gradeEligibility,omitempty"`
	EligibilityType  *string `json:"eligibilityType,omitempty"`
	AgeEligibility   *string `json:"ageEligibility,omitempty"`

	// Mode and location
	Mode  string  `json:"mode,omitempty"`
	State *string `json:"state,omitempty"`

	// Dates, RFC3339 instants
	StartDate               *string `json:"startDate,omitempty"`
	EndDate                 *string `json:"endDate,omitempty"`
	RegistrationDeadline    *string `json:"registrationDeadline,omitempty"`
	StartDateTBD            bool    `json:"startDateTBD"`
	EndDateTBD              bool    `json:"endDateTBD"`
	RegistrationDeadlineTBD bool    `json:"registrationDeadlineTBD"`

	// Fee
	Fee       *string          `json:"fee,omitempty"`
	FeeAmount *decimal.Decimal `json:"feeAmount,omitempty"`
	Currency  string           `json:"currency,omitempty"`

	// Rich content
	Description    *string `json:"description,omitempty"`
	Image          *string `json:"image,omitempty"`
	ApplicationURL *string `json:"applicationUrl,omitempty"`

	// Array fields
	Eligibility         []string `json:"eligibility"`
	Benefits            []string `json:"benefits"`
	RegistrationProcess []string `json:"registrationProcess"`
	Segments            []string `json:"segments"`
	SearchKeywords      []string `json:"searchKeywords"`

	// Timeline
	Timeline []models.TimelineEvent `json:"timeline"`

	// Resolved master ids, filled in once validation matched reference data
	CategoryID    *string `json:"categoryId,omitempty"`
	CategoryName  *string `json:"categoryName,omitempty"`
	OrganizerID   *string `json:"organizerId,omitempty"`
	OrganizerName *string `json:"organizerName,omitempty"`
	OrganizerLogo *string `json:"organizerLogo,omitempty"`

	// Defaults
	RegistrationMode  string `json:"registrationMode,omitempty"`
	RegistrationCount int    `json:"registrationCount"`
	Status            string `json:"status"`
}

// OpportunityWithValidation pairs a parsed record with its latest validation
// outcome; this is the unit the upload session holds, edits and filters.
type OpportunityWithValidation struct {
	Opportunity *ParsedOpportunity `json:"opportunity"`
	Validation  ValidationResult   `json:"validation"`
}

// UploadStats are derived counts over a session's record list. They are
// recomputed from scratch whenever the list changes, never patched.
type UploadStats struct {
	TotalRows   int `json:"totalRows"`
	ValidRows   int `json:"validRows"`
	InvalidRows int `json:"invalidRows"`
	WarningRows int `json:"warningRows"`
}

// RowError is a server-side rejection of one row during bulk create
type RowError struct {
	RowNumber int    `json:"rowNumber"`
	Error     string `json:"error"`
}

// BulkUploadResult is the outcome of a batch submission. Errors can be
// non-empty even when Success is true (partial success).
type BulkUploadResult struct {
	Success      bool       `json:"success"`
	CreatedCount int        `json:"createdCount"`
	Errors       []RowError `json:"errors"`
	IDs          []string   `json:"ids"`
}
