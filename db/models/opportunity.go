package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OpportunityMode represents how an opportunity is conducted
type OpportunityMode string

const (
	OnlineMode  OpportunityMode = "online"
	OfflineMode OpportunityMode = "offline"
	HybridMode  OpportunityMode = "hybrid"
)

// OpportunityStatus represents the lifecycle status of an opportunity
type OpportunityStatus string

const (
	DraftStatus     OpportunityStatus = "draft"
	PublishedStatus OpportunityStatus = "published"
	ArchivedStatus  OpportunityStatus = "archived"
)

// EligibilityType describes which eligibility descriptor applies
type EligibilityType string

const (
	GradeEligibilityType EligibilityType = "grade"
	AgeEligibilityType   EligibilityType = "age"
	BothEligibilityType  EligibilityType = "both"
)

// TimelineStatus is the status of a single timeline event
type TimelineStatus string

const (
	CompletedTimelineStatus TimelineStatus = "completed"
	ActiveTimelineStatus    TimelineStatus = "active"
	UpcomingTimelineStatus  TimelineStatus = "upcoming"
)

// TimelineEvent is one entry of an opportunity's timeline. Timelines are
// persisted as JSONB on the opportunity row, not as a separate table.
type TimelineEvent struct {
	Date   string         `json:"date"`
	Event  string         `json:"event"`
	Status TimelineStatus `json:"status"`
}

// RegistrationMode says whether students register on the platform or externally
type RegistrationMode string

const (
	InternalRegistrationMode RegistrationMode = "internal"
	ExternalRegistrationMode RegistrationMode = "external"
)

// Opportunity represents a competition, scholarship or quiz offered to students
type Opportunity struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Title string    `gorm:"not null;index" json:"title"`
	Slug  string    `gorm:"unique;index" json:"slug"`

	// Masters references; names are denormalized so an opportunity stays
	// readable even before the master record is created
	CategoryID    *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	CategoryName  *string    `gorm:"index" json:"category_name"`
	OrganizerID   *uuid.UUID `gorm:"type:uuid;index" json:"organizer_id"`
	OrganizerName *string    `gorm:"index" json:"organizer_name"`
	OrganizerLogo *string    `json:"organizer_logo"`

	// Eligibility
	GradeEligibility *string          `json:"grade_eligibility"`
	EligibilityType  *EligibilityType `gorm:"type:varchar(10)" json:"eligibility_type"`
	AgeEligibility   *string          `json:"age_eligibility"`

	// Mode and location
	Mode  OpportunityMode `gorm:"type:varchar(10);default:'online'" json:"mode"`
	State *string         `gorm:"index" json:"state"`

	// Dates. TBD flags mean the corresponding date is not yet announced.
	StartDate               *time.Time `json:"start_date"`
	EndDate                 *time.Time `json:"end_date"`
	RegistrationDeadline    *time.Time `json:"registration_deadline"`
	StartDateTBD            bool       `gorm:"default:false" json:"start_date_tbd"`
	EndDateTBD              bool       `gorm:"default:false" json:"end_date_tbd"`
	RegistrationDeadlineTBD bool       `gorm:"default:false" json:"registration_deadline_tbd"`

	// Fee is kept as free text ("Free", "INR 500 per team"); FeeAmount holds
	// the parsed numeric portion when one could be extracted
	Fee       *string          `json:"fee"`
	FeeAmount *decimal.Decimal `gorm:"type:decimal(12,2)" json:"fee_amount"`
	Currency  string           `gorm:"type:varchar(5);default:'INR'" json:"currency"`

	// Rich content
	Description    *string `gorm:"type:text" json:"description"`
	Image          *string `json:"image"`
	ApplicationURL *string `json:"application_url"`

	// Array-valued fields, stored as JSONB
	Eligibility         datatypes.JSON `gorm:"type:jsonb" json:"eligibility"`
	Benefits            datatypes.JSON `gorm:"type:jsonb" json:"benefits"`
	RegistrationProcess datatypes.JSON `gorm:"type:jsonb" json:"registration_process"`
	Segments            datatypes.JSON `gorm:"type:jsonb" json:"segments"`
	SearchKeywords      datatypes.JSON `gorm:"type:jsonb" json:"search_keywords"`
	Timeline            datatypes.JSON `gorm:"type:jsonb" json:"timeline"`

	// Registration
	RegistrationMode  RegistrationMode  `gorm:"type:varchar(10);default:'external'" json:"registration_mode"`
	RegistrationCount int               `gorm:"default:0" json:"registration_count"`
	Status            OpportunityStatus `gorm:"type:varchar(10);default:'draft';index" json:"status"`

	// Relationships
	Category      *OpportunityCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Organizer     *Organizer           `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	Registrations []Registration       `gorm:"foreignKey:OpportunityID" json:"registrations,omitempty"`
	Quizzes       []Quiz               `gorm:"foreignKey:OpportunityID" json:"quizzes,omitempty"`

	// Audit fields
	CreatedBy string         `gorm:"not null" json:"created_by"`
	UpdatedBy *string        `json:"updated_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Opportunity) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
