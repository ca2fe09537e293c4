package repositories

import (
	"fmt"
	"strings"

	"opportunity-admin-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegistrationSummary aggregates roster counts per status for one opportunity
type RegistrationSummary struct {
	Total      int64 `json:"total"`
	Registered int64 `json:"registered"`
	Confirmed  int64 `json:"confirmed"`
	Cancelled  int64 `json:"cancelled"`
}

type RegistrationRepository interface {
	GetFilteredRegistrations(opportunityID uuid.UUID, limit, offset int, filters map[string]string) ([]models.Registration, int64, error)
	GetAllRegistrations(opportunityID uuid.UUID, filters map[string]string) ([]models.Registration, error)
	GetRegistrationSummary(opportunityID uuid.UUID) (*RegistrationSummary, error)
}

type registrationRepository struct {
	DB *gorm.DB
}

// NewRegistrationRepository initializes the roster repository
func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{DB: db}
}

func (rr *registrationRepository) filteredQuery(opportunityID uuid.UUID, filters map[string]string) *gorm.DB {
	query := rr.DB.Model(&models.Registration{}).Where("opportunity_id = ?", opportunityID)

	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if state := filters["state"]; state != "" {
		query = query.Where("state = ?", state)
	}
	if grade := filters["grade"]; grade != "" {
		query = query.Where("grade = ?", grade)
	}
	if search := strings.TrimSpace(filters["search"]); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("student_name ILIKE ? OR student_email ILIKE ?", pattern, pattern)
	}

	return query
}

func (rr *registrationRepository) GetFilteredRegistrations(opportunityID uuid.UUID, limit, offset int, filters map[string]string) ([]models.Registration, int64, error) {
	var registrations []models.Registration
	var total int64

	query := rr.filteredQuery(opportunityID, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count registrations: %w", err)
	}

	if err := query.Order("registered_at DESC").Limit(limit).Offset(offset).Find(&registrations).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch registrations: %w", err)
	}

	return registrations, total, nil
}

func (rr *registrationRepository) GetAllRegistrations(opportunityID uuid.UUID, filters map[string]string) ([]models.Registration, error) {
	var registrations []models.Registration
	query := rr.filteredQuery(opportunityID, filters)
	if err := query.Order("registered_at DESC").Find(&registrations).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch registrations: %w", err)
	}
	return registrations, nil
}

func (rr *registrationRepository) GetRegistrationSummary(opportunityID uuid.UUID) (*RegistrationSummary, error) {
	summary := &RegistrationSummary{}

	type statusCount struct {
		Status models.RegistrationStatus
		Count  int64
	}
	var counts []statusCount

	err := rr.DB.Model(&models.Registration{}).
		Select("status, COUNT(*) as count").
		Where("opportunity_id = ?", opportunityID).
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize registrations: %w", err)
	}

	for _, sc := range counts {
		summary.Total += sc.Count
		switch sc.Status {
		case models.RegisteredStatus:
			summary.Registered = sc.Count
		case models.ConfirmedStatus:
			summary.Confirmed = sc.Count
		case models.CancelledStatus:
			summary.Cancelled = sc.Count
		}
	}

	return summary, nil
}
