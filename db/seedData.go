package db

import (
	"errors"

	"opportunity-admin-backend/db/models"

	"gorm.io/gorm"
)

func stringPtr(value string) *string {
	return &value
}

// SeedOpportunityCategories populates the database with the standard
// opportunity categories. Existing categories are left untouched.
func SeedOpportunityCategories(db *gorm.DB, createdBy string) error {
	categories := []models.OpportunityCategory{
		{Name: "Olympiad", Description: stringPtr("Subject olympiads and academic contests"), IsActive: true, CreatedBy: createdBy},
		{Name: "Scholarship", Description: stringPtr("Scholarships and financial aid programs"), IsActive: true, CreatedBy: createdBy},
		{Name: "Hackathon", Description: stringPtr("Coding and innovation hackathons"), IsActive: true, CreatedBy: createdBy},
		{Name: "Competition", Description: stringPtr("General competitions and challenges"), IsActive: true, CreatedBy: createdBy},
		{Name: "Quiz", Description: stringPtr("Quiz contests"), IsActive: true, CreatedBy: createdBy},
		{Name: "Workshop", Description: stringPtr("Workshops and bootcamps"), IsActive: true, CreatedBy: createdBy},
		{Name: "Internship", Description: stringPtr("Student internship programs"), IsActive: true, CreatedBy: createdBy},
	}

	for _, category := range categories {
		var existing models.OpportunityCategory
		if err := db.Where("name = ?", category.Name).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := db.Create(&category).Error; err != nil {
					return err
				}
			} else {
				return err
			}
		}
	}
	return nil
}
