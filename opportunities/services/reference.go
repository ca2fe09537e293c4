package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"opportunity-admin-backend/config"
	"opportunity-admin-backend/db/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const referenceCacheKey = "refdata:context"
const referenceCacheTTL = 10 * time.Minute

// cachedReference is the Redis-serializable form of the reference context
type cachedReference struct {
	Categories []CategoryRef  `json:"categories"`
	Organizers []OrganizerRef `json:"organizers"`
	Titles     []string       `json:"titles"`
}

// ReferenceService loads the reference data a validation pass runs against:
// known categories, known organizers and existing lowercased titles. Results
// are cached in Redis; master writes invalidate the refdata keys.
type ReferenceService struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewReferenceService(db *gorm.DB, redisClient *redis.Client) *ReferenceService {
	return &ReferenceService{DB: db, Redis: redisClient}
}

// LoadReferenceContext fetches reference data, serving from cache when warm
func (rs *ReferenceService) LoadReferenceContext() (*ReferenceContext, error) {
	ctx := context.Background()

	if rs.Redis != nil {
		if raw, err := rs.Redis.Get(ctx, referenceCacheKey).Result(); err == nil {
			var cached cachedReference
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return buildContext(cached), nil
			}
			config.Logger.Warn("Discarding unreadable reference cache entry")
		}
	}

	var categories []models.OpportunityCategory
	if err := rs.DB.Where("is_active = ?", true).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}

	var organizers []models.Organizer
	if err := rs.DB.Where("is_active = ?", true).Order("name").Find(&organizers).Error; err != nil {
		return nil, err
	}

	var titles []string
	if err := rs.DB.Model(&models.Opportunity{}).Pluck("title", &titles).Error; err != nil {
		return nil, err
	}

	cached := cachedReference{Titles: titles}
	for _, category := range categories {
		cached.Categories = append(cached.Categories, CategoryRef{
			ID:   category.ID.String(),
			Name: category.Name,
		})
	}
	for _, organizer := range organizers {
		ref := OrganizerRef{ID: organizer.ID.String(), Name: organizer.Name}
		if organizer.Logo != nil {
			ref.Logo = *organizer.Logo
		}
		cached.Organizers = append(cached.Organizers, ref)
	}

	if rs.Redis != nil {
		if raw, err := json.Marshal(cached); err == nil {
			if err := rs.Redis.Set(ctx, referenceCacheKey, raw, referenceCacheTTL).Err(); err != nil {
				config.Logger.Warn("Failed to cache reference data", zap.Error(err))
			}
		}
	}

	return buildContext(cached), nil
}

func buildContext(cached cachedReference) *ReferenceContext {
	existing := make(map[string]struct{}, len(cached.Titles))
	for _, title := range cached.Titles {
		title = strings.ToLower(strings.TrimSpace(title))
		if title != "" {
			existing[title] = struct{}{}
		}
	}
	return &ReferenceContext{
		Categories:     cached.Categories,
		Organizers:     cached.Organizers,
		ExistingTitles: existing,
	}
}
