package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/CordovaPaulo/mindmate-backend-go/internal/database"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/models"
	"github.com/CordovaPaulo/mindmate-backend-go/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BadgeAwardResult reports the outcome of one award pass.
type BadgeAwardResult struct {
	Awarded    []models.MentorBadge `json:"awarded"`
	AlreadyHad []models.MentorBadge `json:"alreadyHad"`
}

// AwardMentorBadges recomputes a mentor's metrics, evaluates the rule catalog,
// and inserts any newly earned badges. Badges are never revoked; re-running
// with unchanged state awards nothing. An unknown mentor yields an empty
// result, not an error — this is always a side channel to a primary action.
func AwardMentorBadges(mentorID string) (*BadgeAwardResult, error) {
	result := &BadgeAwardResult{
		Awarded:    []models.MentorBadge{},
		AlreadyHad: []models.MentorBadge{},
	}

	// 1. Resolve the mentor (miss = nothing to evaluate)
	var profile models.MentorProfile
	if err := database.DB.First(&profile, "id = ?", mentorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, nil
		}
		return result, err
	}

	// 2. Badges already held
	var existing []models.MentorBadge
	if err := database.DB.Preload("Badge").Where("mentor_id = ?", mentorID).Find(&existing).Error; err != nil {
		return result, err
	}
	existingSet := make(map[string]bool, len(existing))
	for _, b := range existing {
		existingSet[b.BadgeKey] = true
	}
	result.AlreadyHad = existing

	// 3. Fresh metrics + rule evaluation
	metrics := computeMetricsForProfile(&profile)
	satisfied := EvaluateBadges(metrics)

	snapshot, err := json.Marshal(metrics)
	if err != nil {
		return result, err
	}
	now := time.Now()

	// 4. Persist the newly earned set
	for _, key := range satisfied {
		if existingSet[key] {
			continue
		}

		award := models.MentorBadge{
			MentorID:        mentorID,
			BadgeKey:        key,
			AwardedAt:       now,
			MetricsSnapshot: string(snapshot),
		}

		// Concurrent passes race to the same composite key; the first
		// insert wins and the rest are no-ops.
		res := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&award)
		if res.Error != nil {
			logger.Warn().Err(res.Error).Str("mentor", mentorID).Str("badge", key).Msg("Failed to award badge")
			continue
		}
		if res.RowsAffected == 0 {
			continue // already awarded by a concurrent pass
		}

		database.DB.First(&award.Badge, "key = ?", key)
		result.Awarded = append(result.Awarded, award)

		notifyBadgeAwarded(&profile, &award)
	}

	if len(result.Awarded) > 0 {
		database.CacheInvalidate("badges:mentor:" + mentorID)
	}

	return result, nil
}

// CheckBadgesAsync runs an award pass in the background. Use from handlers
// whose response must not wait on (or fail because of) badge bookkeeping.
func CheckBadgesAsync(mentorID string) {
	go func() {
		if _, err := AwardMentorBadges(mentorID); err != nil {
			logger.Warn().Err(err).Str("mentor", mentorID).Msg("Background badge check failed")
		}
	}()
}

// GetMentorBadges returns the badges a mentor currently holds.
func GetMentorBadges(mentorID string) ([]models.MentorBadge, error) {
	var badges []models.MentorBadge
	err := database.DB.Preload("Badge").
		Where("mentor_id = ?", mentorID).
		Order("awarded_at asc").
		Find(&badges).Error
	return badges, err
}

func notifyBadgeAwarded(profile *models.MentorProfile, award *models.MentorBadge) {
	name := award.Badge.Name
	if name == "" {
		name = award.BadgeKey
	}

	notification := models.Notification{
		UserID:   profile.UserID,
		Type:     models.NotificationTypeBadge,
		TargetID: award.BadgeKey,
		Message:  fmt.Sprintf("You earned the %s badge!", name),
	}
	if err := database.DB.Create(&notification).Error; err != nil {
		logger.Warn().Err(err).Str("mentor", profile.ID).Msg("Failed to create badge notification")
	}

	LogActivity(profile.UserID, models.ActivityBadgeEarned, award.BadgeKey, fmt.Sprintf("Earned badge: %s", name))
}
