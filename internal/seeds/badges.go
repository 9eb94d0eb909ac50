package seeds

import (
	"github.com/CordovaPaulo/mindmate-backend-go/internal/database"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/models"
	"github.com/CordovaPaulo/mindmate-backend-go/pkg/logger"
)

// BadgeCatalog is the static badge catalog. Keys must line up with the rule
// catalog in internal/services; display metadata is opaque to the engine.
func BadgeCatalog() []models.Badge {
	return []models.Badge{
		// Experience
		{
			Key:         "first_session",
			Name:        "First Session",
			Description: "Completed your first tutoring session.",
			Icon:        "play",
			Color:       "#22c55e",
			Category:    models.BadgeCategoryExperience,
		},
		{
			Key:         "ten_sessions",
			Name:        "Session Regular",
			Description: "Hosted 10 tutoring sessions.",
			Icon:        "calendar-check",
			Color:       "#22c55e",
			Category:    models.BadgeCategoryExperience,
		},
		{
			Key:         "fifty_sessions",
			Name:        "Session Veteran",
			Description: "Hosted 50 tutoring sessions. A true regular.",
			Icon:        "crown",
			Color:       "#16a34a",
			Category:    models.BadgeCategoryExperience,
		},
		{
			Key:         "group_host",
			Name:        "Group Host",
			Description: "Hosted your first group session.",
			Icon:        "users",
			Color:       "#22c55e",
			Category:    models.BadgeCategoryExperience,
		},
		{
			Key:         "crowd_favorite",
			Name:        "Crowd Favorite",
			Description: "Tutored 10 different learners.",
			Icon:        "heart-handshake",
			Color:       "#16a34a",
			Category:    models.BadgeCategoryExperience,
		},

		// Quality
		{
			Key:         "rising_star",
			Name:        "Rising Star",
			Description: "Kept a 4.5+ average over at least 5 ratings.",
			Icon:        "trending-up",
			Color:       "#eab308",
			Category:    models.BadgeCategoryQuality,
		},
		{
			Key:         "top_rated",
			Name:        "Top Rated",
			Description: "Kept a 4.8+ average over at least 20 ratings.",
			Icon:        "star",
			Color:       "#f59e0b",
			Category:    models.BadgeCategoryQuality,
		},
		{
			Key:         "perfect_score",
			Name:        "Perfect Score",
			Description: "Received 10 five-star reviews.",
			Icon:        "sparkles",
			Color:       "#f59e0b",
			Category:    models.BadgeCategoryQuality,
		},

		// Community
		{
			Key:         "forum_regular",
			Name:        "Forum Regular",
			Description: "Active in the community forum.",
			Icon:        "message-square",
			Color:       "#3b82f6",
			Category:    models.BadgeCategoryCommunity,
		},
		{
			Key:         "community_voice",
			Name:        "Community Voice",
			Description: "Collected 25 upvotes on forum contributions.",
			Icon:        "megaphone",
			Color:       "#3b82f6",
			Category:    models.BadgeCategoryCommunity,
		},

		// Trust
		{
			Key:         "verified_mentor",
			Name:        "Verified Mentor",
			Description: "Identity and qualifications verified by the MindMate team.",
			Icon:        "badge-check",
			Color:       "#8b5cf6",
			Category:    models.BadgeCategoryTrust,
		},
		{
			Key:         "credentialed",
			Name:        "Credentialed",
			Description: "Uploaded credentials to back up your expertise.",
			Icon:        "file-badge",
			Color:       "#8b5cf6",
			Category:    models.BadgeCategoryTrust,
		},
	}
}

// SeedBadges upserts the badge catalog. Safe to run on every startup.
func SeedBadges() {
	logger.Info().Msg("Seeding badge catalog...")

	for _, b := range BadgeCatalog() {
		var existing models.Badge
		if err := database.DB.Where("key = ?", b.Key).First(&existing).Error; err == nil {
			continue
		}

		if err := database.DB.Create(&b).Error; err != nil {
			logger.Warn().Err(err).Str("badge", b.Key).Msg("Failed to seed badge")
		} else {
			logger.Info().Str("badge", b.Key).Msg("Badge defined")
		}
	}
}
