package services

import (
	"errors"
	"fmt"

	"github.com/CordovaPaulo/mindmate-backend-go/internal/config"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/database"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/models"
	"github.com/CordovaPaulo/mindmate-backend-go/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInvalidSessionCount is returned in strict mode when AddSessions is
// called with a non-positive count.
var ErrInvalidSessionCount = errors.New("session count must be a positive integer")

// ApplySessions adds count sessions to (rank, progress) and walks the ladder
// as long as the accumulated progress covers the current tier's threshold.
// A single large count may promote through several tiers; leftover progress
// carries over. At the terminal tier progress accumulates without bound.
func ApplySessions(rank models.RankTier, progress, count int) (models.RankTier, int) {
	progress += count
	for {
		threshold, ok := rank.Threshold()
		if !ok || progress < threshold {
			break
		}
		progress -= threshold
		next, _ := rank.Next()
		rank = next
	}
	return rank, progress
}

// AddSessions records count qualifying sessions for a learner, creating the
// rank row lazily on first use and promoting through the ladder as thresholds
// are met. Non-positive counts default to 1 unless RANK_STRICT_COUNTS is set.
func AddSessions(learnerID string, count int) (*models.LearnerRank, error) {
	if count < 1 {
		if config.AppConfig != nil && config.AppConfig.RankStrictCounts {
			return nil, ErrInvalidSessionCount
		}
		// Legacy behavior: invalid counts count as a single session.
		count = 1
	}

	var rank models.LearnerRank
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		q := tx
		// Row lock so concurrent feedback events for the same learner
		// serialize instead of losing increments. SQLite (tests) has no
		// FOR UPDATE; its transactions are serialized anyway.
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		err := q.First(&rank, "learner_id = ?", learnerID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rank = models.LearnerRank{LearnerID: learnerID, Rank: models.InitialRank}
			if err := tx.Create(&rank).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		oldRank := rank.Rank
		rank.TotalSessions += count
		rank.Rank, rank.Progress = ApplySessions(rank.Rank, rank.Progress, count)

		if err := tx.Save(&rank).Error; err != nil {
			return err
		}

		if rank.Rank != oldRank {
			notifyPromotion(tx, &rank, oldRank)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	InvalidateLeaderboardCache()
	return &rank, nil
}

// GetLearnerRank returns the stored rank state, or the initial state if the
// learner has no row yet (the row itself is only created by AddSessions).
func GetLearnerRank(learnerID string) (*models.LearnerRank, error) {
	var rank models.LearnerRank
	err := database.DB.First(&rank, "learner_id = ?", learnerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.LearnerRank{
			LearnerID: learnerID,
			Rank:      models.InitialRank,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &rank, nil
}

func notifyPromotion(tx *gorm.DB, rank *models.LearnerRank, oldRank models.RankTier) {
	message := fmt.Sprintf("You advanced from %s to %s! Keep it up.", oldRank, rank.Rank)

	notification := models.Notification{
		UserID:   rank.LearnerID,
		Type:     models.NotificationTypeRank,
		TargetID: string(rank.Rank),
		Message:  message,
	}
	if err := tx.Create(&notification).Error; err != nil {
		logger.Warn().Err(err).Str("learner", rank.LearnerID).Msg("Failed to create promotion notification")
	}

	activity := models.UserActivity{
		Type:     models.ActivityRankPromoted,
		ActorID:  rank.LearnerID,
		TargetID: string(rank.Rank),
		Message:  fmt.Sprintf("Reached %s", rank.Rank),
	}
	if err := tx.Create(&activity).Error; err != nil {
		logger.Warn().Err(err).Str("learner", rank.LearnerID).Msg("Failed to log promotion activity")
	}
}
