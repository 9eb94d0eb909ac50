package services

import (
	"testing"

	"github.com/CordovaPaulo/mindmate-backend-go/internal/config"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/database"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/models"
	"github.com/CordovaPaulo/mindmate-backend-go/pkg/logger"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func SetupTestDB() {
	logger.Init("development")
	db, _ := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	database.DB = db
	database.DB.AutoMigrate(
		&models.User{},
		&models.MentorProfile{},
		&models.LearnerProfile{},
		&models.Schedule{},
		&models.SessionFeedback{},
		&models.ForumPost{},
		&models.ForumComment{},
		&models.Badge{},
		&models.MentorBadge{},
		&models.LearnerRank{},
		&models.UserActivity{},
		&models.Notification{},
	)
}

func TestApplySessions_SingleSession(t *testing.T) {
	rank, progress := ApplySessions(models.RankBeginnerIII, 0, 1)
	assert.Equal(t, models.RankBeginnerIII, rank)
	assert.Equal(t, 1, progress)
}

func TestApplySessions_PromotesExactlyAtThreshold(t *testing.T) {
	// Beginner III requires 5 sessions
	rank, progress := ApplySessions(models.RankBeginnerIII, 4, 1)
	assert.Equal(t, models.RankBeginnerII, rank)
	assert.Equal(t, 0, progress)
}

func TestApplySessions_CarriesOverExcess(t *testing.T) {
	rank, progress := ApplySessions(models.RankBeginnerIII, 3, 4)
	assert.Equal(t, models.RankBeginnerII, rank)
	assert.Equal(t, 2, progress)
}

func TestApplySessions_MultiTierJump(t *testing.T) {
	// 5 + 7 + 8 = 20 sessions clears all three Beginner tiers exactly
	rank, progress := ApplySessions(models.RankBeginnerIII, 0, 20)
	assert.Equal(t, models.RankIntermediateIII, rank)
	assert.Equal(t, 0, progress)

	// One more session and it lands in Intermediate III with 1 of 10
	rank, progress = ApplySessions(models.RankBeginnerIII, 0, 21)
	assert.Equal(t, models.RankIntermediateIII, rank)
	assert.Equal(t, 1, progress)
}

func TestApplySessions_TerminalTierAccumulates(t *testing.T) {
	rank, progress := ApplySessions(models.RankProfessional, 50, 1000)
	assert.Equal(t, models.RankProfessional, rank)
	assert.Equal(t, 1050, progress)
}

func TestAddSessions_CreatesRowLazily(t *testing.T) {
	SetupTestDB()

	rank, err := AddSessions("learner_lazy", 1)
	assert.NoError(t, err)
	assert.Equal(t, models.InitialRank, rank.Rank)
	assert.Equal(t, 1, rank.TotalSessions)
	assert.Equal(t, 1, rank.Progress)

	var stored models.LearnerRank
	err = database.DB.First(&stored, "learner_id = ?", "learner_lazy").Error
	assert.NoError(t, err)
	assert.Equal(t, 1, stored.TotalSessions)
}

func TestAddSessions_InvalidCountCountsAsOne(t *testing.T) {
	SetupTestDB()

	rank, err := AddSessions("learner_invalid", 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, rank.TotalSessions)

	rank, err = AddSessions("learner_invalid", -5)
	assert.NoError(t, err)
	assert.Equal(t, 2, rank.TotalSessions)
}

func TestAddSessions_StrictModeRejectsInvalidCount(t *testing.T) {
	SetupTestDB()
	config.AppConfig = &config.Config{RankStrictCounts: true}
	defer func() { config.AppConfig = nil }()

	_, err := AddSessions("learner_strict", 0)
	assert.ErrorIs(t, err, ErrInvalidSessionCount)

	// No row should have been created
	var count int64
	database.DB.Model(&models.LearnerRank{}).Where("learner_id = ?", "learner_strict").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAddSessions_TotalIsMonotonic(t *testing.T) {
	SetupTestDB()

	var lastTotal int
	for i := 0; i < 25; i++ {
		rank, err := AddSessions("learner_mono", 1)
		assert.NoError(t, err)
		assert.Greater(t, rank.TotalSessions, lastTotal)
		lastTotal = rank.TotalSessions

		// Progress always sits below the current tier's threshold
		if required, ok := rank.RequiredSessions(); ok {
			assert.Less(t, rank.Progress, required)
		}
	}

	// 25 sessions: 20 clear the Beginner tiers, 5 remain in Intermediate III
	rank, _ := GetLearnerRank("learner_mono")
	assert.Equal(t, models.RankIntermediateIII, rank.Rank)
	assert.Equal(t, 5, rank.Progress)
	assert.Equal(t, 25, rank.TotalSessions)
}

func TestAddSessions_PromotionCreatesNotification(t *testing.T) {
	SetupTestDB()

	_, err := AddSessions("learner_notify", 5)
	assert.NoError(t, err)

	var notification models.Notification
	err = database.DB.First(&notification, "user_id = ? AND type = ?", "learner_notify", models.NotificationTypeRank).Error
	assert.NoError(t, err)
	assert.Equal(t, string(models.RankBeginnerII), notification.TargetID)

	var activity models.UserActivity
	err = database.DB.First(&activity, "actor_id = ? AND type = ?", "learner_notify", models.ActivityRankPromoted).Error
	assert.NoError(t, err)
}

func TestAddSessions_NoNotificationWithoutPromotion(t *testing.T) {
	SetupTestDB()

	_, err := AddSessions("learner_quiet", 2)
	assert.NoError(t, err)

	var count int64
	database.DB.Model(&models.Notification{}).Where("user_id = ?", "learner_quiet").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetLearnerRank_DefaultsWithoutRow(t *testing.T) {
	SetupTestDB()

	rank, err := GetLearnerRank("learner_unknown")
	assert.NoError(t, err)
	assert.Equal(t, models.InitialRank, rank.Rank)
	assert.Equal(t, 0, rank.TotalSessions)
	assert.Equal(t, 0, rank.Progress)

	required, ok := rank.RequiredSessions()
	assert.True(t, ok)
	assert.Equal(t, 5, required)
	assert.Equal(t, 5, rank.SessionsToNextRank())
}

func TestRankLadder_Shape(t *testing.T) {
	// Walk the whole ladder from the bottom; it must terminate at the
	// terminal tier and never revisit a tier.
	seen := map[models.RankTier]bool{}
	tier := models.InitialRank
	steps := 0
	for {
		assert.False(t, seen[tier], "ladder revisited %s", tier)
		seen[tier] = true
		next, ok := tier.Next()
		if !ok {
			break
		}
		tier = next
		steps++
		assert.Less(t, steps, 100, "ladder does not terminate")
	}
	assert.True(t, tier.IsTerminal())
	assert.Equal(t, models.RankProfessional, tier)
	assert.Len(t, seen, 16)
}
