package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/CordovaPaulo/mindmate-backend-go/internal/database"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/models"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/seeds"
	"github.com/stretchr/testify/assert"
)

func createMentor(t *testing.T, suffix string) models.MentorProfile {
	t.Helper()

	user := models.User{
		ID:       "mentor_user_" + suffix,
		Name:     "Mentor " + suffix,
		Username: "mentor_" + suffix,
		Email:    "mentor_" + suffix + "@example.com",
		Role:     models.RoleMentor,
	}
	database.DB.Create(&user)

	profile := models.MentorProfile{ID: "mentor_" + suffix, UserID: user.ID}
	database.DB.Create(&profile)
	return profile
}

func completedSession(mentorID, learnerID string, sessionType models.SessionType) models.Schedule {
	return models.Schedule{
		MentorID:    mentorID,
		LearnerID:   learnerID,
		Subject:     "Calculus",
		Type:        sessionType,
		Status:      models.ScheduleStatusCompleted,
		ScheduledAt: time.Now().Add(-time.Hour),
		DurationMin: 60,
	}
}

func TestEvaluateBadges_FirstSession(t *testing.T) {
	m := &MentorMetrics{SessionsCompleted: 1}
	keys := EvaluateBadges(m)
	assert.Contains(t, keys, "first_session")
	assert.NotContains(t, keys, "ten_sessions")
	assert.NotContains(t, keys, "fifty_sessions")
}

func TestEvaluateBadges_SessionMilestones(t *testing.T) {
	m := &MentorMetrics{SessionsCompleted: 50}
	keys := EvaluateBadges(m)
	assert.Contains(t, keys, "first_session")
	assert.Contains(t, keys, "ten_sessions")
	assert.Contains(t, keys, "fifty_sessions")
}

func TestEvaluateBadges_AllOfNeedsEveryCondition(t *testing.T) {
	// High average but too few ratings: rising_star needs both
	m := &MentorMetrics{AvgRating: 4.9, RatingsCount: 3}
	assert.NotContains(t, EvaluateBadges(m), "rising_star")

	m.RatingsCount = 5
	assert.Contains(t, EvaluateBadges(m), "rising_star")
	// Still short of top_rated's 20 ratings
	assert.NotContains(t, EvaluateBadges(m), "top_rated")
}

func TestEvaluateBadges_AnyOfNeedsOneCondition(t *testing.T) {
	// credentialed: a folder alone is enough
	m := &MentorMetrics{HasCredentialsFolder: true}
	assert.Contains(t, EvaluateBadges(m), "credentialed")

	// ...and so is a single uploaded credential
	m = &MentorMetrics{CredentialsCount: 1}
	assert.Contains(t, EvaluateBadges(m), "credentialed")

	// forum_regular: 20 comments qualify even with zero posts
	m = &MentorMetrics{ForumComments: 20}
	assert.Contains(t, EvaluateBadges(m), "forum_regular")
	m = &MentorMetrics{ForumComments: 19}
	assert.NotContains(t, EvaluateBadges(m), "forum_regular")
}

func TestEvaluateBadges_EmptyMetrics(t *testing.T) {
	assert.Empty(t, EvaluateBadges(&MentorMetrics{}))
	assert.Empty(t, EvaluateBadges(nil))
}

func TestBadgeRuleKeys_MatchSeededCatalog(t *testing.T) {
	catalog := map[string]bool{}
	for _, b := range seeds.BadgeCatalog() {
		catalog[b.Key] = true
	}

	ruleKeys := BadgeRuleKeys()
	assert.Len(t, ruleKeys, len(catalog))
	for _, key := range ruleKeys {
		assert.True(t, catalog[key], "rule %s has no catalog entry", key)
	}
}

func TestAwardMentorBadges_AwardsAndIsIdempotent(t *testing.T) {
	SetupTestDB()
	seeds.SeedBadges()
	profile := createMentor(t, "award")

	s := completedSession(profile.ID, "learner_a", models.SessionOneOnOne)
	database.DB.Create(&s)

	result, err := AwardMentorBadges(profile.ID)
	assert.NoError(t, err)

	awardedKeys := []string{}
	for _, b := range result.Awarded {
		awardedKeys = append(awardedKeys, b.BadgeKey)
	}
	assert.Contains(t, awardedKeys, "first_session")

	// Display metadata resolved from the catalog
	for _, b := range result.Awarded {
		if b.BadgeKey == "first_session" {
			assert.Equal(t, "First Session", b.Badge.Name)
		}
	}

	// Metrics snapshot attached for audit
	var stored models.MentorBadge
	err = database.DB.First(&stored, "mentor_id = ? AND badge_key = ?", profile.ID, "first_session").Error
	assert.NoError(t, err)
	var snapshot MentorMetrics
	assert.NoError(t, json.Unmarshal([]byte(stored.MetricsSnapshot), &snapshot))
	assert.Equal(t, int64(1), snapshot.SessionsCompleted)

	// Second pass with unchanged state awards nothing new
	result, err = AwardMentorBadges(profile.ID)
	assert.NoError(t, err)
	assert.Empty(t, result.Awarded)

	alreadyHadKeys := []string{}
	for _, b := range result.AlreadyHad {
		alreadyHadKeys = append(alreadyHadKeys, b.BadgeKey)
	}
	assert.Contains(t, alreadyHadKeys, "first_session")
}

func TestAwardMentorBadges_GroupHost(t *testing.T) {
	SetupTestDB()
	seeds.SeedBadges()
	profile := createMentor(t, "group")

	s := completedSession(profile.ID, "learner_g", models.SessionGroup)
	database.DB.Create(&s)

	result, err := AwardMentorBadges(profile.ID)
	assert.NoError(t, err)

	keys := []string{}
	for _, b := range result.Awarded {
		keys = append(keys, b.BadgeKey)
	}
	assert.Contains(t, keys, "group_host")
	assert.Contains(t, keys, "first_session")
}

func TestAwardMentorBadges_PendingSessionsDoNotCount(t *testing.T) {
	SetupTestDB()
	seeds.SeedBadges()
	profile := createMentor(t, "pending")

	s := completedSession(profile.ID, "learner_p", models.SessionOneOnOne)
	s.Status = models.ScheduleStatusPending
	database.DB.Create(&s)

	result, err := AwardMentorBadges(profile.ID)
	assert.NoError(t, err)
	assert.Empty(t, result.Awarded)
}

func TestAwardMentorBadges_UnknownMentorIsNeutral(t *testing.T) {
	SetupTestDB()

	result, err := AwardMentorBadges("no_such_mentor")
	assert.NoError(t, err)
	assert.Empty(t, result.Awarded)
	assert.Empty(t, result.AlreadyHad)
}

func TestAwardMentorBadges_NeverRevokes(t *testing.T) {
	SetupTestDB()
	seeds.SeedBadges()
	profile := createMentor(t, "keep")

	// Badge awarded under conditions that no longer hold
	database.DB.Create(&models.MentorBadge{
		MentorID:        profile.ID,
		BadgeKey:        "verified_mentor",
		AwardedAt:       time.Now(),
		MetricsSnapshot: "{}",
	})

	// Profile is not verified, so the rule is unsatisfied today
	result, err := AwardMentorBadges(profile.ID)
	assert.NoError(t, err)
	assert.Empty(t, result.Awarded)

	badges, err := GetMentorBadges(profile.ID)
	assert.NoError(t, err)
	assert.Len(t, badges, 1)
	assert.Equal(t, "verified_mentor", badges[0].BadgeKey)
}

func TestAwardMentorBadges_CreatesNotification(t *testing.T) {
	SetupTestDB()
	seeds.SeedBadges()
	profile := createMentor(t, "notif")

	s := completedSession(profile.ID, "learner_n", models.SessionOneOnOne)
	database.DB.Create(&s)

	_, err := AwardMentorBadges(profile.ID)
	assert.NoError(t, err)

	var notification models.Notification
	err = database.DB.First(&notification, "user_id = ? AND type = ?", profile.UserID, models.NotificationTypeBadge).Error
	assert.NoError(t, err)
	assert.Equal(t, "first_session", notification.TargetID)
}

func TestComputeMentorMetrics_Aggregates(t *testing.T) {
	SetupTestDB()
	profile := createMentor(t, "metrics")

	// Two completed sessions with distinct learners, one pending
	for i, learner := range []string{"ml_1", "ml_2"} {
		s := completedSession(profile.ID, learner, models.SessionOneOnOne)
		s.ID = profile.ID + "_s" + string(rune('a'+i))
		database.DB.Create(&s)
	}
	pending := completedSession(profile.ID, "ml_3", models.SessionOneOnOne)
	pending.Status = models.ScheduleStatusPending
	database.DB.Create(&pending)

	// Ratings: a 5 and a 4
	database.DB.Create(&models.SessionFeedback{ScheduleID: profile.ID + "_sa", LearnerID: "ml_1", MentorID: profile.ID, Rating: 5})
	database.DB.Create(&models.SessionFeedback{ScheduleID: profile.ID + "_sb", LearnerID: "ml_2", MentorID: profile.ID, Rating: 4})

	// Forum activity under the mentor's user identity
	database.DB.Create(&models.ForumPost{AuthorID: profile.UserID, Title: "Tips", Content: "...", Upvotes: 3})
	database.DB.Create(&models.ForumComment{PostID: "some_post", AuthorID: profile.UserID, Content: "...", Upvotes: 2})

	m, err := ComputeMentorMetrics(profile.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), m.SessionsCompleted)
	assert.Equal(t, int64(2), m.UniqueLearners)
	assert.Equal(t, int64(0), m.GroupSessionsHosted)
	assert.Equal(t, int64(2), m.RatingsCount)
	assert.InDelta(t, 4.5, m.AvgRating, 0.001)
	assert.Equal(t, int64(1), m.FiveStarCount)
	assert.Equal(t, int64(1), m.ForumPosts)
	assert.Equal(t, int64(1), m.ForumComments)
	assert.Equal(t, int64(5), m.ForumUpvotes)
	assert.False(t, m.IsVerified)
}
