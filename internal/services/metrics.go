package services

import (
	"github.com/CordovaPaulo/mindmate-backend-go/internal/database"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/models"
)

// MentorMetrics is the snapshot of facts about a mentor that badge rules are
// evaluated against. It is always recomputed fresh from the source tables,
// never persisted on its own (a JSON copy is attached to awarded badges for
// audit).
type MentorMetrics struct {
	// Sessions
	SessionsCompleted   int64 `json:"sessionsCompleted"`
	GroupSessionsHosted int64 `json:"groupSessionsHosted"`
	UniqueLearners      int64 `json:"uniqueLearners"`

	// Ratings
	AvgRating     float64 `json:"avgRating"`
	RatingsCount  int64   `json:"ratingsCount"`
	FiveStarCount int64   `json:"fiveStarCount"`

	// Forum
	ForumPosts    int64 `json:"forumPosts"`
	ForumComments int64 `json:"forumComments"`
	ForumUpvotes  int64 `json:"forumUpvotes"`

	// Trust
	IsVerified           bool  `json:"isVerified"`
	CredentialsCount     int64 `json:"credentialsCount"`
	HasCredentialsFolder bool  `json:"hasCredentialsFolder"`
}

// ComputeMentorMetrics aggregates a fresh metrics snapshot for a mentor.
// Pure read; safe to call repeatedly.
func ComputeMentorMetrics(mentorID string) (*MentorMetrics, error) {
	var profile models.MentorProfile
	if err := database.DB.First(&profile, "id = ?", mentorID).Error; err != nil {
		return nil, err
	}
	return computeMetricsForProfile(&profile), nil
}

func computeMetricsForProfile(profile *models.MentorProfile) *MentorMetrics {
	m := &MentorMetrics{}

	// Session history. Only sessions that actually happened count.
	database.DB.Model(&models.Schedule{}).
		Where("mentor_id = ? AND status = ?", profile.ID, models.ScheduleStatusCompleted).
		Count(&m.SessionsCompleted)
	database.DB.Model(&models.Schedule{}).
		Where("mentor_id = ? AND status = ? AND type = ?", profile.ID, models.ScheduleStatusCompleted, models.SessionGroup).
		Count(&m.GroupSessionsHosted)
	database.DB.Model(&models.Schedule{}).
		Where("mentor_id = ? AND status = ?", profile.ID, models.ScheduleStatusCompleted).
		Distinct("learner_id").Count(&m.UniqueLearners)

	// Rating stats
	var ratingAgg struct {
		Avg   float64
		Total int64
	}
	database.DB.Model(&models.SessionFeedback{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS total").
		Where("mentor_id = ?", profile.ID).
		Scan(&ratingAgg)
	m.AvgRating = ratingAgg.Avg
	m.RatingsCount = ratingAgg.Total
	database.DB.Model(&models.SessionFeedback{}).
		Where("mentor_id = ? AND rating = ?", profile.ID, models.MaxRating).Count(&m.FiveStarCount)

	// Forum activity (authored under the mentor's user identity).
	// Upvotes are summed gross; downvotes are not netted out.
	database.DB.Model(&models.ForumPost{}).
		Where("author_id = ?", profile.UserID).Count(&m.ForumPosts)
	database.DB.Model(&models.ForumComment{}).
		Where("author_id = ?", profile.UserID).Count(&m.ForumComments)

	var postVotes, commentVotes struct{ Sum int64 }
	database.DB.Model(&models.ForumPost{}).
		Select("COALESCE(SUM(upvotes), 0) AS sum").
		Where("author_id = ?", profile.UserID).
		Scan(&postVotes)
	database.DB.Model(&models.ForumComment{}).
		Select("COALESCE(SUM(upvotes), 0) AS sum").
		Where("author_id = ?", profile.UserID).
		Scan(&commentVotes)
	m.ForumUpvotes = postVotes.Sum + commentVotes.Sum

	// Trust signals straight off the profile
	m.IsVerified = profile.Verified
	m.CredentialsCount = int64(len(profile.Credentials))
	m.HasCredentialsFolder = profile.CredentialsFolderID != ""

	return m
}
