package handlers

import (
	"net/http"
	"strconv"

	"github.com/CordovaPaulo/mindmate-backend-go/internal/database"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/models"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/services"
	"github.com/CordovaPaulo/mindmate-backend-go/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// ListMentors returns mentor profiles, filterable by subject and search term
func ListMentors(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	query := database.DB.Model(&models.MentorProfile{}).Preload("User")

	if subject := c.Query("subject"); subject != "" {
		query = query.Where("? = ANY(subjects)", subject)
	}
	if c.Query("verified") == "true" {
		query = query.Where("verified = ?", true)
	}
	if search := c.Query("search"); search != "" {
		pattern := utils.SanitizeSearchQuery(search)
		query = query.Joins("JOIN users ON users.id = mentor_profiles.user_id").
			Where("users.name ILIKE ? OR mentor_profiles.headline ILIKE ?", pattern, pattern)
	}

	var total int64
	query.Count(&total)

	var mentors []models.MentorProfile
	if err := query.Order("verified desc, created_at asc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&mentors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch mentors"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mentors": mentors,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// GetMentorProfile returns one mentor with their badges and rating summary
func GetMentorProfile(c *gin.Context) {
	mentorID := c.Param("id")

	var profile models.MentorProfile
	if err := database.DB.Preload("User").First(&profile, "id = ?", mentorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mentor not found"})
		return
	}

	badges, err := services.GetMentorBadges(mentorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch badges"})
		return
	}

	metrics, err := services.ComputeMentorMetrics(mentorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute mentor stats"})
		return
	}

	// Profile views are a cheap moment to catch up on earned badges
	services.CheckBadgesAsync(mentorID)

	c.JSON(http.StatusOK, gin.H{
		"mentor": profile,
		"badges": badges,
		"stats": gin.H{
			"sessionsCompleted": metrics.SessionsCompleted,
			"uniqueLearners":    metrics.UniqueLearners,
			"avgRating":         metrics.AvgRating,
			"ratingsCount":      metrics.RatingsCount,
		},
	})
}

// UpdateMentorProfile updates the caller's own mentor profile
func UpdateMentorProfile(c *gin.Context) {
	userID := c.GetString("userId")

	var input struct {
		Headline *string  `json:"headline"`
		Subjects []string `json:"subjects"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var profile models.MentorProfile
	if err := database.DB.First(&profile, "user_id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mentor profile not found"})
		return
	}

	if input.Headline != nil {
		profile.Headline = utils.TruncateString(utils.SanitizeHTML(*input.Headline), 200)
	}
	if input.Subjects != nil {
		profile.Subjects = pq.StringArray(input.Subjects)
	}

	if err := database.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mentor": profile})
}

// AddCredential records an uploaded credential file reference on the
// caller's mentor profile. The file itself lives in external storage.
func AddCredential(c *gin.Context) {
	userID := c.GetString("userId")

	var input struct {
		FileRef string `json:"fileRef" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var profile models.MentorProfile
	if err := database.DB.First(&profile, "user_id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mentor profile not found"})
		return
	}

	profile.Credentials = append(profile.Credentials, input.FileRef)
	if err := database.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save credential"})
		return
	}

	// May unlock the credentialed badge
	services.CheckBadgesAsync(profile.ID)

	c.JSON(http.StatusOK, gin.H{"mentor": profile})
}

// SetCredentialsFolder links an external folder of credentials to the profile
func SetCredentialsFolder(c *gin.Context) {
	userID := c.GetString("userId")

	var input struct {
		FolderID string `json:"folderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var profile models.MentorProfile
	if err := database.DB.First(&profile, "user_id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mentor profile not found"})
		return
	}

	profile.CredentialsFolderID = input.FolderID
	if err := database.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save folder reference"})
		return
	}

	services.CheckBadgesAsync(profile.ID)

	c.JSON(http.StatusOK, gin.H{"mentor": profile})
}

// VerifyMentor marks a mentor as verified. Admin only.
func VerifyMentor(c *gin.Context) {
	mentorID := c.Param("id")

	var input struct {
		Verified *bool `json:"verified" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var profile models.MentorProfile
	if err := database.DB.First(&profile, "id = ?", mentorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mentor not found"})
		return
	}

	profile.Verified = *input.Verified
	if err := database.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update verification"})
		return
	}

	if profile.Verified {
		notification := models.Notification{
			UserID:  profile.UserID,
			ActorID: c.GetString("userId"),
			Type:    models.NotificationTypeSystem,
			Message: "Your mentor account has been verified!",
		}
		database.DB.Create(&notification)

		// Verification feeds the verified_mentor badge rule
		services.CheckBadgesAsync(profile.ID)
	}

	c.JSON(http.StatusOK, gin.H{"mentor": profile})
}
