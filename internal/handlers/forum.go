package handlers

import (
	"net/http"
	"strconv"

	"github.com/CordovaPaulo/mindmate-backend-go/internal/database"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/models"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/services"
	"github.com/CordovaPaulo/mindmate-backend-go/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateForumPost publishes a new discussion post
func CreateForumPost(c *gin.Context) {
	userID := c.GetString("userId")

	var input struct {
		Title   string `json:"title" binding:"required,max=200"`
		Content string `json:"content" binding:"required"`
		Subject string `json:"subject"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := models.ForumPost{
		AuthorID: userID,
		Title:    utils.SanitizeHTML(input.Title),
		Slug:     utils.GenerateSlug(input.Title),
		Content:  utils.SanitizeHTML(input.Content),
		Subject:  input.Subject,
	}

	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	services.LogActivity(userID, models.ActivityForumPost, post.ID, "Posted: "+post.Title)

	// Post counts feed the forum_regular badge
	checkAuthorBadges(userID)

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// ListForumPosts returns posts, filterable by subject and search term
func ListForumPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	query := database.DB.Model(&models.ForumPost{}).Preload("Author")

	if subject := c.Query("subject"); subject != "" {
		query = query.Where("subject = ?", subject)
	}
	if search := c.Query("search"); search != "" {
		pattern := utils.SanitizeSearchQuery(search)
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}

	var total int64
	query.Count(&total)

	var posts []models.ForumPost
	if err := query.Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetForumPost returns one post with its comments
func GetForumPost(c *gin.Context) {
	postID := c.Param("id")

	var post models.ForumPost
	if err := database.DB.Preload("Author").First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var comments []models.ForumComment
	database.DB.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at asc").
		Find(&comments)

	c.JSON(http.StatusOK, gin.H{
		"post":     post,
		"comments": comments,
	})
}

// CreateForumComment replies to a post
func CreateForumComment(c *gin.Context) {
	userID := c.GetString("userId")
	postID := c.Param("id")

	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.ForumPost
	if err := database.DB.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comment := models.ForumComment{
		PostID:   postID,
		AuthorID: userID,
		Content:  utils.SanitizeHTML(input.Content),
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	// Comment counts feed the forum_regular badge
	checkAuthorBadges(userID)

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// VoteForumPost casts an up or down vote on a post
func VoteForumPost(c *gin.Context) {
	postID := c.Param("id")

	var input struct {
		Direction string `json:"direction" binding:"required,oneof=up down"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be 'up' or 'down'"})
		return
	}

	column := "upvotes"
	if input.Direction == "down" {
		column = "downvotes"
	}

	res := database.DB.Model(&models.ForumPost{}).
		Where("id = ?", postID).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record vote"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var post models.ForumPost
	database.DB.First(&post, "id = ?", postID)

	// Upvote totals feed the community_voice badge
	if input.Direction == "up" {
		checkAuthorBadges(post.AuthorID)
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// VoteForumComment casts an up or down vote on a comment
func VoteForumComment(c *gin.Context) {
	commentID := c.Param("commentId")

	var input struct {
		Direction string `json:"direction" binding:"required,oneof=up down"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be 'up' or 'down'"})
		return
	}

	column := "upvotes"
	if input.Direction == "down" {
		column = "downvotes"
	}

	res := database.DB.Model(&models.ForumComment{}).
		Where("id = ?", commentID).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record vote"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	var comment models.ForumComment
	database.DB.First(&comment, "id = ?", commentID)

	if input.Direction == "up" {
		checkAuthorBadges(comment.AuthorID)
	}

	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

// checkAuthorBadges triggers a background badge pass when the author of a
// forum action is a mentor. Community badges key off forum activity.
func checkAuthorBadges(userID string) {
	var profile models.MentorProfile
	if err := database.DB.First(&profile, "user_id = ?", userID).Error; err == nil {
		services.CheckBadgesAsync(profile.ID)
	}
}
