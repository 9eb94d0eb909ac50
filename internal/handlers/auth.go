package handlers

import (
	"net/http"
	"strings"

	"github.com/CordovaPaulo/mindmate-backend-go/internal/database"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/models"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/services"
	"github.com/CordovaPaulo/mindmate-backend-go/pkg/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Signup registers a new learner or mentor account
func Signup(c *gin.Context) {
	var input struct {
		Name     string   `json:"name" binding:"required,max=100"`
		Username string   `json:"username" binding:"required"`
		Email    string   `json:"email" binding:"required,email"`
		Password string   `json:"password" binding:"required,min=8"`
		Role     string   `json:"role"`
		Subjects []string `json:"subjects"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.ValidateUsername(input.Username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be 3-30 characters (letters, numbers, _ or -)"})
		return
	}

	role := models.Role(strings.ToUpper(input.Role))
	if role != models.RoleMentor {
		role = models.RoleLearner // admins are promoted out of band
	}

	// Reject duplicate email/username up front for a friendly error
	var existing models.User
	if err := database.DB.Where("email = ? OR username = ?", input.Email, input.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email or username already in use"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	user := models.User{
		Name:     input.Name,
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashed),
		Role:     role,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	// Create the role-side profile
	if role == models.RoleMentor {
		profile := models.MentorProfile{UserID: user.ID, Subjects: input.Subjects}
		if err := database.DB.Create(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create mentor profile"})
			return
		}
	} else {
		profile := models.LearnerProfile{UserID: user.ID, SubjectsOfInterest: input.Subjects}
		if err := database.DB.Create(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create learner profile"})
			return
		}
	}

	services.LogActivity(user.ID, models.ActivityNewUser, user.ID, "Joined MindMate")

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  user,
		"token": token,
	})
}

// Login authenticates with email + password
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

// Me returns the authenticated user with their role-side profile
func Me(c *gin.Context) {
	userID := c.GetString("userId")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	response := gin.H{"user": user}

	switch user.Role {
	case models.RoleMentor:
		var profile models.MentorProfile
		if err := database.DB.First(&profile, "user_id = ?", userID).Error; err == nil {
			response["mentorProfile"] = profile
		}
	default:
		var profile models.LearnerProfile
		if err := database.DB.First(&profile, "user_id = ?", userID).Error; err == nil {
			response["learnerProfile"] = profile
		}
	}

	c.JSON(http.StatusOK, response)
}
