package routes

import (
	"github.com/CordovaPaulo/mindmate-backend-go/internal/handlers"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterMentorRoutes(rg *gin.RouterGroup) {
	mentors := rg.Group("/mentors")
	{
		// Public
		mentors.GET("", middleware.OptionalAuthMiddleware(), handlers.ListMentors)
		mentors.GET("/:id", middleware.OptionalAuthMiddleware(), handlers.GetMentorProfile)
		mentors.GET("/:id/badges", handlers.GetMentorBadgeList)
		mentors.GET("/:id/feedback", handlers.ListMentorFeedback)

		// Protected (own profile)
		protected := mentors.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.PUT("/me", handlers.UpdateMentorProfile)
			protected.POST("/me/credentials", handlers.AddCredential)
			protected.PUT("/me/credentials-folder", handlers.SetCredentialsFolder)
			protected.POST("/me/badges/recheck", handlers.RecheckMyBadges)

			// Admin
			admin := protected.Group("/")
			admin.Use(middleware.AdminMiddleware())
			{
				admin.PUT("/:id/verify", handlers.VerifyMentor)
			}
		}
	}
}
