package routes

import (
	"github.com/CordovaPaulo/mindmate-backend-go/internal/handlers"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterGamificationRoutes(rg *gin.RouterGroup) {
	// Rank progression
	ranks := rg.Group("/ranks")
	{
		ranks.GET("/me", middleware.AuthMiddleware(), handlers.GetMyRank)
		ranks.GET("/:id", handlers.GetLearnerRankByID)
		ranks.GET("/leaderboard", handlers.GetLeaderboard)
	}

	// Badge catalog (per-mentor badges live under /mentors/:id/badges)
	rg.GET("/badges", handlers.ListBadgeCatalog)

	// Activity feed
	activity := rg.Group("/activity")
	{
		activity.GET("", handlers.ListRecentActivity)
		activity.GET("/:id", handlers.ListUserActivity)
	}
}
