package routes

import (
	"github.com/CordovaPaulo/mindmate-backend-go/internal/handlers"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterForumRoutes(rg *gin.RouterGroup) {
	forum := rg.Group("/forum")
	{
		// Public reads (optional auth so request logs carry the user)
		forum.GET("/posts", middleware.OptionalAuthMiddleware(), handlers.ListForumPosts)
		forum.GET("/posts/:id", middleware.OptionalAuthMiddleware(), handlers.GetForumPost)

		// Protected writes
		protected := forum.Group("/")
		protected.Use(middleware.AuthMiddleware(), middleware.ForumRateLimit())
		{
			protected.POST("/posts", handlers.CreateForumPost)
			protected.POST("/posts/:id/comments", handlers.CreateForumComment)
			protected.POST("/posts/:id/vote", handlers.VoteForumPost)
			protected.POST("/comments/:commentId/vote", handlers.VoteForumComment)
		}
	}
}
