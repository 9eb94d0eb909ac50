package routes

import (
	"github.com/CordovaPaulo/mindmate-backend-go/internal/handlers"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterFeedbackRoutes(rg *gin.RouterGroup) {
	feedback := rg.Group("/feedback")
	feedback.Use(middleware.AuthMiddleware())
	{
		feedback.POST("", handlers.CreateFeedback)
	}
}
