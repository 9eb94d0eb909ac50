package routes

import (
	"github.com/CordovaPaulo/mindmate-backend-go/internal/handlers"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signup", middleware.AuthRateLimit(), handlers.Signup)
		auth.POST("/login", middleware.AuthRateLimit(), handlers.Login)
		auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
	}
}
