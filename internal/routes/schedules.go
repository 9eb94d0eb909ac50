package routes

import (
	"github.com/CordovaPaulo/mindmate-backend-go/internal/handlers"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterScheduleRoutes(rg *gin.RouterGroup) {
	schedules := rg.Group("/schedules")
	schedules.Use(middleware.AuthMiddleware())
	{
		schedules.POST("", handlers.CreateSchedule)
		schedules.GET("", handlers.ListMySchedules)
		schedules.POST("/:id/confirm", handlers.ConfirmSchedule)
		schedules.POST("/:id/reschedule", handlers.RescheduleSchedule)
		schedules.POST("/:id/cancel", handlers.CancelSchedule)
		schedules.POST("/:id/complete", handlers.CompleteSchedule)
	}
}
