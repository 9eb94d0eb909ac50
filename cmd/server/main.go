package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CordovaPaulo/mindmate-backend-go/internal/config"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/database"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/middleware"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/migrations"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/models"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/routes"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/seeds"
	"github.com/CordovaPaulo/mindmate-backend-go/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// 0. Load Config & Initialize Logger
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting MindMate Backend...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. Connect Database & Redis
	database.Connect()
	database.InitRedis()

	// --- Database Migration Stage ---
	logger.Info().Msg("Running Database Migrations (Stage 1: Tables)...")

	// Disable FK constraints for the first pass so table creation order
	// doesn't matter (profiles reference users, schedules reference both)
	database.DB.Config.DisableForeignKeyConstraintWhenMigrating = true

	tableModels := []interface{}{
		&models.User{},
		&models.MentorProfile{},
		&models.LearnerProfile{},
		&models.Schedule{},
		&models.SessionFeedback{},
		&models.ForumPost{},
		&models.ForumComment{},
		&models.Badge{},
		&models.MentorBadge{},
		&models.LearnerRank{},
		&models.UserActivity{},
		&models.Notification{},
	}

	for _, m := range tableModels {
		if err := database.DB.AutoMigrate(m); err != nil {
			logger.Fatal().Err(err).Msgf("Failed to migrate table for %T", m)
		}
	}

	logger.Info().Msg("Running Database Migrations (Stage 2: Constraints)...")
	database.DB.Config.DisableForeignKeyConstraintWhenMigrating = false
	if err := database.DB.AutoMigrate(tableModels...); err != nil {
		logger.Fatal().Err(err).Msg("Failed to add database constraints")
	}

	// Versioned migrations (extensions, hot-path indexes)
	if err := migrations.NewMigrator(database.DB).Run(); err != nil {
		logger.Fatal().Err(err).Msg("Versioned migrations failed")
	}
	logger.Info().Msg("Database Migrations Complete")

	// 2. Seed static data
	seeds.SeedBadges()

	// 3. Setup Router
	r := gin.New()

	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// 4. Register Routes
	api := r.Group("/api")
	{
		routes.RegisterAuthRoutes(api)
		routes.RegisterMentorRoutes(api)
		routes.RegisterScheduleRoutes(api)
		routes.RegisterFeedbackRoutes(api)
		routes.RegisterForumRoutes(api)
		routes.RegisterGamificationRoutes(api)
		routes.RegisterNotificationRoutes(api)
	}

	// Health check with DB and Redis status
	r.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		redisStatus := "ok"

		sqlDB, err := database.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "error"
		}

		if database.Redis != nil {
			if _, err := database.Redis.Ping(context.Background()).Result(); err != nil {
				redisStatus = "error"
			}
		} else {
			redisStatus = "not configured"
		}

		status := "ok"
		if dbStatus != "ok" || (redisStatus != "ok" && redisStatus != "not configured") {
			status = "degraded"
		}

		c.JSON(200, gin.H{
			"status":  status,
			"message": "MindMate Backend is running",
			"checks": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	})

	// 5. Start Server with graceful shutdown
	port := config.AppConfig.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", port).Str("env", env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server gracefully...")

	// Give outstanding requests 10 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}
