package services

import (
	"time"

	"github.com/CordovaPaulo/mindmate-backend-go/internal/database"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/models"
	"github.com/CordovaPaulo/mindmate-backend-go/pkg/logger"
)

// LogActivity appends a row to the activity feed. Best-effort: failures are
// logged and never surfaced to the caller.
func LogActivity(actorID string, activityType models.ActivityType, targetID string, message string) {
	activity := models.UserActivity{
		Type:      activityType,
		ActorID:   actorID,
		TargetID:  targetID,
		Message:   message,
		CreatedAt: time.Now(),
	}

	if err := database.DB.Create(&activity).Error; err != nil {
		logger.Warn().Err(err).Str("actor", actorID).Msg("Failed to log activity")
	}
}
