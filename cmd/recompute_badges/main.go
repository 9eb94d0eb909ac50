package main

import (
	"log"

	"github.com/CordovaPaulo/mindmate-backend-go/internal/config"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/database"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/models"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/services"
	"github.com/CordovaPaulo/mindmate-backend-go/pkg/logger"
)

// Backfill tool: runs a badge award pass over every mentor. Useful after
// adding rules to the catalog, since badges are normally only re-evaluated
// when a mentor's own state changes.
func main() {
	config.LoadConfig()
	logger.Init("development")
	database.Connect()

	var mentors []models.MentorProfile
	if err := database.DB.Find(&mentors).Error; err != nil {
		log.Fatalf("Failed to list mentors: %v", err)
	}

	log.Printf("Re-evaluating badges for %d mentors...", len(mentors))

	var totalAwarded int
	for _, mentor := range mentors {
		result, err := services.AwardMentorBadges(mentor.ID)
		if err != nil {
			log.Printf("mentor %s: %v", mentor.ID, err)
			continue
		}
		if len(result.Awarded) > 0 {
			log.Printf("mentor %s: awarded %d badge(s)", mentor.ID, len(result.Awarded))
			totalAwarded += len(result.Awarded)
		}
	}

	log.Printf("Done. %d new badge(s) awarded.", totalAwarded)
}
