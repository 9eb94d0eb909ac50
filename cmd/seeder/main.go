package main

import (
	"fmt"
	"log"
	"time"

	"github.com/CordovaPaulo/mindmate-backend-go/internal/config"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/database"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/models"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/seeds"
	"github.com/CordovaPaulo/mindmate-backend-go/pkg/logger"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// Development seeder: badge catalog plus a small demo dataset so the
// frontend has something to render. Never run against production.
func main() {
	config.LoadConfig()
	logger.Init("development")
	database.Connect()

	log.Println("Running migrations (just in case)...")
	database.DB.AutoMigrate(
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
	)

	seeds.SeedBadges()

	log.Println("Seeding demo users...")
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	mentorUser := models.User{
		Name:     "Alex Rivera",
		Username: "alexrivera",
		Email:    "alex@mindmate.dev",
		Password: string(hash),
		Role:     models.RoleMentor,
	}
	if err := database.DB.Where("email = ?", mentorUser.Email).FirstOrCreate(&mentorUser).Error; err != nil {
		log.Fatalf("Failed to seed mentor user: %v", err)
	}

	mentorProfile := models.MentorProfile{
		UserID:   mentorUser.ID,
		Subjects: pq.StringArray{"Calculus", "Physics"},
		Headline: "Engineering student helping with math and physics",
	}
	database.DB.Where("user_id = ?", mentorUser.ID).FirstOrCreate(&mentorProfile)

	for i := 1; i <= 3; i++ {
		learnerUser := models.User{
			Name:     fmt.Sprintf("Demo Learner %d", i),
			Username: fmt.Sprintf("learner%d", i),
			Email:    fmt.Sprintf("learner%d@mindmate.dev", i),
			Password: string(hash),
			Role:     models.RoleLearner,
		}
		if err := database.DB.Where("email = ?", learnerUser.Email).FirstOrCreate(&learnerUser).Error; err != nil {
			log.Printf("Failed to seed learner %d: %v", i, err)
			continue
		}

		learnerProfile := models.LearnerProfile{
			UserID:             learnerUser.ID,
			SubjectsOfInterest: pq.StringArray{"Calculus"},
		}
		database.DB.Where("user_id = ?", learnerUser.ID).FirstOrCreate(&learnerProfile)

		schedule := models.Schedule{
			MentorID:    mentorProfile.ID,
			LearnerID:   learnerUser.ID,
			Subject:     "Calculus",
			Type:        models.SessionOneOnOne,
			Status:      models.ScheduleStatusCompleted,
			ScheduledAt: time.Now().Add(-time.Duration(i) * 24 * time.Hour),
			DurationMin: 60,
		}
		database.DB.Create(&schedule)
	}

	log.Println("Seed complete.")
}
