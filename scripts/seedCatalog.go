package main

import (
	"log"
	"os"

	"aimwell/config"
	"aimwell/database"
	"aimwell/models"

	"golang.org/x/crypto/bcrypt"
)

// Seeds a starter course catalog and a super admin account. Intended for
// fresh environments; existing rows are left alone.
func main() {
	config.LoadConfig()
	db := database.Connect()

	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@aimwell.app"
	}

	var admin models.User
	if err := db.Where("email = ?", adminEmail).First(&admin).Error; err != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("ChangeMe!2024"), config.AppConfig.SaltRound)
		if err != nil {
			log.Fatalf("Failed to hash seed password: %v", err)
		}
		admin = models.User{
			Name:     "Aimwell Admin",
			Email:    adminEmail,
			Role:     models.RoleSuperAdmin,
			Password: string(hash),
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Fatalf("Failed to create admin: %v", err)
		}
		log.Printf("Created super admin %s", adminEmail)
	}

	courses := []struct {
		Course  models.Course
		Lessons []models.Lesson
	}{
		{
			Course: models.Course{
				Title:       "Foundations of Nutrition",
				Description: "Macronutrients, meal planning and label reading for everyday health.",
				Author:      "Aimwell Team",
				Category:    "NUTRITION",
				Duration:    180,
				Status:      "ACTIVE",
				CreatedBy:   admin.ID,
			},
			Lessons: []models.Lesson{
				{Title: "Macronutrients 101", Body: "Proteins, carbohydrates and fats explained.", OrderIndex: 0},
				{Title: "Reading Food Labels", Body: "Serving sizes, sugar aliases and marketing traps.", OrderIndex: 1},
				{Title: "Planning a Week of Meals", Body: "Batch cooking and budget-friendly staples.", OrderIndex: 2},
			},
		},
		{
			Course: models.Course{
				Title:       "Mental Wellness Basics",
				Description: "Stress management, sleep hygiene and daily check-in habits.",
				Author:      "Aimwell Team",
				Category:    "HEALTH",
				Duration:    120,
				Status:      "ACTIVE",
				CreatedBy:   admin.ID,
			},
			Lessons: []models.Lesson{
				{Title: "Understanding Stress", Body: "The stress response and why it matters.", OrderIndex: 0},
				{Title: "Sleep Hygiene", Body: "Building a wind-down routine that sticks.", OrderIndex: 1},
			},
		},
	}

	for _, entry := range courses {
		var existing models.Course
		if err := db.Where("title = ? AND is_deleted = false", entry.Course.Title).First(&existing).Error; err == nil {
			continue
		}
		course := entry.Course
		if err := db.Create(&course).Error; err != nil {
			log.Printf("Failed to seed course %q: %v", course.Title, err)
			continue
		}
		for _, lesson := range entry.Lessons {
			lesson.CourseID = course.ID
			if err := db.Create(&lesson).Error; err != nil {
				log.Printf("Failed to seed lesson %q: %v", lesson.Title, err)
			}
		}
		log.Printf("Seeded course %q with %d lessons", course.Title, len(entry.Lessons))
	}

	log.Println("Seeding complete.")
}
