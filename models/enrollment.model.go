package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a user's enrollment in a course with progress
type Enrollment struct {
	gorm.Model
	UserID           uint       `json:"user_id" gorm:"index;not null"`
	CourseID         uint       `json:"course_id" gorm:"index;not null"`
	Status           string     `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	Progress         float64    `json:"progress" gorm:"default:0"`        // completion percentage (0-100)
	CompletedLessons int        `json:"completed_lessons" gorm:"default:0"`
	TotalLessons     int        `json:"total_lessons" gorm:"default:0"`
	CompletedAt      *time.Time `json:"completed_at"`
	IsDeleted        bool       `gorm:"default:false"`
}

// LessonProgress marks a single lesson as completed by a user
type LessonProgress struct {
	gorm.Model
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	LessonID    uint      `json:"lesson_id" gorm:"index;not null"`
	CourseID    uint      `json:"course_id" gorm:"index;not null"`
	CompletedAt time.Time `json:"completed_at"`
	IsDeleted   bool      `gorm:"default:false"`
}

// QuizAttempt records a graded quiz submission
type QuizAttempt struct {
	gorm.Model
	UserID        uint   `json:"user_id" gorm:"index;not null"`
	QuizID        uint   `json:"quiz_id" gorm:"index;not null"`
	CourseID      uint   `json:"course_id" gorm:"index;not null"`
	Answers       string `json:"answers"` // JSON map of questionID -> chosen option
	Score         int    `json:"score"`   // percentage
	Passed        bool   `json:"passed" gorm:"default:false"`
	AttemptNumber int    `json:"attempt_number" gorm:"default:1"`
	IsDeleted     bool   `gorm:"default:false"`
}
