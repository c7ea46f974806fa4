package models

import "gorm.io/gorm"

// Course is a published learning track
type Course struct {
	gorm.Model
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Category    string `json:"category" gorm:"default:'GENERAL'"` // GENERAL, HEALTH, NUTRITION, TECH
	Duration    int64  `json:"duration"`                          // total minutes
	Status      string `json:"status" gorm:"default:'DRAFT'"`     // DRAFT, ACTIVE, ARCHIVED
	IsPremium   bool   `json:"is_premium" gorm:"default:false"`
	CreatedBy   uint   `json:"created_by"`
	IsDeleted   bool   `gorm:"default:false"`
}

// Lesson is a single unit of course content
type Lesson struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Title      string `json:"title" gorm:"not null"`
	Body       string `json:"body"`
	VideoURL   string `json:"video_url"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

// Quiz attaches a graded check to a lesson
type Quiz struct {
	gorm.Model
	LessonID  uint   `json:"lesson_id" gorm:"index;not null"`
	Title     string `json:"title"`
	PassScore int    `json:"pass_score" gorm:"default:70"` // percentage required to pass
	IsDeleted bool   `gorm:"default:false"`
}

// QuizQuestion is a multiple-choice question; options are stored inline
// and the correct option index is never serialized to students.
type QuizQuestion struct {
	gorm.Model
	QuizID        uint   `json:"quiz_id" gorm:"index;not null"`
	QuestionText  string `json:"question_text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectOption string `json:"-" gorm:"type:varchar(1)"` // A, B, C or D
	OrderIndex    int    `json:"order_index" gorm:"default:0"`
	IsDeleted     bool   `gorm:"default:false"`
}
