package models

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is issued on course completion or uploaded as external proof.
// VerificationCode is the public handle resolved by the verification endpoint.
type Certificate struct {
	gorm.Model
	UserID           uint       `json:"user_id" gorm:"index;not null"`
	CourseID         uint       `json:"course_id" gorm:"index"`
	CourseTitle      string     `json:"course_title"` // denormalized for external proofs
	VerificationCode string     `json:"verification_code" gorm:"unique;not null"`
	Score            int        `json:"score"`
	Source           string     `json:"source" gorm:"default:'COURSE'"` // COURSE, UPLOAD
	CertificateURL   string     `json:"certificate_url"`
	Verified         bool       `json:"verified" gorm:"default:false"`
	VerifiedAt       *time.Time `json:"verified_at"`
	IssuedAt         time.Time  `json:"issued_at"`
	IsDeleted        bool       `gorm:"default:false"`
}
