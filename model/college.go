package model

import (
	"time"

	"gorm.io/gorm"
)

// College represents an institution users belong to
type College struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Domain    string         `gorm:"type:varchar(255)" json:"domain,omitempty"` // for email verification

	// Relationships
	Users  []User  `gorm:"foreignKey:CollegeID" json:"-"`
	Posts  []Post  `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE" json:"-"`
	Events []Event `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE" json:"-"`
}

// CollegeStats holds the per-college community counters
type CollegeStats struct {
	StudentsCount int64 `json:"students_count"`
	AlumniCount   int64 `json:"alumni_count"`
	TotalPosts    int64 `json:"total_posts"`
}
