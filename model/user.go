package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleStudent = "student"
	RoleAlumni  = "alumni"
	RoleAdmin   = "admin"
)

// User represents a registered user in the system
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"` // Never expose password in JSON
	FirstName    string         `gorm:"type:varchar(100)" json:"first_name"`
	LastName     string         `gorm:"type:varchar(100)" json:"last_name"`
	ProfileImage string         `gorm:"type:varchar(512)" json:"profile_image_url,omitempty"`
	Role         string         `gorm:"type:varchar(20);default:'student'" json:"role"` // student, alumni, admin
	CollegeID    *uint          `gorm:"index" json:"college_id,omitempty"`
	Department   string         `gorm:"type:varchar(255)" json:"department,omitempty"`
	Batch        string         `gorm:"type:varchar(50)" json:"batch,omitempty"` // cohort year/label, e.g. "2019-2023"
	Bio          string         `gorm:"type:text" json:"bio,omitempty"`
	Location     string         `gorm:"type:varchar(255)" json:"location,omitempty"`
	IsOnboarded  bool           `gorm:"default:false" json:"is_onboarded"`
	TokenVersion int            `gorm:"default:0" json:"-"` // Increment to invalidate all user tokens

	// Relationships
	College         *College            `gorm:"foreignKey:CollegeID" json:"college,omitempty"`
	Posts           []Post              `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	PostLikes       []PostLike          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	PostComments    []PostComment       `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	OrganizedEvents []Event             `gorm:"foreignKey:OrganizerID;constraint:OnDelete:CASCADE" json:"-"`
	Attendances     []EventAttendee     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Notifications   []UserNotification  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	TokenBlacklist  []JWTTokenBlacklist `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// PublicProfile is the author/organizer shape embedded in feed and event rows
type PublicProfile struct {
	ID           uint   `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	ProfileImage string `json:"profile_image_url,omitempty"`
	Role         string `json:"role"`
	Department   string `json:"department,omitempty"`
	Batch        string `json:"batch,omitempty"`
}

// ToPublicProfile strips private fields for embedding in other payloads
func (u *User) ToPublicProfile() PublicProfile {
	return PublicProfile{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		ProfileImage: u.ProfileImage,
		Role:         u.Role,
		Department:   u.Department,
		Batch:        u.Batch,
	}
}
