package model

import (
	"time"

	"gorm.io/gorm"
)

// AttendanceStatus is a user's RSVP state for an event
type AttendanceStatus string

const (
	AttendanceGoing    AttendanceStatus = "going"
	AttendanceMaybe    AttendanceStatus = "maybe"
	AttendanceNotGoing AttendanceStatus = "not_going"
)

// IsValidAttendanceStatus reports whether the given status is one of the known values
func IsValidAttendanceStatus(status string) bool {
	switch AttendanceStatus(status) {
	case AttendanceGoing, AttendanceMaybe, AttendanceNotGoing:
		return true
	}
	return false
}

// Event represents an event organized within a college community
type Event struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description,omitempty"`
	StartDate    time.Time      `gorm:"not null;index" json:"start_date"`
	EndDate      *time.Time     `json:"end_date,omitempty"`
	Location     string         `gorm:"type:varchar(255)" json:"location,omitempty"`
	Category     string         `gorm:"type:varchar(50);not null;default:'general'" json:"category"`
	IsVirtual    bool           `gorm:"default:false" json:"is_virtual"`
	MeetingLink  string         `gorm:"type:varchar(500)" json:"meeting_link,omitempty"`
	MaxAttendees *int           `json:"max_attendees,omitempty"` // advertised cap, not enforced
	OrganizerID  uint           `gorm:"index;not null" json:"organizer_id"`
	CollegeID    uint           `gorm:"index;not null" json:"college_id"`

	// Relationships
	Organizer User            `gorm:"foreignKey:OrganizerID" json:"-"`
	College   College         `gorm:"foreignKey:CollegeID" json:"-"`
	Attendees []EventAttendee `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
}

// EventAttendee records a user's latest RSVP for an event. The composite
// unique index makes the attendance write an upsert, not a log.
type EventAttendee struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	EventID   uint             `gorm:"not null;uniqueIndex:idx_event_attendees_event_user" json:"event_id"`
	UserID    uint             `gorm:"not null;uniqueIndex:idx_event_attendees_event_user" json:"user_id"`
	Status    AttendanceStatus `gorm:"type:varchar(20);not null;default:'going'" json:"status"`

	Event Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// AnnotatedEvent is an event annotated with organizer profile, attendee
// count, and (when a viewer is known) the viewer's RSVP status.
type AnnotatedEvent struct {
	Event
	Organizer            PublicProfile `json:"organizer"`
	AttendeesCount       int64         `json:"attendees_count"`
	UserAttendanceStatus string        `json:"user_attendance_status,omitempty"`
}

// AttendeeWithUser is an attendee row annotated with the user's profile
type AttendeeWithUser struct {
	ID        uint             `json:"id"`
	Status    AttendanceStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	User      PublicProfile    `json:"user"`
}
