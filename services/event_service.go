package services

import (
	"context"
	"fmt"
	"time"

	"github.com/AnuragKannojiya/alumni-connect-api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventService owns college events and attendance
type EventService struct {
	db *gorm.DB
}

// NewEventService creates a new event service
func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// EventListOptions are the knobs for the college event listing
type EventListOptions struct {
	CollegeID uint
	Limit     int
	Offset    int
	ViewerID  uint // 0 means anonymous: no per-viewer attendance status
}

type eventRow struct {
	model.Event
	AttendeesCount int64
}

// GetEventsByCollege returns a college's events with organizer profiles and
// attendee counts, soonest start date last (newest-created pages first is
// what the clients expect, so ordering is by start_date descending).
func (s *EventService) GetEventsByCollege(ctx context.Context, opts EventListOptions) ([]model.AnnotatedEvent, int64, error) {
	base := s.db.WithContext(ctx).Model(&model.Event{}).Where("events.college_id = ?", opts.CollegeID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	var rows []eventRow
	err := base.
		Select("events.*, COUNT(event_attendees.id) AS attendees_count").
		Joins("LEFT JOIN event_attendees ON event_attendees.event_id = events.id").
		Group("events.id").
		Order("events.start_date DESC").
		Limit(opts.Limit).
		Offset(opts.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch events: %w", err)
	}

	if len(rows) == 0 {
		return []model.AnnotatedEvent{}, total, nil
	}

	eventIDs := make([]uint, 0, len(rows))
	organizerIDs := make([]uint, 0, len(rows))
	for _, row := range rows {
		eventIDs = append(eventIDs, row.ID)
		organizerIDs = append(organizerIDs, row.OrganizerID)
	}

	organizers, err := s.loadProfiles(ctx, organizerIDs)
	if err != nil {
		return nil, 0, err
	}

	statusByEvent := map[uint]model.AttendanceStatus{}
	if opts.ViewerID != 0 {
		var attendance []model.EventAttendee
		if err := s.db.WithContext(ctx).
			Where("user_id = ? AND event_id IN ?", opts.ViewerID, eventIDs).
			Find(&attendance).Error; err != nil {
			return nil, 0, fmt.Errorf("failed to fetch viewer attendance: %w", err)
		}
		for _, a := range attendance {
			statusByEvent[a.EventID] = a.Status
		}
	}

	events := make([]model.AnnotatedEvent, 0, len(rows))
	for _, row := range rows {
		event := model.AnnotatedEvent{
			Event:          row.Event,
			Organizer:      organizers[row.OrganizerID],
			AttendeesCount: row.AttendeesCount,
		}
		if status, ok := statusByEvent[row.ID]; ok {
			event.UserAttendanceStatus = string(status)
		}
		events = append(events, event)
	}

	return events, total, nil
}

// GetEvent loads a single event with its organizer, attendee count and,
// when a viewer is known, the viewer's attendance status.
func (s *EventService) GetEvent(ctx context.Context, eventID, viewerID uint) (*model.AnnotatedEvent, error) {
	var row eventRow
	err := s.db.WithContext(ctx).Model(&model.Event{}).
		Select("events.*, COUNT(event_attendees.id) AS attendees_count").
		Joins("LEFT JOIN event_attendees ON event_attendees.event_id = events.id").
		Where("events.id = ?", eventID).
		Group("events.id").
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	organizers, err := s.loadProfiles(ctx, []uint{row.OrganizerID})
	if err != nil {
		return nil, err
	}

	event := model.AnnotatedEvent{
		Event:          row.Event,
		Organizer:      organizers[row.OrganizerID],
		AttendeesCount: row.AttendeesCount,
	}

	if viewerID != 0 {
		var attendee model.EventAttendee
		err := s.db.WithContext(ctx).
			Where("event_id = ? AND user_id = ?", eventID, viewerID).
			First(&attendee).Error
		if err == nil {
			event.UserAttendanceStatus = string(attendee.Status)
		} else if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("failed to fetch viewer attendance: %w", err)
		}
	}

	return &event, nil
}

// CreateEvent creates a new event organized by the given user
func (s *EventService) CreateEvent(ctx context.Context, event *model.Event) error {
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// EventUpdates carries the organizer-editable fields of an event
type EventUpdates struct {
	Title        *string
	Description  *string
	Category     *string
	StartDate    *time.Time
	EndDate      *time.Time
	Location     *string
	IsVirtual    *bool
	MeetingLink  *string
	MaxAttendees *int
}

// UpdateEvent applies updates to an event organized by userID. Non-organizers
// get the same ErrRecordNotFound as a nonexistent event.
func (s *EventService) UpdateEvent(ctx context.Context, eventID, userID uint, updates EventUpdates) (*model.Event, error) {
	values := map[string]interface{}{}
	if updates.Title != nil {
		values["title"] = *updates.Title
	}
	if updates.Description != nil {
		values["description"] = *updates.Description
	}
	if updates.Category != nil {
		values["category"] = *updates.Category
	}
	if updates.StartDate != nil {
		values["start_date"] = *updates.StartDate
	}
	if updates.EndDate != nil {
		values["end_date"] = *updates.EndDate
	}
	if updates.Location != nil {
		values["location"] = *updates.Location
	}
	if updates.IsVirtual != nil {
		values["is_virtual"] = *updates.IsVirtual
	}
	if updates.MeetingLink != nil {
		values["meeting_link"] = *updates.MeetingLink
	}
	if updates.MaxAttendees != nil {
		values["max_attendees"] = *updates.MaxAttendees
	}

	if len(values) > 0 {
		result := s.db.WithContext(ctx).Model(&model.Event{}).
			Where("id = ? AND organizer_id = ?", eventID, userID).
			Updates(values)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update event: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}

	var event model.Event
	if err := s.db.WithContext(ctx).Where("id = ? AND organizer_id = ?", eventID, userID).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// DeleteEvent deletes an event organized by userID along with its attendance rows
func (s *EventService) DeleteEvent(ctx context.Context, eventID, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND organizer_id = ?", eventID, userID).Delete(&model.Event{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete event: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("event_id = ?", eventID).Delete(&model.EventAttendee{}).Error; err != nil {
			return fmt.Errorf("failed to delete event attendance: %w", err)
		}
		return nil
	})
}

// SetAttendance records or updates a user's RSVP for an event. The upsert on
// (event_id, user_id) keeps one row per user per event no matter how often
// the status changes. MaxAttendees is advertised, not enforced.
func (s *EventService) SetAttendance(ctx context.Context, eventID, userID uint, status string) (*model.EventAttendee, error) {
	var eventCount int64
	if err := s.db.WithContext(ctx).Model(&model.Event{}).Where("id = ?", eventID).Count(&eventCount).Error; err != nil {
		return nil, err
	}
	if eventCount == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	attendee := model.EventAttendee{
		EventID: eventID,
		UserID:  userID,
		Status:  model.AttendanceStatus(status),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"status": status, "updated_at": time.Now()}),
	}).Create(&attendee).Error
	if err != nil {
		return nil, fmt.Errorf("failed to set attendance: %w", err)
	}
	return &attendee, nil
}

// GetAttendees returns everyone with an RSVP on the event, newest first
func (s *EventService) GetAttendees(ctx context.Context, eventID uint) ([]model.AttendeeWithUser, error) {
	var eventCount int64
	if err := s.db.WithContext(ctx).Model(&model.Event{}).Where("id = ?", eventID).Count(&eventCount).Error; err != nil {
		return nil, err
	}
	if eventCount == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var attendees []model.EventAttendee
	if err := s.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&attendees).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch attendees: %w", err)
	}

	result := make([]model.AttendeeWithUser, 0, len(attendees))
	for _, a := range attendees {
		result = append(result, model.AttendeeWithUser{
			ID:        a.ID,
			Status:    a.Status,
			CreatedAt: a.CreatedAt,
			User:      a.User.ToPublicProfile(),
		})
	}
	return result, nil
}

func (s *EventService) loadProfiles(ctx context.Context, userIDs []uint) (map[uint]model.PublicProfile, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch organizers: %w", err)
	}
	profiles := make(map[uint]model.PublicProfile, len(users))
	for i := range users {
		profiles[users[i].ID] = users[i].ToPublicProfile()
	}
	return profiles, nil
}
