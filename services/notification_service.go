package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AnuragKannojiya/alumni-connect-api/model"
	"gorm.io/gorm"
)

// NotificationService owns user notifications and the fan-out helpers the
// feed and event flows call. Fan-out failures are the caller's to log, not
// to surface: a like that lands but fails to notify is still a like.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new notification service
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Create stores a notification for a user
func (s *NotificationService) Create(ctx context.Context, notification *model.UserNotification) error {
	if err := s.db.WithContext(ctx).Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// List returns a user's notifications, newest first
func (s *NotificationService) List(ctx context.Context, userID uint, limit, offset int) ([]model.NotificationResponse, int64, error) {
	base := s.db.WithContext(ctx).Model(&model.UserNotification{}).Where("user_id = ?", userID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	var notifications []model.UserNotification
	if err := base.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	result := make([]model.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		result = append(result, notifications[i].ToResponse())
	}
	return result, total, nil
}

// UnreadCount returns how many unread notifications a user has
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserNotification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkAsRead marks one notification read. Scoped to the owner, so another
// user's notification id yields ErrRecordNotFound.
func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID, userID uint) error {
	result := s.db.WithContext(ctx).Model(&model.UserNotification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkAllRead marks all of a user's notifications read and returns how many changed
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	result := s.db.WithContext(ctx).Model(&model.UserNotification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// NotifyPostLiked tells a post's author someone liked their post. Liking
// your own post stays silent.
func (s *NotificationService) NotifyPostLiked(ctx context.Context, post *model.Post, actor *model.User) error {
	if post.AuthorID == actor.ID {
		return nil
	}
	metadata, err := json.Marshal(model.NotificationMetadata{
		PostID:    post.ID,
		ActorID:   actor.ID,
		ActorName: fmt.Sprintf("%s %s", actor.FirstName, actor.LastName),
	})
	if err != nil {
		return err
	}
	return s.Create(ctx, &model.UserNotification{
		UserID:   post.AuthorID,
		Type:     model.NotificationTypeInfo,
		Category: model.NotificationCategoryPostLike,
		Title:    "New like on your post",
		Message:  fmt.Sprintf("%s %s liked your post", actor.FirstName, actor.LastName),
		Metadata: metadata,
	})
}

// NotifyPostComment tells a post's author someone commented. Commenting on
// your own post stays silent.
func (s *NotificationService) NotifyPostComment(ctx context.Context, post *model.Post, actor *model.User) error {
	if post.AuthorID == actor.ID {
		return nil
	}
	metadata, err := json.Marshal(model.NotificationMetadata{
		PostID:    post.ID,
		ActorID:   actor.ID,
		ActorName: fmt.Sprintf("%s %s", actor.FirstName, actor.LastName),
	})
	if err != nil {
		return err
	}
	return s.Create(ctx, &model.UserNotification{
		UserID:   post.AuthorID,
		Type:     model.NotificationTypeInfo,
		Category: model.NotificationCategoryPostComment,
		Title:    "New comment on your post",
		Message:  fmt.Sprintf("%s %s commented on your post", actor.FirstName, actor.LastName),
		Metadata: metadata,
	})
}

// NotifyEventRSVP tells an event's organizer someone marked themselves going.
// Only "going" is worth an interrupt, and organizers don't get notified
// about their own RSVP.
func (s *NotificationService) NotifyEventRSVP(ctx context.Context, event *model.Event, actor *model.User, status string) error {
	if event.OrganizerID == actor.ID || status != string(model.AttendanceGoing) {
		return nil
	}
	metadata, err := json.Marshal(model.NotificationMetadata{
		EventID:   event.ID,
		ActorID:   actor.ID,
		ActorName: fmt.Sprintf("%s %s", actor.FirstName, actor.LastName),
	})
	if err != nil {
		return err
	}
	return s.Create(ctx, &model.UserNotification{
		UserID:   event.OrganizerID,
		Type:     model.NotificationTypeSuccess,
		Category: model.NotificationCategoryEventRSVP,
		Title:    "New attendee for your event",
		Message:  fmt.Sprintf("%s %s is going to %s", actor.FirstName, actor.LastName, event.Title),
		Metadata: metadata,
	})
}

// CreateEventReminders notifies "going" attendees of events starting within
// the given window. The cron schedule and the window line up so each event
// falls into exactly one run; no dedup table needed.
func (s *NotificationService) CreateEventReminders(ctx context.Context, windowStart, windowEnd time.Time) (int, error) {
	var events []model.Event
	if err := s.db.WithContext(ctx).
		Where("start_date >= ? AND start_date < ?", windowStart, windowEnd).
		Find(&events).Error; err != nil {
		return 0, fmt.Errorf("failed to fetch upcoming events: %w", err)
	}

	created := 0
	for i := range events {
		event := &events[i]

		var attendees []model.EventAttendee
		if err := s.db.WithContext(ctx).
			Where("event_id = ? AND status = ?", event.ID, model.AttendanceGoing).
			Find(&attendees).Error; err != nil {
			return created, fmt.Errorf("failed to fetch attendees for event %d: %w", event.ID, err)
		}

		metadata, err := json.Marshal(model.NotificationMetadata{
			EventID:     event.ID,
			EventStarts: event.StartDate.Format(time.RFC3339),
		})
		if err != nil {
			return created, err
		}

		for _, attendee := range attendees {
			notification := model.UserNotification{
				UserID:   attendee.UserID,
				Type:     model.NotificationTypeInfo,
				Category: model.NotificationCategoryEventReminder,
				Title:    "Event starting soon",
				Message:  fmt.Sprintf("%s starts at %s", event.Title, event.StartDate.Format("Jan 2, 3:04 PM")),
				Metadata: metadata,
			}
			if err := s.Create(ctx, &notification); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

// PruneOldNotifications permanently deletes read notifications older than
// the cutoff. Returns how many rows were removed.
func (s *NotificationService) PruneOldNotifications(ctx context.Context, olderThan time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Unscoped().
		Where("read = ? AND created_at < ?", true, olderThan).
		Delete(&model.UserNotification{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune notifications: %w", result.Error)
	}
	return result.RowsAffected, nil
}
