package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/AnuragKannojiya/alumni-connect-api/services"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/auth"
)

// SendEventReminders notifies "going" attendees of events starting within the
// next 24 hours. Runs hourly; each run covers the one-hour slice 23-24 hours
// out, so every event is reminded exactly once.
func (m *CronManager) SendEventReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	jobName := "event_reminders"

	windowStart := time.Now().Add(23 * time.Hour)
	windowEnd := time.Now().Add(24 * time.Hour)

	notificationService := services.NewNotificationService(m.db)
	created, err := notificationService.CreateEventReminders(ctx, windowStart, windowEnd)
	if err != nil {
		m.logJobError(jobName, err)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Created %d event reminders", created))
}

// CleanupExpiredTokens removes blacklist entries whose tokens have expired.
// An expired token fails validation on its own, so the row is pure bookkeeping.
func (m *CronManager) CleanupExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	jobName := "cleanup_expired_tokens"

	blacklistService := auth.NewBlacklistService(m.db)
	removed, err := blacklistService.CleanupExpiredTokens(ctx)
	if err != nil {
		m.logJobError(jobName, err)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Removed %d expired blacklist entries", removed))
}

// PruneOldNotifications permanently deletes read notifications older than 30 days
func (m *CronManager) PruneOldNotifications() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	jobName := "prune_old_notifications"

	notificationService := services.NewNotificationService(m.db)
	pruned, err := notificationService.PruneOldNotifications(ctx, time.Now().AddDate(0, 0, -30))
	if err != nil {
		m.logJobError(jobName, err)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Pruned %d notifications", pruned))
}
