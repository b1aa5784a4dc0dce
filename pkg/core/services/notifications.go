package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scrimsync/teamsync/pkg/db"
)

// RecordNotification appends an entry to the in-app notification feed.
// Entries are never mutated after creation.
func RecordNotification(
	ctx context.Context,
	store db.NotificationStore,
	logger *zap.Logger,
	message, icon, createdBy string,
) error {
	if message == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidArgument)
	}

	notification := db.AppNotification{
		ID:        uuid.NewString(),
		Message:   message,
		Icon:      icon,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	}
	if err := store.InsertNotification(ctx, notification); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	logger.Debug("Recorded notification", zap.String("message", message))

	return nil
}

// UnreadCount counts feed entries created after the profile's last read
// timestamp. A profile that has never read the feed counts everything.
func UnreadCount(notifications []db.AppNotification, lastReadAt *time.Time) int {
	if lastReadAt == nil {
		return len(notifications)
	}

	unread := 0
	for _, n := range notifications {
		if n.CreatedAt.After(*lastReadAt) {
			unread++
		}
	}
	return unread
}
