package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scrimsync/teamsync/pkg/db"
)

type mockNotificationStore struct {
	inserted []db.AppNotification
}

func (m *mockNotificationStore) GetNotifications(ctx context.Context, limit int) ([]db.AppNotification, error) {
	return m.inserted, nil
}

func (m *mockNotificationStore) InsertNotification(ctx context.Context, notification db.AppNotification) error {
	m.inserted = append(m.inserted, notification)
	return nil
}

func TestRecordNotification(t *testing.T) {
	store := &mockNotificationStore{}

	err := RecordNotification(context.Background(), store, zap.NewNop(), "New event scheduled", "calendar", "admin-1")
	require.NoError(t, err)

	require.Len(t, store.inserted, 1)
	assert.NotEmpty(t, store.inserted[0].ID)
	assert.Equal(t, "New event scheduled", store.inserted[0].Message)
	assert.Equal(t, "admin-1", store.inserted[0].CreatedBy)
}

func TestRecordNotification_MissingMessage(t *testing.T) {
	err := RecordNotification(context.Background(), &mockNotificationStore{}, zap.NewNop(), "", "calendar", "admin-1")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUnreadCount(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	notifications := []db.AppNotification{
		{CreatedAt: base.Add(-time.Hour)},
		{CreatedAt: base.Add(time.Hour)},
		{CreatedAt: base.Add(2 * time.Hour)},
	}

	assert.Equal(t, 3, UnreadCount(notifications, nil))
	assert.Equal(t, 2, UnreadCount(notifications, &base))

	late := base.Add(3 * time.Hour)
	assert.Equal(t, 0, UnreadCount(notifications, &late))
}
