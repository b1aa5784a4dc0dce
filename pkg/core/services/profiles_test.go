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

type mockProfileSaveStore struct {
	profiles map[string]*db.PlayerProfile
	saved    []db.PlayerProfile
}

func (m *mockProfileSaveStore) GetProfile(ctx context.Context, id string) (*db.PlayerProfile, error) {
	return m.profiles[id], nil
}

func (m *mockProfileSaveStore) UpsertProfile(ctx context.Context, profile db.PlayerProfile) error {
	m.saved = append(m.saved, profile)
	return nil
}

func TestSaveProfile_New(t *testing.T) {
	store := &mockProfileSaveStore{}

	profile, err := SaveProfile(context.Background(), store, zap.NewNop(), "user-1", ProfileInput{
		Username:        "Alpha",
		DiscordUsername: "111111",
	})
	require.NoError(t, err)

	assert.Equal(t, "user-1", profile.ID)
	assert.Equal(t, "Alpha", profile.Username)
	assert.False(t, profile.IsAdmin)
	require.Len(t, store.saved, 1)
}

func TestSaveProfile_PreservesAdminAndRosterFields(t *testing.T) {
	readAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &mockProfileSaveStore{
		profiles: map[string]*db.PlayerProfile{
			"user-1": {
				ID: "user-1", Username: "OldName",
				RosterStatus:    db.RosterStatusMain,
				PlaystyleTags:   []string{"aggressive"},
				IsAdmin:         true,
				LastNotifReadAt: &readAt,
			},
		},
	}

	profile, err := SaveProfile(context.Background(), store, zap.NewNop(), "user-1", ProfileInput{
		Username: "NewName",
	})
	require.NoError(t, err)

	assert.Equal(t, "NewName", profile.Username)
	assert.Equal(t, db.RosterStatusMain, profile.RosterStatus)
	assert.Equal(t, []string{"aggressive"}, profile.PlaystyleTags)
	assert.True(t, profile.IsAdmin)
	assert.Equal(t, &readAt, profile.LastNotifReadAt)
}

func TestSaveProfile_Validation(t *testing.T) {
	_, err := SaveProfile(context.Background(), &mockProfileSaveStore{}, zap.NewNop(), "", ProfileInput{Username: "Alpha"})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = SaveProfile(context.Background(), &mockProfileSaveStore{}, zap.NewNop(), "user-1", ProfileInput{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSetRoster(t *testing.T) {
	store := &mockProfileSaveStore{
		profiles: map[string]*db.PlayerProfile{
			"user-1": {ID: "user-1", Username: "Alpha"},
		},
	}

	err := SetRoster(context.Background(), store, zap.NewNop(), "user-1", RosterInput{
		RosterStatus:  db.RosterStatusStandby,
		PlaystyleTags: []string{"flex"},
	})
	require.NoError(t, err)

	require.Len(t, store.saved, 1)
	assert.Equal(t, db.RosterStatusStandby, store.saved[0].RosterStatus)
	assert.Equal(t, []string{"flex"}, store.saved[0].PlaystyleTags)
	assert.Equal(t, "Alpha", store.saved[0].Username)
}

func TestSetRoster_UnknownTarget(t *testing.T) {
	err := SetRoster(context.Background(), &mockProfileSaveStore{}, zap.NewNop(), "ghost", RosterInput{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMarkNotificationsRead(t *testing.T) {
	store := &mockProfileSaveStore{
		profiles: map[string]*db.PlayerProfile{
			"user-1": {ID: "user-1", Username: "Alpha"},
		},
	}
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	err := MarkNotificationsRead(context.Background(), store, zap.NewNop(), "user-1", at)
	require.NoError(t, err)

	require.Len(t, store.saved, 1)
	require.NotNil(t, store.saved[0].LastNotifReadAt)
	assert.Equal(t, at, *store.saved[0].LastNotifReadAt)
}

func TestMarkNotificationsRead_NoProfile(t *testing.T) {
	err := MarkNotificationsRead(context.Background(), &mockProfileSaveStore{}, zap.NewNop(), "ghost", time.Now())
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
