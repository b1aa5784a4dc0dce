package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scrimsync/teamsync/pkg/db"
)

type mockAdminGrantStore struct {
	profiles map[string]*db.PlayerProfile
	granted  []string
}

func (m *mockAdminGrantStore) GetProfile(ctx context.Context, id string) (*db.PlayerProfile, error) {
	return m.profiles[id], nil
}

func (m *mockAdminGrantStore) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	m.granted = append(m.granted, id)
	return nil
}

type mockWebhookSettingsStore struct {
	setting *db.WebhookSetting
	saved   []db.WebhookSetting
}

func (m *mockWebhookSettingsStore) GetWebhookSetting(ctx context.Context) (*db.WebhookSetting, error) {
	return m.setting, nil
}

func (m *mockWebhookSettingsStore) PutWebhookSetting(ctx context.Context, setting db.WebhookSetting) error {
	m.saved = append(m.saved, setting)
	return nil
}

func TestGrantAdmin(t *testing.T) {
	store := &mockAdminGrantStore{
		profiles: map[string]*db.PlayerProfile{
			"target": {ID: "target", Username: "Alpha"},
		},
	}
	caller := Caller{UID: "admin-1", IsAdmin: true}

	message, err := GrantAdmin(context.Background(), store, zap.NewNop(), caller, "super-admin", "target")
	require.NoError(t, err)

	assert.Equal(t, "Admin granted to Alpha", message)
	assert.Equal(t, []string{"target"}, store.granted)
}

func TestGrantAdmin_SuperAdminCaller(t *testing.T) {
	store := &mockAdminGrantStore{
		profiles: map[string]*db.PlayerProfile{
			"target": {ID: "target", Username: "Alpha"},
		},
	}
	caller := Caller{UID: "super-admin", IsAdmin: false}

	_, err := GrantAdmin(context.Background(), store, zap.NewNop(), caller, "super-admin", "target")
	assert.NoError(t, err)
}

func TestGrantAdmin_Unauthenticated(t *testing.T) {
	_, err := GrantAdmin(context.Background(), &mockAdminGrantStore{}, zap.NewNop(), Caller{}, "super-admin", "target")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestGrantAdmin_PermissionDenied(t *testing.T) {
	caller := Caller{UID: "regular-user", IsAdmin: false}

	_, err := GrantAdmin(context.Background(), &mockAdminGrantStore{}, zap.NewNop(), caller, "super-admin", "target")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestGrantAdmin_MissingTarget(t *testing.T) {
	caller := Caller{UID: "admin-1", IsAdmin: true}

	_, err := GrantAdmin(context.Background(), &mockAdminGrantStore{}, zap.NewNop(), caller, "super-admin", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGrantAdmin_UnknownTarget(t *testing.T) {
	caller := Caller{UID: "admin-1", IsAdmin: true}
	store := &mockAdminGrantStore{profiles: map[string]*db.PlayerProfile{}}

	_, err := GrantAdmin(context.Background(), store, zap.NewNop(), caller, "super-admin", "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, store.granted)
}

func TestSetWebhookURL(t *testing.T) {
	store := &mockWebhookSettingsStore{}
	caller := Caller{UID: "admin-1", IsAdmin: true}

	message, err := SetWebhookURL(context.Background(), store, zap.NewNop(), caller, "https://discord.com/api/webhooks/123/token")
	require.NoError(t, err)

	assert.Equal(t, "Webhook URL saved", message)
	require.Len(t, store.saved, 1)
	assert.Equal(t, "discord", store.saved[0].ID)
	assert.Equal(t, "admin-1", store.saved[0].UpdatedBy)
}

func TestSetWebhookURL_InvalidURL(t *testing.T) {
	store := &mockWebhookSettingsStore{}
	caller := Caller{UID: "admin-1", IsAdmin: true}

	_, err := SetWebhookURL(context.Background(), store, zap.NewNop(), caller, "http://not-discord.example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, store.saved)
}

func TestTestWebhook(t *testing.T) {
	notifier := &mockNotifier{}

	message, err := TestWebhook(context.Background(), notifier, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "Test message sent", message)
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "Webhook Test", notifier.messages[0].Embeds[0].Title)
}

func TestResolveWebhookURL(t *testing.T) {
	store := &mockWebhookSettingsStore{
		setting: &db.WebhookSetting{ID: "discord", URL: "https://discord.com/api/webhooks/persisted/token"},
	}

	url, err := ResolveWebhookURL(context.Background(), store, "")
	require.NoError(t, err)
	assert.Equal(t, "https://discord.com/api/webhooks/persisted/token", url)

	// Environment override wins over the persisted setting
	url, err = ResolveWebhookURL(context.Background(), store, "https://discord.com/api/webhooks/env/token")
	require.NoError(t, err)
	assert.Equal(t, "https://discord.com/api/webhooks/env/token", url)
}

func TestResolveWebhookURL_Unconfigured(t *testing.T) {
	_, err := ResolveWebhookURL(context.Background(), &mockWebhookSettingsStore{}, "")
	assert.Error(t, err)
}
