package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/scrimsync/teamsync/pkg/clients/discordclient"
	"github.com/scrimsync/teamsync/pkg/db"
)

// Error kinds for the callable admin operations. Permission failures are
// never downgraded to softer kinds.
var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrPermissionDenied = errors.New("permission denied")
)

// Caller identifies the authenticated user invoking an admin operation
type Caller struct {
	UID     string
	IsAdmin bool
}

// AdminGrantStore defines the database operations needed to grant admin
type AdminGrantStore interface {
	GetProfile(ctx context.Context, id string) (*db.PlayerProfile, error)
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
}

// WebhookSettingsStore defines the database operations for webhook settings
type WebhookSettingsStore interface {
	GetWebhookSetting(ctx context.Context) (*db.WebhookSetting, error)
	PutWebhookSetting(ctx context.Context, setting db.WebhookSetting) error
}

// GrantAdmin grants the admin privilege flag to the target identity. The
// caller must be authenticated and either already an admin or the configured
// super-admin identity.
func GrantAdmin(
	ctx context.Context,
	store AdminGrantStore,
	logger *zap.Logger,
	caller Caller,
	superAdminUID string,
	targetUID string,
) (string, error) {
	if caller.UID == "" {
		return "", ErrUnauthenticated
	}
	if targetUID == "" {
		return "", fmt.Errorf("%w: target uid is required", ErrInvalidArgument)
	}
	if !caller.IsAdmin && caller.UID != superAdminUID {
		return "", ErrPermissionDenied
	}

	target, err := store.GetProfile(ctx, targetUID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch target profile: %w", err)
	}
	if target == nil {
		return "", fmt.Errorf("%w: no profile for uid %s", ErrInvalidArgument, targetUID)
	}

	if err := store.SetAdmin(ctx, targetUID, true); err != nil {
		return "", fmt.Errorf("failed to set admin flag: %w", err)
	}

	logger.Info("Granted admin",
		zap.String("caller_uid", caller.UID),
		zap.String("target_uid", targetUID))

	return fmt.Sprintf("Admin granted to %s", target.Username), nil
}

// SetWebhookURL validates and persists the outbound webhook URL
func SetWebhookURL(
	ctx context.Context,
	store WebhookSettingsStore,
	logger *zap.Logger,
	caller Caller,
	url string,
) (string, error) {
	if caller.UID == "" {
		return "", ErrUnauthenticated
	}
	if err := discordclient.ValidateWebhookURL(url); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	setting := db.WebhookSetting{
		ID:        "discord",
		URL:       url,
		UpdatedBy: caller.UID,
		UpdatedAt: time.Now(),
	}
	if err := store.PutWebhookSetting(ctx, setting); err != nil {
		return "", fmt.Errorf("failed to persist webhook setting: %w", err)
	}

	logger.Info("Webhook URL updated", zap.String("caller_uid", caller.UID))

	return "Webhook URL saved", nil
}

// TestWebhook sends the canned test embed through the notifier
func TestWebhook(ctx context.Context, notifier Notifier, logger *zap.Logger) (string, error) {
	if err := notifier.Post(ctx, discordclient.TestMessage(time.Now())); err != nil {
		return "", fmt.Errorf("failed to send test message: %w", err)
	}

	logger.Info("Webhook test message sent")

	return "Test message sent", nil
}

// ResolveWebhookURL picks the effective webhook URL: the environment
// override wins, otherwise the persisted setting.
func ResolveWebhookURL(ctx context.Context, store WebhookSettingsStore, envOverride string) (string, error) {
	if envOverride != "" {
		return envOverride, nil
	}

	setting, err := store.GetWebhookSetting(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch webhook setting: %w", err)
	}
	if setting == nil || setting.URL == "" {
		return "", fmt.Errorf("no webhook URL configured")
	}

	return setting.URL, nil
}
