package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/scrimsync/teamsync/pkg/db"
)

// ProfileSaveStore defines the database operations for profile edits
type ProfileSaveStore interface {
	GetProfile(ctx context.Context, id string) (*db.PlayerProfile, error)
	UpsertProfile(ctx context.Context, profile db.PlayerProfile) error
}

// ProfileInput carries the fields a player can edit on their own profile
type ProfileInput struct {
	Username        string
	FavoriteTank    string
	Role            string
	DiscordUsername string
	PhotoURL        string
}

// RosterInput carries the admin-only roster fields
type RosterInput struct {
	RosterStatus  string
	PlaystyleTags []string
}

// SaveProfile upserts the caller's own profile. Roster status, playstyle
// tags, the admin flag, and the notification read marker are preserved from
// the existing record; admins change roster fields through SetRoster.
func SaveProfile(
	ctx context.Context,
	store ProfileSaveStore,
	logger *zap.Logger,
	callerUID string,
	input ProfileInput,
) (*db.PlayerProfile, error) {
	if callerUID == "" {
		return nil, ErrUnauthenticated
	}
	if input.Username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidArgument)
	}

	existing, err := store.GetProfile(ctx, callerUID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	profile := db.PlayerProfile{
		ID:              callerUID,
		Username:        input.Username,
		FavoriteTank:    input.FavoriteTank,
		Role:            input.Role,
		DiscordUsername: input.DiscordUsername,
		PhotoURL:        input.PhotoURL,
	}
	if existing != nil {
		profile.RosterStatus = existing.RosterStatus
		profile.PlaystyleTags = existing.PlaystyleTags
		profile.LastNotifReadAt = existing.LastNotifReadAt
		profile.IsAdmin = existing.IsAdmin
	}

	if err := store.UpsertProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	logger.Info("Saved profile", zap.String("user_id", callerUID))

	return &profile, nil
}

// SetRoster updates the admin-managed roster fields on an existing profile
func SetRoster(
	ctx context.Context,
	store ProfileSaveStore,
	logger *zap.Logger,
	targetUID string,
	input RosterInput,
) error {
	if targetUID == "" {
		return fmt.Errorf("%w: target uid is required", ErrInvalidArgument)
	}

	existing, err := store.GetProfile(ctx, targetUID)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("%w: no profile for uid %s", ErrInvalidArgument, targetUID)
	}

	existing.RosterStatus = input.RosterStatus
	existing.PlaystyleTags = input.PlaystyleTags

	if err := store.UpsertProfile(ctx, *existing); err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	logger.Info("Updated roster fields",
		zap.String("user_id", targetUID),
		zap.String("roster_status", input.RosterStatus))

	return nil
}

// MarkNotificationsRead stamps the caller's feed read marker
func MarkNotificationsRead(
	ctx context.Context,
	store ProfileSaveStore,
	logger *zap.Logger,
	callerUID string,
	at time.Time,
) error {
	if callerUID == "" {
		return ErrUnauthenticated
	}

	existing, err := store.GetProfile(ctx, callerUID)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("%w: no profile for uid %s", ErrInvalidArgument, callerUID)
	}

	existing.LastNotifReadAt = &at

	if err := store.UpsertProfile(ctx, *existing); err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	logger.Debug("Marked notifications read", zap.String("user_id", callerUID))

	return nil
}
