package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/scrimsync/teamsync/pkg/db"
)

// GetProfiles retrieves all player profiles
func (d *DB) GetProfiles(ctx context.Context) ([]db.PlayerProfile, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, username, favorite_tank, role, roster_status, playstyle_tags,
		       discord_username, photo_url, last_notif_read_at, is_admin
		FROM player_profile
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []db.PlayerProfile
	for rows.Next() {
		var profile db.PlayerProfile
		if err := rows.Scan(
			&profile.ID, &profile.Username, &profile.FavoriteTank, &profile.Role,
			&profile.RosterStatus, &profile.PlaystyleTags, &profile.DiscordUsername,
			&profile.PhotoURL, &profile.LastNotifReadAt, &profile.IsAdmin,
		); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}

	return profiles, nil
}

// GetProfile retrieves one profile by id, or nil when absent
func (d *DB) GetProfile(ctx context.Context, id string) (*db.PlayerProfile, error) {
	var profile db.PlayerProfile
	err := d.pool.QueryRow(ctx, `
		SELECT id, username, favorite_tank, role, roster_status, playstyle_tags,
		       discord_username, photo_url, last_notif_read_at, is_admin
		FROM player_profile
		WHERE id = $1
	`, id).Scan(
		&profile.ID, &profile.Username, &profile.FavoriteTank, &profile.Role,
		&profile.RosterStatus, &profile.PlaystyleTags, &profile.DiscordUsername,
		&profile.PhotoURL, &profile.LastNotifReadAt, &profile.IsAdmin,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	return &profile, nil
}

// UpsertProfile inserts or replaces a profile record
func (d *DB) UpsertProfile(ctx context.Context, profile db.PlayerProfile) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO player_profile (
			id, username, favorite_tank, role, roster_status, playstyle_tags,
			discord_username, photo_url, last_notif_read_at, is_admin
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			favorite_tank = EXCLUDED.favorite_tank,
			role = EXCLUDED.role,
			roster_status = EXCLUDED.roster_status,
			playstyle_tags = EXCLUDED.playstyle_tags,
			discord_username = EXCLUDED.discord_username,
			photo_url = EXCLUDED.photo_url,
			last_notif_read_at = EXCLUDED.last_notif_read_at
	`, profile.ID, profile.Username, profile.FavoriteTank, profile.Role,
		profile.RosterStatus, profile.PlaystyleTags, profile.DiscordUsername,
		profile.PhotoURL, profile.LastNotifReadAt, profile.IsAdmin)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// SetAdmin updates the admin privilege flag on a profile
func (d *DB) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE player_profile SET is_admin = $2 WHERE id = $1
	`, id, isAdmin)
	if err != nil {
		return fmt.Errorf("failed to set admin flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no profile with id %s", id)
	}
	return nil
}

// DeleteProfile removes a profile record
func (d *DB) DeleteProfile(ctx context.Context, id string) error {
	if _, err := d.pool.Exec(ctx, `DELETE FROM player_profile WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}
