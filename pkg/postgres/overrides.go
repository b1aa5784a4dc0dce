package postgres

import (
	"context"
	"fmt"

	"github.com/scrimsync/teamsync/pkg/db"
)

// GetOverrides retrieves all availability overrides
func (d *DB) GetOverrides(ctx context.Context) ([]db.AvailabilityOverride, error) {
	return d.queryOverrides(ctx, `
		SELECT id, event_id, user_id, status FROM availability_override
	`)
}

// GetOverridesByEvent retrieves the overrides for one event
func (d *DB) GetOverridesByEvent(ctx context.Context, eventID string) ([]db.AvailabilityOverride, error) {
	return d.queryOverrides(ctx, `
		SELECT id, event_id, user_id, status
		FROM availability_override
		WHERE event_id = $1
	`, eventID)
}

func (d *DB) queryOverrides(ctx context.Context, query string, args ...any) ([]db.AvailabilityOverride, error) {
	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query overrides: %w", err)
	}
	defer rows.Close()

	var overrides []db.AvailabilityOverride
	for rows.Next() {
		var override db.AvailabilityOverride
		if err := rows.Scan(&override.ID, &override.EventID, &override.UserID, &override.Status); err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		overrides = append(overrides, override)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating overrides: %w", err)
	}

	return overrides, nil
}

// PutOverride inserts an override, replacing any existing record for the
// same (event, user) pair
func (d *DB) PutOverride(ctx context.Context, override db.AvailabilityOverride) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO availability_override (id, event_id, user_id, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status
	`, override.ID, override.EventID, override.UserID, override.Status)
	if err != nil {
		return fmt.Errorf("failed to put override: %w", err)
	}
	return nil
}

// DeleteOverride removes an override by id
func (d *DB) DeleteOverride(ctx context.Context, id string) error {
	if _, err := d.pool.Exec(ctx, `DELETE FROM availability_override WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete override: %w", err)
	}
	return nil
}

// DeleteOverridesByUser removes every override for a user
func (d *DB) DeleteOverridesByUser(ctx context.Context, userID string) error {
	if _, err := d.pool.Exec(ctx, `DELETE FROM availability_override WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete overrides for user: %w", err)
	}
	return nil
}

// GetEventVotes retrieves the RSVPs for one event in insertion order
func (d *DB) GetEventVotes(ctx context.Context, eventID string) ([]db.EventVote, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, event_id, user_id
		FROM event_vote
		WHERE event_id = $1
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query event votes: %w", err)
	}
	defer rows.Close()

	var votes []db.EventVote
	for rows.Next() {
		var vote db.EventVote
		if err := rows.Scan(&vote.ID, &vote.EventID, &vote.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan event vote: %w", err)
		}
		votes = append(votes, vote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event votes: %w", err)
	}

	return votes, nil
}

// ToggleEventVote atomically inserts the RSVP if absent or deletes it if
// present. Returns true when the RSVP exists after the call.
func (d *DB) ToggleEventVote(ctx context.Context, vote db.EventVote) (bool, error) {
	tag, err := d.pool.Exec(ctx, `
		INSERT INTO event_vote (id, event_id, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`, vote.ID, vote.EventID, vote.UserID)
	if err != nil {
		return false, fmt.Errorf("failed to insert event vote: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}

	if _, err := d.pool.Exec(ctx, `DELETE FROM event_vote WHERE id = $1`, vote.ID); err != nil {
		return false, fmt.Errorf("failed to delete event vote: %w", err)
	}
	return false, nil
}

// DeleteEventVotesByUser removes every RSVP for a user
func (d *DB) DeleteEventVotesByUser(ctx context.Context, userID string) error {
	if _, err := d.pool.Exec(ctx, `DELETE FROM event_vote WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete event votes for user: %w", err)
	}
	return nil
}
