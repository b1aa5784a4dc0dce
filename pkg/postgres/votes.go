package postgres

import (
	"context"
	"fmt"

	"github.com/scrimsync/teamsync/pkg/db"
)

// GetVotes retrieves all slot-vote records in insertion order
func (d *DB) GetVotes(ctx context.Context) ([]db.Vote, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, user_id, timeslot, created_at
		FROM vote
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	var votes []db.Vote
	for rows.Next() {
		var vote db.Vote
		if err := rows.Scan(&vote.ID, &vote.UserID, &vote.Timeslot, &vote.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, vote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}

	return votes, nil
}

// ToggleVote atomically inserts the vote if its deterministic id is absent,
// or deletes it if present. Returns true when the vote exists after the call.
func (d *DB) ToggleVote(ctx context.Context, vote db.Vote) (bool, error) {
	tag, err := d.pool.Exec(ctx, `
		INSERT INTO vote (id, user_id, timeslot, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`, vote.ID, vote.UserID, vote.Timeslot, vote.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert vote: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}

	if _, err := d.pool.Exec(ctx, `DELETE FROM vote WHERE id = $1`, vote.ID); err != nil {
		return false, fmt.Errorf("failed to delete vote: %w", err)
	}
	return false, nil
}

// DeleteVotesByTimeslots deletes votes for the given timeslot keys in
// sequential batches. Each batch is atomic; the whole operation is not, and
// is idempotent to re-run.
func (d *DB) DeleteVotesByTimeslots(ctx context.Context, timeslots []string, batchSize int) (int, error) {
	deleted := 0
	for _, batch := range chunk(timeslots, batchSize) {
		tag, err := d.pool.Exec(ctx, `DELETE FROM vote WHERE timeslot = ANY($1)`, batch)
		if err != nil {
			return deleted, fmt.Errorf("failed to delete vote batch: %w", err)
		}
		deleted += int(tag.RowsAffected())
	}
	return deleted, nil
}

// DeleteVotesByUser deletes all votes cast by a user
func (d *DB) DeleteVotesByUser(ctx context.Context, userID string) error {
	if _, err := d.pool.Exec(ctx, `DELETE FROM vote WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete votes for user: %w", err)
	}
	return nil
}
