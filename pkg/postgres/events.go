package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/scrimsync/teamsync/pkg/core/schedule"
	"github.com/scrimsync/teamsync/pkg/db"
)

// GetEvents retrieves all schedule events ordered by date then time label
func (d *DB) GetEvents(ctx context.Context) ([]db.ScheduleEvent, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, type, date, time_label, status, description, image_url,
		       discord_role_id, creator_id, reminded_at
		FROM schedule_event
		ORDER BY date, time_label
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []db.ScheduleEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

// GetEvent retrieves one event by id, or nil when absent
func (d *DB) GetEvent(ctx context.Context, id string) (*db.ScheduleEvent, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, type, date, time_label, status, description, image_url,
		       discord_role_id, creator_id, reminded_at
		FROM schedule_event
		WHERE id = $1
	`, id)

	event, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return event, nil
}

// InsertEvent inserts a new schedule event
func (d *DB) InsertEvent(ctx context.Context, event db.ScheduleEvent) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO schedule_event (
			id, type, date, time_label, status, description, image_url,
			discord_role_id, creator_id, reminded_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, event.ID, event.Type, event.Date, event.TimeLabel, event.Status,
		event.Description, event.ImageURL, event.DiscordRoleID, event.CreatorID,
		event.RemindedAt)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// SetEventStatus updates the Active/Cancelled status of an event
func (d *DB) SetEventStatus(ctx context.Context, id, status string) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE schedule_event SET status = $2 WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update event status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no event with id %s", id)
	}
	return nil
}

// MarkReminded records the sweep's at-most-once reminder marker
func (d *DB) MarkReminded(ctx context.Context, id string, at time.Time) error {
	if _, err := d.pool.Exec(ctx, `
		UPDATE schedule_event SET reminded_at = $2 WHERE id = $1 AND reminded_at IS NULL
	`, id, at); err != nil {
		return fmt.Errorf("failed to mark event reminded: %w", err)
	}
	return nil
}

// DeleteEvents deletes events by id in sequential batches. Overrides and
// RSVPs for deleted events are removed by foreign-key cascade.
func (d *DB) DeleteEvents(ctx context.Context, ids []string, batchSize int) (int, error) {
	deleted := 0
	for _, batch := range chunk(ids, batchSize) {
		tag, err := d.pool.Exec(ctx, `DELETE FROM schedule_event WHERE id = ANY($1)`, batch)
		if err != nil {
			return deleted, fmt.Errorf("failed to delete event batch: %w", err)
		}
		deleted += int(tag.RowsAffected())
	}
	return deleted, nil
}

// scanEvent scans an event row, converting the DATE column back to the
// string form the rest of the system uses
func scanEvent(row pgx.Row) (*db.ScheduleEvent, error) {
	var event db.ScheduleEvent
	var date time.Time
	if err := row.Scan(
		&event.ID, &event.Type, &date, &event.TimeLabel, &event.Status,
		&event.Description, &event.ImageURL, &event.DiscordRoleID,
		&event.CreatorID, &event.RemindedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}
	event.Date = date.Format(schedule.DateLayout)
	return &event, nil
}
