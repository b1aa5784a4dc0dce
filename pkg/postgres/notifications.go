package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/scrimsync/teamsync/pkg/db"
)

// GetNotifications retrieves the newest feed entries, newest first
func (d *DB) GetNotifications(ctx context.Context, limit int) ([]db.AppNotification, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, message, icon, created_by, created_at
		FROM app_notification
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []db.AppNotification
	for rows.Next() {
		var n db.AppNotification
		if err := rows.Scan(&n.ID, &n.Message, &n.Icon, &n.CreatedBy, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}

// InsertNotification appends a feed entry
func (d *DB) InsertNotification(ctx context.Context, notification db.AppNotification) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO app_notification (id, message, icon, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, notification.ID, notification.Message, notification.Icon,
		notification.CreatedBy, notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// GetWebhookSetting retrieves the persisted webhook URL, or nil when unset
func (d *DB) GetWebhookSetting(ctx context.Context) (*db.WebhookSetting, error) {
	var setting db.WebhookSetting
	err := d.pool.QueryRow(ctx, `
		SELECT id, url, updated_by, updated_at
		FROM webhook_setting
		WHERE id = 'discord'
	`).Scan(&setting.ID, &setting.URL, &setting.UpdatedBy, &setting.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query webhook setting: %w", err)
	}

	return &setting, nil
}

// PutWebhookSetting inserts or replaces the webhook setting
func (d *DB) PutWebhookSetting(ctx context.Context, setting db.WebhookSetting) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO webhook_setting (id, url, updated_by, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			url = EXCLUDED.url,
			updated_by = EXCLUDED.updated_by,
			updated_at = EXCLUDED.updated_at
	`, setting.ID, setting.URL, setting.UpdatedBy, setting.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to put webhook setting: %w", err)
	}
	return nil
}
