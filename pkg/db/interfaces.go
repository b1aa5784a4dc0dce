package db

import (
	"context"
	"time"
)

// VoteStore defines the interface for slot-vote database operations
type VoteStore interface {
	GetVotes(ctx context.Context) ([]Vote, error)
	// ToggleVote atomically inserts the vote if absent or deletes it if
	// present, keyed by the deterministic vote ID. Returns true when the
	// vote exists after the call.
	ToggleVote(ctx context.Context, vote Vote) (bool, error)
	DeleteVotesByTimeslots(ctx context.Context, timeslots []string, batchSize int) (int, error)
	DeleteVotesByUser(ctx context.Context, userID string) error
}

// ProfileStore defines the interface for player-profile database operations
type ProfileStore interface {
	GetProfiles(ctx context.Context) ([]PlayerProfile, error)
	GetProfile(ctx context.Context, id string) (*PlayerProfile, error)
	UpsertProfile(ctx context.Context, profile PlayerProfile) error
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
	DeleteProfile(ctx context.Context, id string) error
}

// EventStore defines the interface for schedule-event database operations
type EventStore interface {
	GetEvents(ctx context.Context) ([]ScheduleEvent, error)
	GetEvent(ctx context.Context, id string) (*ScheduleEvent, error)
	InsertEvent(ctx context.Context, event ScheduleEvent) error
	SetEventStatus(ctx context.Context, id, status string) error
	MarkReminded(ctx context.Context, id string, at time.Time) error
	DeleteEvents(ctx context.Context, ids []string, batchSize int) (int, error)
}

// OverrideStore defines the interface for availability-override operations
type OverrideStore interface {
	GetOverrides(ctx context.Context) ([]AvailabilityOverride, error)
	GetOverridesByEvent(ctx context.Context, eventID string) ([]AvailabilityOverride, error)
	PutOverride(ctx context.Context, override AvailabilityOverride) error
	DeleteOverride(ctx context.Context, id string) error
	DeleteOverridesByUser(ctx context.Context, userID string) error
}

// EventVoteStore defines the interface for event RSVP operations
type EventVoteStore interface {
	GetEventVotes(ctx context.Context, eventID string) ([]EventVote, error)
	ToggleEventVote(ctx context.Context, vote EventVote) (bool, error)
	DeleteEventVotesByUser(ctx context.Context, userID string) error
}

// NotificationStore defines the interface for the append-only notification feed
type NotificationStore interface {
	GetNotifications(ctx context.Context, limit int) ([]AppNotification, error)
	InsertNotification(ctx context.Context, notification AppNotification) error
}

// SettingsStore defines the interface for webhook settings
type SettingsStore interface {
	GetWebhookSetting(ctx context.Context) (*WebhookSetting, error)
	PutWebhookSetting(ctx context.Context, setting WebhookSetting) error
}
