package db

import "time"

// RosterStatus values recognised on player profiles. Anything else is
// treated as unset for sorting and nudge purposes.
const (
	RosterStatusMain    = "Main Roster"
	RosterStatusStandby = "Standby Player"
)

// EventStatus values for schedule events
const (
	EventStatusActive    = "Active"
	EventStatusCancelled = "Cancelled"
)

// EventType values for schedule events
const (
	EventTypeTraining   = "Training"
	EventTypeTournament = "Tournament"
)

// OverrideStatusPossible is the only status an availability override carries
const OverrideStatusPossible = "Possibly Available"

// Vote represents a slot-availability vote record.
// ID is deterministic over (UserID, Timeslot) so a pair maps to exactly one row.
type Vote struct {
	ID        string
	UserID    string
	Timeslot  string // "YYYY-MM-DD_H:MM AM|PM"
	CreatedAt time.Time
}

// PlayerProfile represents a player profile record, keyed by the identity
// provider UID
type PlayerProfile struct {
	ID              string
	Username        string
	FavoriteTank    string
	Role            string
	RosterStatus    string
	PlaystyleTags   []string
	DiscordUsername string
	PhotoURL        string
	LastNotifReadAt *time.Time
	IsAdmin         bool
}

// ScheduleEvent represents a scheduled training or tournament event
type ScheduleEvent struct {
	ID            string
	Type          string
	Date          string // "2006-01-02"
	TimeLabel     string // "6:30 PM"
	Status        string
	Description   string
	ImageURL      string
	DiscordRoleID string
	CreatorID     string
	RemindedAt    *time.Time // set once the sweep has posted a reminder
}

// AvailabilityOverride represents a manual "possibly available" exception
// layered on top of slot votes. ID is "<eventID>_<userID>".
type AvailabilityOverride struct {
	ID      string
	EventID string
	UserID  string
	Status  string
}

// EventVote represents a direct RSVP for a specific event, separate from the
// slot-vote grid. ID is "<eventID>_<userID>".
type EventVote struct {
	ID      string
	EventID string
	UserID  string
}

// AppNotification represents an append-only notification feed entry
type AppNotification struct {
	ID        string
	Message   string
	Icon      string
	CreatedBy string
	CreatedAt time.Time
}

// WebhookSetting holds the persisted outbound webhook URL
type WebhookSetting struct {
	ID        string // always "discord"
	URL       string
	UpdatedBy string
	UpdatedAt time.Time
}
