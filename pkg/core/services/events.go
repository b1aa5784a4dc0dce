package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scrimsync/teamsync/pkg/core/schedule"
	"github.com/scrimsync/teamsync/pkg/db"
)

// EventWriteStore defines the database operations for creating and updating events
type EventWriteStore interface {
	InsertEvent(ctx context.Context, event db.ScheduleEvent) error
	SetEventStatus(ctx context.Context, id, status string) error
	GetEvent(ctx context.Context, id string) (*db.ScheduleEvent, error)
}

// NewEventInput carries the fields of the admin event-creation form
type NewEventInput struct {
	Type          string
	Date          string // "2006-01-02"
	TimeLabel     string // "6:30 PM"
	Description   string
	ImageURL      string
	DiscordRoleID string
}

// CreateEvent validates the form input and inserts a new active event
func CreateEvent(
	ctx context.Context,
	store EventWriteStore,
	logger *zap.Logger,
	creatorID string,
	input NewEventInput,
) (*db.ScheduleEvent, error) {
	if creatorID == "" {
		return nil, ErrUnauthenticated
	}
	if input.Type != db.EventTypeTraining && input.Type != db.EventTypeTournament {
		return nil, fmt.Errorf("%w: unknown event type %q", ErrInvalidArgument, input.Type)
	}
	if _, err := time.Parse(schedule.DateLayout, input.Date); err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidArgument, input.Date)
	}
	if _, _, err := schedule.ParseTimeLabel(input.TimeLabel); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	event := db.ScheduleEvent{
		ID:            uuid.NewString(),
		Type:          input.Type,
		Date:          input.Date,
		TimeLabel:     input.TimeLabel,
		Status:        db.EventStatusActive,
		Description:   input.Description,
		ImageURL:      input.ImageURL,
		DiscordRoleID: input.DiscordRoleID,
		CreatorID:     creatorID,
	}

	if err := store.InsertEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}

	logger.Info("Created event",
		zap.String("event_id", event.ID),
		zap.String("type", event.Type),
		zap.String("date", event.Date),
		zap.String("time_label", event.TimeLabel))

	return &event, nil
}

// SetEventStatus toggles an event between Active and Cancelled
func SetEventStatus(
	ctx context.Context,
	store EventWriteStore,
	logger *zap.Logger,
	eventID, status string,
) error {
	if status != db.EventStatusActive && status != db.EventStatusCancelled {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, status)
	}

	event, err := store.GetEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to fetch event: %w", err)
	}
	if event == nil {
		return fmt.Errorf("%w: event not found: %s", ErrInvalidArgument, eventID)
	}

	if err := store.SetEventStatus(ctx, eventID, status); err != nil {
		return fmt.Errorf("failed to update event status: %w", err)
	}

	logger.Info("Updated event status",
		zap.String("event_id", eventID),
		zap.String("status", status))

	return nil
}

// PutOverride records a manual "possibly available" exception for an event
func PutOverride(
	ctx context.Context,
	store db.OverrideStore,
	logger *zap.Logger,
	eventID, userID string,
) error {
	if eventID == "" || userID == "" {
		return fmt.Errorf("%w: event id and user id are required", ErrInvalidArgument)
	}

	override := db.AvailabilityOverride{
		ID:      fmt.Sprintf("%s_%s", eventID, userID),
		EventID: eventID,
		UserID:  userID,
		Status:  db.OverrideStatusPossible,
	}
	if err := store.PutOverride(ctx, override); err != nil {
		return fmt.Errorf("failed to put override: %w", err)
	}

	logger.Debug("Recorded availability override",
		zap.String("event_id", eventID),
		zap.String("user_id", userID))

	return nil
}

// RemoveOverride deletes a manual exception for an event
func RemoveOverride(
	ctx context.Context,
	store db.OverrideStore,
	logger *zap.Logger,
	eventID, userID string,
) error {
	if eventID == "" || userID == "" {
		return fmt.Errorf("%w: event id and user id are required", ErrInvalidArgument)
	}

	if err := store.DeleteOverride(ctx, fmt.Sprintf("%s_%s", eventID, userID)); err != nil {
		return fmt.Errorf("failed to delete override: %w", err)
	}

	logger.Debug("Removed availability override",
		zap.String("event_id", eventID),
		zap.String("user_id", userID))

	return nil
}
