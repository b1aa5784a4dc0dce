package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/scrimsync/teamsync/internal/config"
	"github.com/scrimsync/teamsync/pkg/core/schedule"
	"github.com/scrimsync/teamsync/pkg/db"
)

// Bulk deletes go through the store in fixed-size batches. Each batch is
// atomic; the overall operation is not, and is safe to re-run after a crash.
const deleteBatchSize = 500

// VoteCleanupStore defines the database operations for clearing votes
type VoteCleanupStore interface {
	GetVotes(ctx context.Context) ([]db.Vote, error)
	DeleteVotesByTimeslots(ctx context.Context, timeslots []string, batchSize int) (int, error)
}

// EventCleanupStore defines the database operations for clearing past events
type EventCleanupStore interface {
	GetEvents(ctx context.Context) ([]db.ScheduleEvent, error)
	DeleteEvents(ctx context.Context, ids []string, batchSize int) (int, error)
}

// ProfileCleanupStore defines the operations for the profile delete cascade
type ProfileCleanupStore interface {
	DeleteProfile(ctx context.Context, id string) error
	DeleteVotesByUser(ctx context.Context, userID string) error
	DeleteOverridesByUser(ctx context.Context, userID string) error
	DeleteEventVotesByUser(ctx context.Context, userID string) error
}

// ClearWeekVotes deletes every vote whose timeslot falls in the seven days
// starting at weekStart. Returns the number of votes deleted.
func ClearWeekVotes(
	ctx context.Context,
	store VoteCleanupStore,
	logger *zap.Logger,
	weekStart time.Time,
) (int, error) {
	logger.Debug("Starting clearWeekVotes", zap.Time("week_start", weekStart))

	votes, err := store.GetVotes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch votes: %w", err)
	}

	weekEnd := weekStart.AddDate(0, 0, 7)
	slotSet := make(map[string]bool)
	for _, vote := range votes {
		dateStr, _, err := schedule.ParseSlotKey(vote.Timeslot)
		if err != nil {
			// Malformed keys are still cleaned up with the week they
			// cannot belong to anything else.
			slotSet[vote.Timeslot] = true
			continue
		}
		date, err := time.Parse(schedule.DateLayout, dateStr)
		if err != nil {
			slotSet[vote.Timeslot] = true
			continue
		}
		if !date.Before(weekStart) && date.Before(weekEnd) {
			slotSet[vote.Timeslot] = true
		}
	}

	if len(slotSet) == 0 {
		logger.Info("No votes to clear for week", zap.Time("week_start", weekStart))
		return 0, nil
	}

	timeslots := make([]string, 0, len(slotSet))
	for slot := range slotSet {
		timeslots = append(timeslots, slot)
	}

	deleted, err := store.DeleteVotesByTimeslots(ctx, timeslots, deleteBatchSize)
	if err != nil {
		return deleted, fmt.Errorf("failed to delete votes: %w", err)
	}

	logger.Info("Cleared week votes",
		zap.Time("week_start", weekStart),
		zap.Int("deleted", deleted))

	return deleted, nil
}

// ClearPastEvents deletes every event whose start is before now. Overrides
// and RSVPs for a deleted event are removed by the store cascade.
func ClearPastEvents(
	ctx context.Context,
	store EventCleanupStore,
	cfg *config.Config,
	logger *zap.Logger,
	now time.Time,
) (int, error) {
	logger.Debug("Starting clearPastEvents", zap.Time("now", now))

	events, err := store.GetEvents(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch events: %w", err)
	}

	pastIDs := make([]string, 0)
	for _, event := range events {
		start, err := schedule.EventStart(event.Date, event.TimeLabel, cfg.Location())
		if err != nil {
			logger.Debug("Treating event with unparseable start as past",
				zap.String("event_id", event.ID))
			pastIDs = append(pastIDs, event.ID)
			continue
		}
		if start.Before(now) {
			pastIDs = append(pastIDs, event.ID)
		}
	}

	if len(pastIDs) == 0 {
		logger.Info("No past events to clear")
		return 0, nil
	}

	deleted, err := store.DeleteEvents(ctx, pastIDs, deleteBatchSize)
	if err != nil {
		return deleted, fmt.Errorf("failed to delete events: %w", err)
	}

	logger.Info("Cleared past events", zap.Int("deleted", deleted))

	return deleted, nil
}

// DeleteProfileCascade removes a profile together with its votes, overrides,
// and RSVPs. Admin-only at the call sites.
func DeleteProfileCascade(
	ctx context.Context,
	store ProfileCleanupStore,
	logger *zap.Logger,
	userID string,
) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidArgument)
	}

	if err := store.DeleteVotesByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete votes for user: %w", err)
	}
	if err := store.DeleteOverridesByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete overrides for user: %w", err)
	}
	if err := store.DeleteEventVotesByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete event votes for user: %w", err)
	}
	if err := store.DeleteProfile(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	logger.Info("Deleted profile with cascade", zap.String("user_id", userID))

	return nil
}
