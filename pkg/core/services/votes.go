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

// Vote ids are derived from (user, timeslot) so rapid double-toggles hit the
// same row instead of racing a read-then-write.
var voteNamespace = uuid.MustParse("8b2dd528-1f87-4edb-9f64-3e0f3c2b16a0")

// VoteID returns the deterministic document id for a (user, timeslot) pair
func VoteID(userID, timeslot string) string {
	return uuid.NewSHA1(voteNamespace, []byte(userID+"|"+timeslot)).String()
}

// EventVoteID returns the deterministic document id for an event RSVP
func EventVoteID(eventID, userID string) string {
	return fmt.Sprintf("%s_%s", eventID, userID)
}

// VoteToggleStore defines the database operations needed to toggle slot votes
type VoteToggleStore interface {
	ToggleVote(ctx context.Context, vote db.Vote) (bool, error)
}

// EventVoteToggleStore defines the database operations needed to toggle RSVPs
type EventVoteToggleStore interface {
	ToggleEventVote(ctx context.Context, vote db.EventVote) (bool, error)
}

// ToggleVote flips a user's availability vote for a timeslot. Returns true
// when the vote exists after the toggle. The timeslot key is validated
// before any store call.
func ToggleVote(
	ctx context.Context,
	store VoteToggleStore,
	logger *zap.Logger,
	userID, timeslot string,
) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("%w: user id is required", ErrInvalidArgument)
	}
	if _, _, err := schedule.ParseSlotKey(timeslot); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	vote := db.Vote{
		ID:        VoteID(userID, timeslot),
		UserID:    userID,
		Timeslot:  timeslot,
		CreatedAt: time.Now(),
	}

	voted, err := store.ToggleVote(ctx, vote)
	if err != nil {
		return false, fmt.Errorf("failed to toggle vote: %w", err)
	}

	logger.Debug("Toggled slot vote",
		zap.String("user_id", userID),
		zap.String("timeslot", timeslot),
		zap.Bool("voted", voted))

	return voted, nil
}

// ToggleEventVote flips a user's RSVP for an event
func ToggleEventVote(
	ctx context.Context,
	store EventVoteToggleStore,
	logger *zap.Logger,
	eventID, userID string,
) (bool, error) {
	if eventID == "" || userID == "" {
		return false, fmt.Errorf("%w: event id and user id are required", ErrInvalidArgument)
	}

	vote := db.EventVote{
		ID:      EventVoteID(eventID, userID),
		EventID: eventID,
		UserID:  userID,
	}

	attending, err := store.ToggleEventVote(ctx, vote)
	if err != nil {
		return false, fmt.Errorf("failed to toggle event vote: %w", err)
	}

	logger.Debug("Toggled event vote",
		zap.String("event_id", eventID),
		zap.String("user_id", userID),
		zap.Bool("attending", attending))

	return attending, nil
}
