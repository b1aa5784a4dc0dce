package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/scrimsync/teamsync/pkg/core/schedule"
	"github.com/scrimsync/teamsync/pkg/db"
)

// SlotAvailability maps canonical timeslot keys to the usernames who voted
// available for that slot, in vote order
type SlotAvailability map[string][]string

// EventAvailability summarises who is attending a specific event
type EventAvailability struct {
	AttendeeIDs []string // RSVP user ids, in vote order
	Attendees   []string // resolved usernames for the same users
	OverrideIDs []string // user ids with a "possibly available" override
}

// EventAvailabilityStore defines the database operations needed to aggregate
// availability for one event
type EventAvailabilityStore interface {
	GetEventVotes(ctx context.Context, eventID string) ([]db.EventVote, error)
	GetOverridesByEvent(ctx context.Context, eventID string) ([]db.AvailabilityOverride, error)
}

// AggregateBySlot folds the flat vote list into per-slot username lists.
// Votes with malformed timeslot keys or no resolvable profile are skipped.
func AggregateBySlot(votes []db.Vote, profiles []db.PlayerProfile, logger *zap.Logger) SlotAvailability {
	profilesByID := profileMap(profiles)

	result := make(SlotAvailability)
	for _, vote := range votes {
		if _, _, err := schedule.ParseSlotKey(vote.Timeslot); err != nil {
			logger.Debug("Skipping vote with malformed timeslot",
				zap.String("user_id", vote.UserID),
				zap.String("timeslot", vote.Timeslot))
			continue
		}

		profile, exists := profilesByID[vote.UserID]
		if !exists {
			logger.Debug("Skipping vote with no resolvable profile",
				zap.String("user_id", vote.UserID))
			continue
		}

		result[vote.Timeslot] = append(result[vote.Timeslot], profile.Username)
	}

	return result
}

// AggregateEvent returns the RSVP attendee list and override user ids for an
// event. Attendees with no resolvable profile keep their id but are dropped
// from the username list.
func AggregateEvent(
	ctx context.Context,
	store EventAvailabilityStore,
	profiles []db.PlayerProfile,
	logger *zap.Logger,
	eventID string,
) (*EventAvailability, error) {
	eventVotes, err := store.GetEventVotes(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event votes: %w", err)
	}

	overrides, err := store.GetOverridesByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch overrides: %w", err)
	}

	profilesByID := profileMap(profiles)

	availability := &EventAvailability{}
	for _, vote := range eventVotes {
		availability.AttendeeIDs = append(availability.AttendeeIDs, vote.UserID)

		profile, exists := profilesByID[vote.UserID]
		if !exists {
			logger.Debug("Event vote with no resolvable profile",
				zap.String("user_id", vote.UserID),
				zap.String("event_id", eventID))
			continue
		}
		availability.Attendees = append(availability.Attendees, profile.Username)
	}

	for _, override := range overrides {
		availability.OverrideIDs = append(availability.OverrideIDs, override.UserID)
	}

	logger.Debug("Aggregated event availability",
		zap.String("event_id", eventID),
		zap.Int("attending", len(availability.AttendeeIDs)),
		zap.Int("overrides", len(availability.OverrideIDs)))

	return availability, nil
}

// RosterReady reports whether the available count meets the minimum-player
// threshold
func RosterReady(availableCount, minimumPlayers int) bool {
	return availableCount >= minimumPlayers
}

// SortRoster sorts profiles for the public roster view: Main Roster first,
// then Standby Player, then everyone else, each tier alphabetical by username
func SortRoster(profiles []db.PlayerProfile) []db.PlayerProfile {
	sorted := make([]db.PlayerProfile, len(profiles))
	copy(sorted, profiles)

	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := rosterPrecedence(sorted[i].RosterStatus), rosterPrecedence(sorted[j].RosterStatus)
		if pi != pj {
			return pi < pj
		}
		return strings.ToLower(sorted[i].Username) < strings.ToLower(sorted[j].Username)
	})

	return sorted
}

func rosterPrecedence(status string) int {
	switch status {
	case db.RosterStatusMain:
		return 0
	case db.RosterStatusStandby:
		return 1
	default:
		return 2
	}
}

func profileMap(profiles []db.PlayerProfile) map[string]db.PlayerProfile {
	byID := make(map[string]db.PlayerProfile, len(profiles))
	for _, profile := range profiles {
		byID[profile.ID] = profile
	}
	return byID
}
