package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scrimsync/teamsync/pkg/db"
)

type mockEventAvailabilityStore struct {
	eventVotes []db.EventVote
	overrides  []db.AvailabilityOverride
	err        error
}

func (m *mockEventAvailabilityStore) GetEventVotes(ctx context.Context, eventID string) ([]db.EventVote, error) {
	return m.eventVotes, m.err
}

func (m *mockEventAvailabilityStore) GetOverridesByEvent(ctx context.Context, eventID string) ([]db.AvailabilityOverride, error) {
	return m.overrides, m.err
}

func TestAggregateBySlot(t *testing.T) {
	profiles := []db.PlayerProfile{
		{ID: "user-1", Username: "Alpha"},
		{ID: "user-2", Username: "Bravo"},
	}
	votes := []db.Vote{
		{UserID: "user-1", Timeslot: "2024-06-01_6:30 PM"},
		{UserID: "user-2", Timeslot: "2024-06-01_6:30 PM"},
		{UserID: "user-1", Timeslot: "2024-06-02_10:00 AM"},
	}

	result := AggregateBySlot(votes, profiles, zap.NewNop())

	assert.Equal(t, SlotAvailability{
		"2024-06-01_6:30 PM":  {"Alpha", "Bravo"},
		"2024-06-02_10:00 AM": {"Alpha"},
	}, result)
}

func TestAggregateBySlot_SkipsMalformedTimeslot(t *testing.T) {
	profiles := []db.PlayerProfile{
		{ID: "user-1", Username: "Alpha"},
		{ID: "user-2", Username: "Bravo"},
	}
	votes := []db.Vote{
		{UserID: "user-1", Timeslot: "2024-06-01_6:30 PM"},
		{UserID: "user-2", Timeslot: "not-a-timeslot"},
		{UserID: "user-2", Timeslot: "2024-06-01_6:30 PM"},
	}

	result := AggregateBySlot(votes, profiles, zap.NewNop())

	assert.Equal(t, SlotAvailability{
		"2024-06-01_6:30 PM": {"Alpha", "Bravo"},
	}, result)
}

func TestAggregateBySlot_SkipsUnresolvableProfile(t *testing.T) {
	profiles := []db.PlayerProfile{
		{ID: "user-1", Username: "Alpha"},
	}
	votes := []db.Vote{
		{UserID: "user-1", Timeslot: "2024-06-01_6:30 PM"},
		{UserID: "ghost", Timeslot: "2024-06-01_6:30 PM"},
	}

	result := AggregateBySlot(votes, profiles, zap.NewNop())

	assert.Equal(t, []string{"Alpha"}, result["2024-06-01_6:30 PM"])
}

func TestAggregateEvent(t *testing.T) {
	store := &mockEventAvailabilityStore{
		eventVotes: []db.EventVote{
			{EventID: "event-1", UserID: "user-1"},
			{EventID: "event-1", UserID: "user-2"},
			{EventID: "event-1", UserID: "ghost"},
		},
		overrides: []db.AvailabilityOverride{
			{EventID: "event-1", UserID: "user-3", Status: db.OverrideStatusPossible},
		},
	}
	profiles := []db.PlayerProfile{
		{ID: "user-1", Username: "Alpha"},
		{ID: "user-2", Username: "Bravo"},
		{ID: "user-3", Username: "Charlie"},
	}

	availability, err := AggregateEvent(context.Background(), store, profiles, zap.NewNop(), "event-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"user-1", "user-2", "ghost"}, availability.AttendeeIDs)
	assert.Equal(t, []string{"Alpha", "Bravo"}, availability.Attendees)
	assert.Equal(t, []string{"user-3"}, availability.OverrideIDs)
}

func TestRosterReady(t *testing.T) {
	assert.False(t, RosterReady(6, 7))
	assert.True(t, RosterReady(7, 7))
	assert.True(t, RosterReady(8, 7))
}

func TestSortRoster(t *testing.T) {
	profiles := []db.PlayerProfile{
		{ID: "1", Username: "zara", RosterStatus: db.RosterStatusMain},
		{ID: "2", Username: "Yusuf"},
		{ID: "3", Username: "beth", RosterStatus: db.RosterStatusStandby},
		{ID: "4", Username: "Adam", RosterStatus: db.RosterStatusMain},
		{ID: "5", Username: "casey", RosterStatus: db.RosterStatusStandby},
	}

	sorted := SortRoster(profiles)

	names := make([]string, len(sorted))
	for i, profile := range sorted {
		names[i] = profile.Username
	}
	assert.Equal(t, []string{"Adam", "zara", "beth", "casey", "Yusuf"}, names)

	// Input order is untouched
	assert.Equal(t, "zara", profiles[0].Username)
}
