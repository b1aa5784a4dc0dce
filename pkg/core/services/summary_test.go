package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scrimsync/teamsync/pkg/clients/discordclient"
	"github.com/scrimsync/teamsync/pkg/db"
)

type mockDailySummaryStore struct {
	events   []db.ScheduleEvent
	votes    []db.Vote
	profiles []db.PlayerProfile
}

func (m *mockDailySummaryStore) GetEvents(ctx context.Context) ([]db.ScheduleEvent, error) {
	return m.events, nil
}

func (m *mockDailySummaryStore) GetVotes(ctx context.Context) ([]db.Vote, error) {
	return m.votes, nil
}

func (m *mockDailySummaryStore) GetProfiles(ctx context.Context) ([]db.PlayerProfile, error) {
	return m.profiles, nil
}

func TestBuildDailySummary(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	cancelled := db.ScheduleEvent{
		Type: db.EventTypeTraining, Date: "2024-06-01", TimeLabel: "2:00 PM",
		Status: db.EventStatusCancelled,
	}
	events := []db.ScheduleEvent{
		{Type: db.EventTypeTraining, Date: "2024-06-01", TimeLabel: "6:30 PM", Status: db.EventStatusActive},
		{Type: db.EventTypeTournament, Date: "2024-06-02", TimeLabel: "6:30 PM", Status: db.EventStatusActive},
		cancelled,
	}
	slotVotes := SlotAvailability{
		"2024-06-01_6:30 PM": {"Alpha", "Bravo", "Charlie"},
	}

	body := BuildDailySummary(events, slotVotes, testConfig(), now)

	assert.Contains(t, body, "Schedule for 2024-06-01")
	assert.Contains(t, body, "- 6:30 PM: Training (3/7)")
	assert.NotContains(t, body, "Tournament")
	assert.NotContains(t, body, "2:00 PM")
	assert.Contains(t, body, "Vote on your availability at https://teamsync.example.com")
}

func TestBuildDailySummary_NoEvents(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	body := BuildDailySummary(nil, SlotAvailability{}, testConfig(), now)

	assert.Contains(t, body, "- No events scheduled today")
}

func TestPostDailySummary(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	store := &mockDailySummaryStore{
		events: []db.ScheduleEvent{
			{Type: db.EventTypeTraining, Date: "2024-06-01", TimeLabel: "6:30 PM", Status: db.EventStatusActive},
		},
		votes: []db.Vote{
			{UserID: "user-1", Timeslot: "2024-06-01_6:30 PM"},
		},
		profiles: []db.PlayerProfile{
			{ID: "user-1", Username: "Alpha"},
		},
	}
	notifier := &mockNotifier{}

	body, err := PostDailySummary(context.Background(), store, notifier, testConfig(), zap.NewNop(), now)
	require.NoError(t, err)

	assert.Contains(t, body, "- 6:30 PM: Training (1/7)")

	require.Len(t, notifier.messages, 1)
	embed := notifier.messages[0].Embeds[0]
	assert.Equal(t, "Daily Schedule", embed.Title)
	assert.Equal(t, discordclient.ColorSummary, embed.Color)
	assert.Equal(t, body, embed.Description)
}
