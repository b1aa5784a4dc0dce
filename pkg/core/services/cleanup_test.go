package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scrimsync/teamsync/pkg/db"
)

type mockVoteCleanupStore struct {
	votes     []db.Vote
	deleted   []string
	batchSize int
}

func (m *mockVoteCleanupStore) GetVotes(ctx context.Context) ([]db.Vote, error) {
	return m.votes, nil
}

func (m *mockVoteCleanupStore) DeleteVotesByTimeslots(ctx context.Context, timeslots []string, batchSize int) (int, error) {
	m.deleted = timeslots
	m.batchSize = batchSize

	count := 0
	for _, vote := range m.votes {
		for _, slot := range timeslots {
			if vote.Timeslot == slot {
				count++
			}
		}
	}
	return count, nil
}

type mockEventCleanupStore struct {
	events  []db.ScheduleEvent
	deleted []string
}

func (m *mockEventCleanupStore) GetEvents(ctx context.Context) ([]db.ScheduleEvent, error) {
	return m.events, nil
}

func (m *mockEventCleanupStore) DeleteEvents(ctx context.Context, ids []string, batchSize int) (int, error) {
	m.deleted = ids
	return len(ids), nil
}

type mockProfileCleanupStore struct {
	calls []string
}

func (m *mockProfileCleanupStore) DeleteProfile(ctx context.Context, id string) error {
	m.calls = append(m.calls, "profile")
	return nil
}

func (m *mockProfileCleanupStore) DeleteVotesByUser(ctx context.Context, userID string) error {
	m.calls = append(m.calls, "votes")
	return nil
}

func (m *mockProfileCleanupStore) DeleteOverridesByUser(ctx context.Context, userID string) error {
	m.calls = append(m.calls, "overrides")
	return nil
}

func (m *mockProfileCleanupStore) DeleteEventVotesByUser(ctx context.Context, userID string) error {
	m.calls = append(m.calls, "eventVotes")
	return nil
}

func TestClearWeekVotes(t *testing.T) {
	weekStart := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC) // Monday

	store := &mockVoteCleanupStore{
		votes: []db.Vote{
			{UserID: "user-1", Timeslot: "2024-06-04_6:30 PM"}, // in week
			{UserID: "user-2", Timeslot: "2024-06-09_6:30 PM"}, // in week (Sunday)
			{UserID: "user-1", Timeslot: "2024-06-10_6:30 PM"}, // next week
			{UserID: "user-2", Timeslot: "2024-06-02_6:30 PM"}, // previous week
		},
	}

	deleted, err := ClearWeekVotes(context.Background(), store, zap.NewNop(), weekStart)
	require.NoError(t, err)

	assert.Equal(t, 2, deleted)
	assert.ElementsMatch(t, []string{"2024-06-04_6:30 PM", "2024-06-09_6:30 PM"}, store.deleted)
	assert.Equal(t, 500, store.batchSize)
}

func TestClearWeekVotes_MalformedKeysAreCleaned(t *testing.T) {
	weekStart := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	store := &mockVoteCleanupStore{
		votes: []db.Vote{
			{UserID: "user-1", Timeslot: "garbage"},
			{UserID: "user-2", Timeslot: "2024-06-10_6:30 PM"},
		},
	}

	deleted, err := ClearWeekVotes(context.Background(), store, zap.NewNop(), weekStart)
	require.NoError(t, err)

	assert.Equal(t, 1, deleted)
	assert.Equal(t, []string{"garbage"}, store.deleted)
}

func TestClearWeekVotes_NothingToClear(t *testing.T) {
	weekStart := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	store := &mockVoteCleanupStore{}

	deleted, err := ClearWeekVotes(context.Background(), store, zap.NewNop(), weekStart)
	require.NoError(t, err)

	assert.Equal(t, 0, deleted)
	assert.Empty(t, store.deleted)
}

func TestClearPastEvents(t *testing.T) {
	now := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

	store := &mockEventCleanupStore{
		events: []db.ScheduleEvent{
			{ID: "past", Date: "2024-06-01", TimeLabel: "2:00 PM", Status: db.EventStatusActive},
			{ID: "future", Date: "2024-06-01", TimeLabel: "9:00 PM", Status: db.EventStatusActive},
			{ID: "corrupt", Date: "not-a-date", TimeLabel: "2:00 PM", Status: db.EventStatusActive},
		},
	}

	deleted, err := ClearPastEvents(context.Background(), store, testConfig(), zap.NewNop(), now)
	require.NoError(t, err)

	assert.Equal(t, 2, deleted)
	assert.ElementsMatch(t, []string{"past", "corrupt"}, store.deleted)
}

func TestDeleteProfileCascade(t *testing.T) {
	store := &mockProfileCleanupStore{}

	err := DeleteProfileCascade(context.Background(), store, zap.NewNop(), "user-1")
	require.NoError(t, err)

	// Dependent records go first, the profile last
	assert.Equal(t, []string{"votes", "overrides", "eventVotes", "profile"}, store.calls)
}

func TestDeleteProfileCascade_MissingUserID(t *testing.T) {
	err := DeleteProfileCascade(context.Background(), &mockProfileCleanupStore{}, zap.NewNop(), "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
