package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scrimsync/teamsync/pkg/db"
)

type mockVoteToggleStore struct {
	votes map[string]db.Vote
}

func (m *mockVoteToggleStore) ToggleVote(ctx context.Context, vote db.Vote) (bool, error) {
	if m.votes == nil {
		m.votes = make(map[string]db.Vote)
	}
	if _, exists := m.votes[vote.ID]; exists {
		delete(m.votes, vote.ID)
		return false, nil
	}
	m.votes[vote.ID] = vote
	return true, nil
}

type mockEventVoteToggleStore struct {
	votes map[string]db.EventVote
}

func (m *mockEventVoteToggleStore) ToggleEventVote(ctx context.Context, vote db.EventVote) (bool, error) {
	if m.votes == nil {
		m.votes = make(map[string]db.EventVote)
	}
	if _, exists := m.votes[vote.ID]; exists {
		delete(m.votes, vote.ID)
		return false, nil
	}
	m.votes[vote.ID] = vote
	return true, nil
}

func TestVoteID_Deterministic(t *testing.T) {
	first := VoteID("user-1", "2024-06-01_6:30 PM")
	second := VoteID("user-1", "2024-06-01_6:30 PM")
	assert.Equal(t, first, second)

	assert.NotEqual(t, first, VoteID("user-2", "2024-06-01_6:30 PM"))
	assert.NotEqual(t, first, VoteID("user-1", "2024-06-02_6:30 PM"))
}

func TestEventVoteID(t *testing.T) {
	assert.Equal(t, "event-1_user-1", EventVoteID("event-1", "user-1"))
}

func TestToggleVote(t *testing.T) {
	store := &mockVoteToggleStore{}

	voted, err := ToggleVote(context.Background(), store, zap.NewNop(), "user-1", "2024-06-01_6:30 PM")
	require.NoError(t, err)
	assert.True(t, voted)
	assert.Len(t, store.votes, 1)

	// Same pair hits the same row and removes it
	voted, err = ToggleVote(context.Background(), store, zap.NewNop(), "user-1", "2024-06-01_6:30 PM")
	require.NoError(t, err)
	assert.False(t, voted)
	assert.Empty(t, store.votes)
}

func TestToggleVote_InvalidTimeslot(t *testing.T) {
	store := &mockVoteToggleStore{}

	_, err := ToggleVote(context.Background(), store, zap.NewNop(), "user-1", "garbage")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, store.votes)
}

func TestToggleVote_MissingUserID(t *testing.T) {
	_, err := ToggleVote(context.Background(), &mockVoteToggleStore{}, zap.NewNop(), "", "2024-06-01_6:30 PM")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestToggleEventVote(t *testing.T) {
	store := &mockEventVoteToggleStore{}

	attending, err := ToggleEventVote(context.Background(), store, zap.NewNop(), "event-1", "user-1")
	require.NoError(t, err)
	assert.True(t, attending)

	attending, err = ToggleEventVote(context.Background(), store, zap.NewNop(), "event-1", "user-1")
	require.NoError(t, err)
	assert.False(t, attending)
}

func TestToggleEventVote_MissingIDs(t *testing.T) {
	_, err := ToggleEventVote(context.Background(), &mockEventVoteToggleStore{}, zap.NewNop(), "", "user-1")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
