package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftconf/bof-api/internal/domain"
)

func newVoteFixture() (*memStore, *VoteService, *recordingNotifier) {
	m := newMemStore()
	m.addParticipant(domain.Participant{ID: 1, Name: "Ada", Role: domain.RoleParticipant})
	m.addParticipant(domain.Participant{ID: 2, Name: "Ben", Role: domain.RoleParticipant})
	m.addSession(domain.BOFSession{ID: 10, Status: domain.BOFStatusVotingOpen})
	m.addTopic(domain.Topic{ID: 100, BOFSessionID: 10, ParticipantID: 1, Title: "Observability in prod"})
	m.addTopic(domain.Topic{ID: 101, BOFSessionID: 10, ParticipantID: 2, Title: "Gophers at scale"})

	notifier := &recordingNotifier{}
	svc := NewVoteService(voteStore{m}, topicStore{m}, nil, &recordingAnalytics{}, notifier)

	return m, svc, notifier
}

func TestVoteService_Cast(t *testing.T) {
	ctx := context.Background()

	t.Run("records a vote and notifies the session channel", func(t *testing.T) {
		_, svc, notifier := newVoteFixture()

		vote, err := svc.Cast(ctx, 2, 100, 10)

		require.NoError(t, err)
		assert.Equal(t, uint(100), vote.TopicID)
		assert.Equal(t, uint(2), vote.ParticipantID)
		assert.Equal(t, []uint{10}, notifier.votesChanged)
	})

	t.Run("rejects voting for own topic", func(t *testing.T) {
		m, svc, _ := newVoteFixture()

		_, err := svc.Cast(ctx, 1, 100, 10)

		assert.ErrorIs(t, err, ErrCannotVoteOwnTopic)
		assert.Empty(t, m.votes)
	})

	t.Run("unknown topic", func(t *testing.T) {
		_, svc, _ := newVoteFixture()

		_, err := svc.Cast(ctx, 2, 999, 10)

		assert.ErrorIs(t, err, ErrTopicNotFound)
	})

	t.Run("rejects a session that does not match the topic", func(t *testing.T) {
		m, svc, _ := newVoteFixture()
		m.addSession(domain.BOFSession{ID: 11, Status: domain.BOFStatusVotingOpen})

		_, err := svc.Cast(ctx, 2, 100, 11)

		assert.ErrorIs(t, err, ErrTopicSessionMismatch)
		assert.Empty(t, m.votes)
	})

	t.Run("second cast moves the vote instead of adding one", func(t *testing.T) {
		m, svc, _ := newVoteFixture()

		first, err := svc.Cast(ctx, 2, 100, 10)
		require.NoError(t, err)

		m.addTopic(domain.Topic{ID: 102, BOFSessionID: 10, ParticipantID: 1, Title: "Third option"})
		second, err := svc.Cast(ctx, 2, 102, 10)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID, "moving a vote must keep the same ledger row")
		assert.Equal(t, uint(102), second.TopicID)
		assert.Len(t, m.votes, 1)
	})

	t.Run("votes in different sessions are independent", func(t *testing.T) {
		m, svc, _ := newVoteFixture()
		m.addSession(domain.BOFSession{ID: 11, Status: domain.BOFStatusVotingOpen})
		m.addTopic(domain.Topic{ID: 110, BOFSessionID: 11, ParticipantID: 1, Title: "Another day topic"})

		_, err := svc.Cast(ctx, 2, 100, 10)
		require.NoError(t, err)
		_, err = svc.Cast(ctx, 2, 110, 11)
		require.NoError(t, err)

		assert.Len(t, m.votes, 2)
	})
}

func TestVoteService_GetUserVote(t *testing.T) {
	ctx := context.Background()
	_, svc, _ := newVoteFixture()

	_, err := svc.GetUserVote(ctx, 2, 10)
	assert.ErrorIs(t, err, ErrVoteNotFound)

	cast, err := svc.Cast(ctx, 2, 100, 10)
	require.NoError(t, err)

	got, err := svc.GetUserVote(ctx, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, cast.ID, got.ID)
	assert.Equal(t, uint(100), got.TopicID)
}
