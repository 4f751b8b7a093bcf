package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftconf/bof-api/internal/domain"
)

func seedCatalog(m *memStore) {
	m.addAchievement(domain.Achievement{ID: 1, Code: domain.AchievementFirstVoter, Points: 50})
	m.addAchievement(domain.Achievement{ID: 2, Code: domain.AchievementFirstTopic, Points: 50})
	m.addAchievement(domain.Achievement{ID: 3, Code: domain.AchievementActiveVoter, Points: 100})
	m.addAchievement(domain.Achievement{ID: 4, Code: domain.AchievementTopicCreator, Points: 75})
	m.addAchievement(domain.Achievement{ID: 5, Code: domain.AchievementPopularTopic, Points: 150})
	m.addAchievement(domain.Achievement{ID: 6, Code: domain.AchievementTopFive, Points: 200})
	m.addAchievement(domain.Achievement{ID: 7, Code: domain.AchievementSocialButterfly, Points: 30})
	m.addAchievement(domain.Achievement{ID: 8, Code: domain.AchievementNightOwl, Points: 25})
	m.addAchievement(domain.Achievement{ID: 9, Code: domain.AchievementEarlyBird, Points: 25})
}

func newAchievementFixture() (*memStore, *AchievementService) {
	m := newMemStore()
	seedCatalog(m)
	m.addParticipant(domain.Participant{ID: 1, Name: "Ada"})
	m.addParticipant(domain.Participant{ID: 2, Name: "Ben"})
	opens := time.Date(2026, 5, 28, 9, 0, 0, 0, time.UTC)
	m.addSession(domain.BOFSession{ID: 10, VotingOpensAt: &opens})
	m.addTopic(domain.Topic{ID: 100, BOFSessionID: 10, ParticipantID: 1, Title: "The one topic"})

	view := NewAggregationService(topicStore{m}, voteStore{m})
	svc := NewAchievementService(achievementStore{m}, voteStore{m}, topicStore{m}, sessionStore{m}, view)
	// Mid-afternoon, well past the voting-open window.
	svc.now = func() time.Time { return time.Date(2026, 5, 28, 15, 0, 0, 0, time.UTC) }

	return m, svc
}

func earnedCodes(t *testing.T, m *memStore, participantID uint) []string {
	t.Helper()

	rows, err := achievementStore{m}.FindByParticipant(context.Background(), participantID)
	require.NoError(t, err)

	codes := make([]string, 0, len(rows))
	for _, row := range rows {
		codes = append(codes, row.Achievement.Code)
	}
	return codes
}

func TestAchievementService_EvaluateVoteCast(t *testing.T) {
	ctx := context.Background()

	t.Run("first vote in a session earns first_voter", func(t *testing.T) {
		m, svc := newAchievementFixture()
		_, err := voteStore{m}.Upsert(ctx, domain.Vote{TopicID: 100, ParticipantID: 2, BOFSessionID: 10})
		require.NoError(t, err)

		awarded, err := svc.EvaluateVoteCast(ctx, 2, 10, 100)

		require.NoError(t, err)
		assert.Contains(t, awarded, domain.AchievementFirstVoter)
	})

	t.Run("voting in every session earns active_voter", func(t *testing.T) {
		m, svc := newAchievementFixture()
		_, err := voteStore{m}.Upsert(ctx, domain.Vote{TopicID: 100, ParticipantID: 2, BOFSessionID: 10})
		require.NoError(t, err)

		awarded, err := svc.EvaluateVoteCast(ctx, 2, 10, 100)

		require.NoError(t, err)
		assert.Contains(t, awarded, domain.AchievementActiveVoter,
			"one session exists and it has been voted in")
	})

	t.Run("vote within an hour of voting open earns social_butterfly", func(t *testing.T) {
		m, svc := newAchievementFixture()
		svc.now = func() time.Time { return time.Date(2026, 5, 28, 9, 30, 0, 0, time.UTC) }
		_, err := voteStore{m}.Upsert(ctx, domain.Vote{TopicID: 100, ParticipantID: 2, BOFSessionID: 10})
		require.NoError(t, err)

		awarded, err := svc.EvaluateVoteCast(ctx, 2, 10, 100)

		require.NoError(t, err)
		assert.Contains(t, awarded, domain.AchievementSocialButterfly)
	})

	t.Run("late night vote earns night_owl, dawn vote earns early_bird", func(t *testing.T) {
		m, svc := newAchievementFixture()
		_, err := voteStore{m}.Upsert(ctx, domain.Vote{TopicID: 100, ParticipantID: 2, BOFSessionID: 10})
		require.NoError(t, err)

		svc.now = func() time.Time { return time.Date(2026, 5, 28, 23, 15, 0, 0, time.UTC) }
		awarded, err := svc.EvaluateVoteCast(ctx, 2, 10, 100)
		require.NoError(t, err)
		assert.Contains(t, awarded, domain.AchievementNightOwl)
		assert.NotContains(t, awarded, domain.AchievementEarlyBird)

		svc.now = func() time.Time { return time.Date(2026, 5, 29, 7, 0, 0, 0, time.UTC) }
		awarded, err = svc.EvaluateVoteCast(ctx, 2, 10, 100)
		require.NoError(t, err)
		assert.Contains(t, awarded, domain.AchievementEarlyBird)
	})

	t.Run("popular topic credits the author, not the voter", func(t *testing.T) {
		m, svc := newAchievementFixture()
		for i := uint(0); i < 10; i++ {
			voterID := 20 + i
			m.addParticipant(domain.Participant{ID: voterID, Name: "Voter"})
			_, err := voteStore{m}.Upsert(ctx, domain.Vote{TopicID: 100, ParticipantID: voterID, BOFSessionID: 10})
			require.NoError(t, err)
		}

		_, err := svc.EvaluateVoteCast(ctx, 29, 10, 100)
		require.NoError(t, err)

		assert.Contains(t, earnedCodes(t, m, 1), domain.AchievementPopularTopic)
		assert.NotContains(t, earnedCodes(t, m, 29), domain.AchievementPopularTopic)
	})

	t.Run("re-evaluation never awards twice", func(t *testing.T) {
		m, svc := newAchievementFixture()
		_, err := voteStore{m}.Upsert(ctx, domain.Vote{TopicID: 100, ParticipantID: 2, BOFSessionID: 10})
		require.NoError(t, err)

		_, err = svc.EvaluateVoteCast(ctx, 2, 10, 100)
		require.NoError(t, err)
		before := earnedCodes(t, m, 2)

		_, err = svc.EvaluateVoteCast(ctx, 2, 10, 100)
		require.NoError(t, err)

		assert.Equal(t, before, earnedCodes(t, m, 2))
	})
}

func TestAchievementService_EvaluateTopicCreated(t *testing.T) {
	ctx := context.Background()

	t.Run("first topic in a session earns first_topic", func(t *testing.T) {
		_, svc := newAchievementFixture()

		awarded, err := svc.EvaluateTopicCreated(ctx, 1, 10)

		require.NoError(t, err)
		assert.Contains(t, awarded, domain.AchievementFirstTopic)
	})

	t.Run("three visible topics earn topic_creator", func(t *testing.T) {
		m, svc := newAchievementFixture()
		m.addSession(domain.BOFSession{ID: 11})
		m.addSession(domain.BOFSession{ID: 12})
		m.addTopic(domain.Topic{BOFSessionID: 11, ParticipantID: 1, Title: "Second one"})
		m.addTopic(domain.Topic{BOFSessionID: 12, ParticipantID: 1, Title: "Third one"})

		awarded, err := svc.EvaluateTopicCreated(ctx, 1, 12)

		require.NoError(t, err)
		assert.Contains(t, awarded, domain.AchievementTopicCreator)
	})

	t.Run("hidden topics do not count toward topic_creator", func(t *testing.T) {
		m, svc := newAchievementFixture()
		m.addSession(domain.BOFSession{ID: 11})
		m.addSession(domain.BOFSession{ID: 12})
		m.addTopic(domain.Topic{BOFSessionID: 11, ParticipantID: 1, Title: "Second one"})
		m.addTopic(domain.Topic{BOFSessionID: 12, ParticipantID: 1, Title: "Third one", IsHidden: true})

		awarded, err := svc.EvaluateTopicCreated(ctx, 1, 12)

		require.NoError(t, err)
		assert.NotContains(t, awarded, domain.AchievementTopicCreator)
	})
}

func TestAchievementService_TotalPoints(t *testing.T) {
	ctx := context.Background()
	m, svc := newAchievementFixture()

	points, err := svc.TotalPoints(ctx, 2)
	require.NoError(t, err)
	assert.Zero(t, points)

	store := achievementStore{m}
	require.NoError(t, store.Award(ctx, 2, 1)) // first_voter, 50
	require.NoError(t, store.Award(ctx, 2, 3)) // active_voter, 100
	require.NoError(t, store.Award(ctx, 2, 3)) // duplicate, ignored

	points, err = svc.TotalPoints(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 150, points)
}
