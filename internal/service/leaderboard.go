package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/craftconf/bof-api/internal/domain"
)

type LeaderboardParticipantRepository interface {
	FindAll(ctx context.Context) ([]domain.Participant, error)
}

type LeaderboardVoteCounter interface {
	CountByParticipant(ctx context.Context, participantID uint) (int64, error)
	CountReceivedByAuthor(ctx context.Context, participantID uint) (int64, error)
}

type LeaderboardTopicCounter interface {
	CountVisibleByAuthor(ctx context.Context, participantID uint) (int64, error)
}

type LeaderboardAchievementReader interface {
	FindByParticipant(ctx context.Context, participantID uint) ([]domain.ParticipantAchievement, error)
}

// LeaderboardService assembles per-participant stats. Everything is
// derived at read time from the ledger, topics and earned achievements.
type LeaderboardService struct {
	participants LeaderboardParticipantRepository
	votes        LeaderboardVoteCounter
	topics       LeaderboardTopicCounter
	achievements LeaderboardAchievementReader
}

func NewLeaderboardService(
	participants LeaderboardParticipantRepository,
	votes LeaderboardVoteCounter,
	topics LeaderboardTopicCounter,
	achievements LeaderboardAchievementReader,
) *LeaderboardService {
	return &LeaderboardService{
		participants: participants,
		votes:        votes,
		topics:       topics,
		achievements: achievements,
	}
}

// Leaderboard ranks participants by total points, then votes received,
// then topics created.
func (s *LeaderboardService) Leaderboard(ctx context.Context) ([]domain.ParticipantStats, error) {
	participants, err := s.participants.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.participants.FindAll -> %w", err)
	}

	stats := make([]domain.ParticipantStats, 0, len(participants))
	for _, p := range participants {
		row, err := s.statsFor(ctx, p)
		if err != nil {
			return nil, err
		}
		stats = append(stats, row)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].TotalPoints != stats[j].TotalPoints {
			return stats[i].TotalPoints > stats[j].TotalPoints
		}
		if stats[i].VotesReceived != stats[j].VotesReceived {
			return stats[i].VotesReceived > stats[j].VotesReceived
		}

		return stats[i].TopicsCreated > stats[j].TopicsCreated
	})
	for i := range stats {
		stats[i].Rank = i + 1
	}

	return stats, nil
}

func (s *LeaderboardService) statsFor(ctx context.Context, p domain.Participant) (domain.ParticipantStats, error) {
	topicsCreated, err := s.topics.CountVisibleByAuthor(ctx, p.ID)
	if err != nil {
		return domain.ParticipantStats{}, fmt.Errorf("s.topics.CountVisibleByAuthor -> %w", err)
	}

	votesCast, err := s.votes.CountByParticipant(ctx, p.ID)
	if err != nil {
		return domain.ParticipantStats{}, fmt.Errorf("s.votes.CountByParticipant -> %w", err)
	}

	votesReceived, err := s.votes.CountReceivedByAuthor(ctx, p.ID)
	if err != nil {
		return domain.ParticipantStats{}, fmt.Errorf("s.votes.CountReceivedByAuthor -> %w", err)
	}

	earned, err := s.achievements.FindByParticipant(ctx, p.ID)
	if err != nil {
		return domain.ParticipantStats{}, fmt.Errorf("s.achievements.FindByParticipant -> %w", err)
	}

	totalPoints := 0
	for _, pa := range earned {
		totalPoints += pa.Achievement.Points
	}

	return domain.ParticipantStats{
		Participant:       p,
		TopicsCreated:     int(topicsCreated),
		VotesCast:         int(votesCast),
		VotesReceived:     int(votesReceived),
		AchievementsCount: len(earned),
		TotalPoints:       totalPoints,
	}, nil
}
