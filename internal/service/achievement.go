package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/craftconf/bof-api/internal/domain"
)

type AchievementStore interface {
	FindAll(ctx context.Context) ([]domain.Achievement, error)
	FindByCode(ctx context.Context, code string) (domain.Achievement, error)
	Award(ctx context.Context, participantID, achievementID uint) error
	FindByParticipant(ctx context.Context, participantID uint) ([]domain.ParticipantAchievement, error)
}

type AchievementVoteCounter interface {
	CountBySession(ctx context.Context, sessionID uint) (int64, error)
	CountSessionsVoted(ctx context.Context, participantID uint) (int64, error)
}

type AchievementTopicCounter interface {
	CountBySession(ctx context.Context, sessionID uint) (int64, error)
	CountVisibleByAuthor(ctx context.Context, participantID uint) (int64, error)
}

type AchievementSessionRepository interface {
	FindByID(ctx context.Context, id uint) (domain.BOFSession, error)
	Count(ctx context.Context) (int64, error)
}

type AchievementTopicView interface {
	GetTopicDetails(ctx context.Context, topicID uint) (domain.TopicDetails, error)
}

// AchievementService evaluates badge rules after ledger and topic-store
// mutations. Every award is an idempotent upsert; re-earning a badge is
// a no-op. Total points are always summed from earned rows, never
// stored.
type AchievementService struct {
	store    AchievementStore
	votes    AchievementVoteCounter
	topics   AchievementTopicCounter
	sessions AchievementSessionRepository
	view     AchievementTopicView

	now func() time.Time
}

func NewAchievementService(
	store AchievementStore,
	votes AchievementVoteCounter,
	topics AchievementTopicCounter,
	sessions AchievementSessionRepository,
	view AchievementTopicView,
) *AchievementService {
	return &AchievementService{
		store:    store,
		votes:    votes,
		topics:   topics,
		sessions: sessions,
		view:     view,
		now:      time.Now,
	}
}

// EvaluateVoteCast runs every vote-triggered badge rule. Each check is
// independent; a failing check is logged and skipped so one bad rule
// never blocks the rest.
func (s *AchievementService) EvaluateVoteCast(ctx context.Context, participantID, sessionID, topicID uint) ([]string, error) {
	var awarded []string

	sessionVotes, err := s.votes.CountBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("s.votes.CountBySession -> %w", err)
	}
	if sessionVotes == 1 {
		awarded = s.award(ctx, participantID, domain.AchievementFirstVoter, awarded)
	}

	sessionsVoted, err := s.votes.CountSessionsVoted(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("s.votes.CountSessionsVoted -> %w", err)
	}
	totalSessions, err := s.sessions.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.sessions.Count -> %w", err)
	}
	if totalSessions > 0 && sessionsVoted == totalSessions {
		awarded = s.award(ctx, participantID, domain.AchievementActiveVoter, awarded)
	}

	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("s.sessions.FindByID -> %w", err)
	}
	if session.VotingOpensAt != nil {
		sinceOpen := s.now().Sub(*session.VotingOpensAt)
		if sinceOpen >= 0 && sinceOpen < time.Hour {
			awarded = s.award(ctx, participantID, domain.AchievementSocialButterfly, awarded)
		}
	}

	hour := s.now().Hour()
	switch {
	case hour >= 22 || hour < 6:
		awarded = s.award(ctx, participantID, domain.AchievementNightOwl, awarded)
	case hour < 8:
		awarded = s.award(ctx, participantID, domain.AchievementEarlyBird, awarded)
	}

	details, err := s.view.GetTopicDetails(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("s.view.GetTopicDetails -> %w", err)
	}
	if details.VoteCount >= 10 {
		awarded = s.award(ctx, details.AuthorID, domain.AchievementPopularTopic, awarded)
	}
	if details.Rank >= 1 && details.Rank <= 5 {
		awarded = s.award(ctx, details.AuthorID, domain.AchievementTopFive, awarded)
	}

	return awarded, nil
}

// EvaluateTopicCreated runs the topic-triggered badge rules.
func (s *AchievementService) EvaluateTopicCreated(ctx context.Context, participantID, sessionID uint) ([]string, error) {
	var awarded []string

	sessionTopics, err := s.topics.CountBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("s.topics.CountBySession -> %w", err)
	}
	if sessionTopics == 1 {
		awarded = s.award(ctx, participantID, domain.AchievementFirstTopic, awarded)
	}

	authored, err := s.topics.CountVisibleByAuthor(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("s.topics.CountVisibleByAuthor -> %w", err)
	}
	if authored >= 3 {
		awarded = s.award(ctx, participantID, domain.AchievementTopicCreator, awarded)
	}

	return awarded, nil
}

func (s *AchievementService) ListCatalog(ctx context.Context) ([]domain.Achievement, error) {
	achievements, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.store.FindAll -> %w", err)
	}

	return achievements, nil
}

func (s *AchievementService) ListByParticipant(ctx context.Context, participantID uint) ([]domain.ParticipantAchievement, error) {
	earned, err := s.store.FindByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("s.store.FindByParticipant -> %w", err)
	}

	return earned, nil
}

// TotalPoints derives the participant's score from earned rows.
func (s *AchievementService) TotalPoints(ctx context.Context, participantID uint) (int, error) {
	earned, err := s.store.FindByParticipant(ctx, participantID)
	if err != nil {
		return 0, fmt.Errorf("s.store.FindByParticipant -> %w", err)
	}

	total := 0
	for _, pa := range earned {
		total += pa.Achievement.Points
	}

	return total, nil
}

func (s *AchievementService) award(ctx context.Context, participantID uint, code string, awarded []string) []string {
	achievement, err := s.store.FindByCode(ctx, code)
	if err != nil {
		zap.L().Warn("unknown achievement code", zap.String("code", code), zap.Error(err))
		return awarded
	}

	if err = s.store.Award(ctx, participantID, achievement.ID); err != nil {
		zap.L().Warn("failed to award achievement",
			zap.String("code", code), zap.Uint("participant_id", participantID), zap.Error(err))
		return awarded
	}

	return append(awarded, code)
}
