package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/craftconf/bof-api/internal/domain"
	"github.com/craftconf/bof-api/internal/repository"
)

var (
	ErrTopicNotFound        = repository.ErrTopicNotFound
	ErrVoteNotFound         = repository.ErrVoteNotFound
	ErrCannotVoteOwnTopic   = errors.New("cannot vote for own topic")
	ErrTopicSessionMismatch = errors.New("topic does not belong to session")
)

type VoteTopicRepository interface {
	FindByID(ctx context.Context, id uint) (domain.TopicWithAuthor, error)
}

type VoteLedgerRepository interface {
	Upsert(ctx context.Context, vote domain.Vote) (domain.Vote, error)
	FindByParticipantAndSession(ctx context.Context, participantID, sessionID uint) (domain.Vote, error)
	FindByParticipant(ctx context.Context, participantID uint) ([]domain.Vote, error)
}

type VoteAchievementEvaluator interface {
	EvaluateVoteCast(ctx context.Context, participantID, sessionID, topicID uint) ([]string, error)
}

type VoteService struct {
	votes        VoteLedgerRepository
	topics       VoteTopicRepository
	achievements VoteAchievementEvaluator
	analytics    AnalyticsRecorder
	notifier     Notifier
}

func NewVoteService(
	votes VoteLedgerRepository,
	topics VoteTopicRepository,
	achievements VoteAchievementEvaluator,
	analytics AnalyticsRecorder,
	notifier Notifier,
) *VoteService {
	return &VoteService{
		votes:        votes,
		topics:       topics,
		achievements: achievements,
		analytics:    analytics,
		notifier:     notifier,
	}
}

// Cast records or moves the participant's single vote for the session.
// Voting for a topic you authored is rejected: leading a topic and
// joining one are mutually exclusive. The underlying write is an atomic
// upsert keyed by (participant, session), so a double-tapped cast lands
// on one row.
func (s *VoteService) Cast(ctx context.Context, participantID, topicID, sessionID uint) (domain.Vote, error) {
	topic, err := s.topics.FindByID(ctx, topicID)
	if err != nil {
		if errors.Is(err, repository.ErrTopicNotFound) {
			return domain.Vote{}, ErrTopicNotFound
		}

		return domain.Vote{}, fmt.Errorf("s.topics.FindByID -> %w", err)
	}

	if topic.ParticipantID == participantID {
		return domain.Vote{}, ErrCannotVoteOwnTopic
	}

	if topic.BOFSessionID != sessionID {
		return domain.Vote{}, ErrTopicSessionMismatch
	}

	vote, err := s.votes.Upsert(ctx, domain.Vote{
		TopicID:       topicID,
		ParticipantID: participantID,
		BOFSessionID:  sessionID,
	})
	if err != nil {
		return domain.Vote{}, fmt.Errorf("s.votes.Upsert -> %w", err)
	}

	if s.analytics != nil {
		if err := s.analytics.Record(ctx, domain.AnalyticsEvent{
			ParticipantID: participantID,
			EventType:     domain.EventVoteCast,
			EventData: map[string]any{
				"topic_id":       topicID,
				"bof_session_id": sessionID,
			},
		}); err != nil {
			zap.L().Warn("failed to record vote analytics", zap.Error(err))
		}
	}

	if s.achievements != nil {
		awarded, err := s.achievements.EvaluateVoteCast(ctx, participantID, sessionID, topicID)
		if err != nil {
			zap.L().Warn("achievement evaluation failed after vote cast",
				zap.Uint("participant_id", participantID), zap.Error(err))
		} else if len(awarded) > 0 {
			s.notifier.LeaderboardChanged()
		}
	}

	s.notifier.VotesChanged(sessionID)

	return vote, nil
}

// GetUserVote returns the participant's active vote in the session, or
// ErrVoteNotFound when they have none.
func (s *VoteService) GetUserVote(ctx context.Context, participantID, sessionID uint) (domain.Vote, error) {
	vote, err := s.votes.FindByParticipantAndSession(ctx, participantID, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrVoteNotFound) {
			return domain.Vote{}, ErrVoteNotFound
		}

		return domain.Vote{}, fmt.Errorf("s.votes.FindByParticipantAndSession -> %w", err)
	}

	return vote, nil
}

func (s *VoteService) ListByParticipant(ctx context.Context, participantID uint) ([]domain.Vote, error) {
	votes, err := s.votes.FindByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("s.votes.FindByParticipant -> %w", err)
	}

	return votes, nil
}
