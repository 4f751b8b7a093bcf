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
	ErrSessionNotFound     = repository.ErrSessionNotFound
	ErrParticipantNotFound = repository.ErrParticipantNotFound
	ErrAlreadyCreatedTopic = errors.New("participant already created a topic in this session")
	ErrForbidden           = errors.New("caller may not modify this topic")
)

// CreationPolicy decides whether the one-topic-per-session constraint
// applies. Admins may seed multiple topics in a session; that bypass
// also skips the cascade-clear of the admin's own vote.
type CreationPolicy int

const (
	CreationStrict CreationPolicy = iota
	CreationAdminOverride
)

func PolicyForRole(role string) CreationPolicy {
	if role == domain.RoleAdmin {
		return CreationAdminOverride
	}

	return CreationStrict
}

type TopicStoreRepository interface {
	Create(ctx context.Context, topic domain.Topic, clearAuthorVotes bool) (domain.Topic, error)
	FindByID(ctx context.Context, id uint) (domain.TopicWithAuthor, error)
	FindByAuthorAndSession(ctx context.Context, participantID, sessionID uint) (domain.Topic, error)
	Update(ctx context.Context, id uint, title, description string) (domain.Topic, error)
	SetHidden(ctx context.Context, id uint, hidden bool) error
	Delete(ctx context.Context, id uint) error
	Move(ctx context.Context, id, targetSessionID uint) error
}

type TopicParticipantRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Participant, error)
}

type TopicSessionRepository interface {
	FindByID(ctx context.Context, id uint) (domain.BOFSession, error)
}

type TopicAchievementEvaluator interface {
	EvaluateTopicCreated(ctx context.Context, participantID, sessionID uint) ([]string, error)
}

type TopicService struct {
	topics       TopicStoreRepository
	participants TopicParticipantRepository
	sessions     TopicSessionRepository
	achievements TopicAchievementEvaluator
	analytics    AnalyticsRecorder
	notifier     Notifier
}

func NewTopicService(
	topics TopicStoreRepository,
	participants TopicParticipantRepository,
	sessions TopicSessionRepository,
	achievements TopicAchievementEvaluator,
	analytics AnalyticsRecorder,
	notifier Notifier,
) *TopicService {
	return &TopicService{
		topics:       topics,
		participants: participants,
		sessions:     sessions,
		achievements: achievements,
		analytics:    analytics,
		notifier:     notifier,
	}
}

// Create proposes a topic. Under CreationStrict a second topic in the
// same session is rejected and the author's existing vote in the
// session is cleared transactionally with the insert: once you lead a
// topic you are no longer joined to someone else's.
func (s *TopicService) Create(ctx context.Context, participantID, sessionID uint, title, description string) (domain.Topic, error) {
	author, err := s.participants.FindByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return domain.Topic{}, ErrParticipantNotFound
		}

		return domain.Topic{}, fmt.Errorf("s.participants.FindByID -> %w", err)
	}

	if _, err = s.sessions.FindByID(ctx, sessionID); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return domain.Topic{}, ErrSessionNotFound
		}

		return domain.Topic{}, fmt.Errorf("s.sessions.FindByID -> %w", err)
	}

	policy := PolicyForRole(author.Role)

	if policy == CreationStrict {
		_, err = s.topics.FindByAuthorAndSession(ctx, participantID, sessionID)
		if err == nil {
			return domain.Topic{}, ErrAlreadyCreatedTopic
		}
		if !errors.Is(err, repository.ErrTopicNotFound) {
			return domain.Topic{}, fmt.Errorf("s.topics.FindByAuthorAndSession -> %w", err)
		}
	}

	created, err := s.topics.Create(ctx, domain.Topic{
		BOFSessionID:  sessionID,
		ParticipantID: participantID,
		Title:         title,
		Description:   description,
	}, policy == CreationStrict)
	if err != nil {
		return domain.Topic{}, fmt.Errorf("s.topics.Create -> %w", err)
	}

	if s.analytics != nil {
		if err := s.analytics.Record(ctx, domain.AnalyticsEvent{
			ParticipantID: participantID,
			EventType:     domain.EventTopicCreated,
			EventData: map[string]any{
				"topic_id":       created.ID,
				"bof_session_id": sessionID,
			},
		}); err != nil {
			zap.L().Warn("failed to record topic analytics", zap.Error(err))
		}
	}

	if s.achievements != nil {
		awarded, err := s.achievements.EvaluateTopicCreated(ctx, participantID, sessionID)
		if err != nil {
			zap.L().Warn("achievement evaluation failed after topic create",
				zap.Uint("participant_id", participantID), zap.Error(err))
		} else if len(awarded) > 0 {
			s.notifier.LeaderboardChanged()
		}
	}

	s.notifier.TopicsChanged(sessionID)
	// Creating a topic may have cleared the author's vote.
	s.notifier.VotesChanged(sessionID)

	return created, nil
}

// Update edits title/description. The caller must be the author or an
// admin.
func (s *TopicService) Update(ctx context.Context, caller domain.Participant, topicID uint, title, description string) (domain.Topic, error) {
	topic, err := s.topics.FindByID(ctx, topicID)
	if err != nil {
		if errors.Is(err, repository.ErrTopicNotFound) {
			return domain.Topic{}, ErrTopicNotFound
		}

		return domain.Topic{}, fmt.Errorf("s.topics.FindByID -> %w", err)
	}

	if !caller.IsAdmin() && caller.ID != topic.ParticipantID {
		return domain.Topic{}, ErrForbidden
	}

	updated, err := s.topics.Update(ctx, topicID, title, description)
	if err != nil {
		return domain.Topic{}, fmt.Errorf("s.topics.Update -> %w", err)
	}

	s.notifier.TopicsChanged(topic.BOFSessionID)

	return updated, nil
}

// Delete removes the topic and cascades the delete to its votes.
func (s *TopicService) Delete(ctx context.Context, caller domain.Participant, topicID uint) error {
	topic, err := s.topics.FindByID(ctx, topicID)
	if err != nil {
		if errors.Is(err, repository.ErrTopicNotFound) {
			return ErrTopicNotFound
		}

		return fmt.Errorf("s.topics.FindByID -> %w", err)
	}

	if !caller.IsAdmin() && caller.ID != topic.ParticipantID {
		return ErrForbidden
	}

	if err = s.topics.Delete(ctx, topicID); err != nil {
		return fmt.Errorf("s.topics.Delete -> %w", err)
	}

	s.notifier.TopicsChanged(topic.BOFSessionID)
	s.notifier.VotesChanged(topic.BOFSessionID)

	return nil
}

// SetHidden soft-moderates a topic without deleting it or its votes.
func (s *TopicService) SetHidden(ctx context.Context, topicID uint, hidden bool) error {
	topic, err := s.topics.FindByID(ctx, topicID)
	if err != nil {
		if errors.Is(err, repository.ErrTopicNotFound) {
			return ErrTopicNotFound
		}

		return fmt.Errorf("s.topics.FindByID -> %w", err)
	}

	if err = s.topics.SetHidden(ctx, topicID, hidden); err != nil {
		return fmt.Errorf("s.topics.SetHidden -> %w", err)
	}

	s.notifier.TopicsChanged(topic.BOFSessionID)

	return nil
}

// Move reassigns the topic to another session, repointing its votes in
// the same transaction.
func (s *TopicService) Move(ctx context.Context, topicID, targetSessionID uint) error {
	topic, err := s.topics.FindByID(ctx, topicID)
	if err != nil {
		if errors.Is(err, repository.ErrTopicNotFound) {
			return ErrTopicNotFound
		}

		return fmt.Errorf("s.topics.FindByID -> %w", err)
	}

	if _, err = s.sessions.FindByID(ctx, targetSessionID); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return ErrSessionNotFound
		}

		return fmt.Errorf("s.sessions.FindByID -> %w", err)
	}

	if err = s.topics.Move(ctx, topicID, targetSessionID); err != nil {
		return fmt.Errorf("s.topics.Move -> %w", err)
	}

	s.notifier.TopicsChanged(topic.BOFSessionID)
	s.notifier.TopicsChanged(targetSessionID)
	s.notifier.VotesChanged(topic.BOFSessionID)
	s.notifier.VotesChanged(targetSessionID)

	return nil
}
