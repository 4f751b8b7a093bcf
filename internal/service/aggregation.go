package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/craftconf/bof-api/internal/domain"
	"github.com/craftconf/bof-api/internal/repository"
)

type AggregationTopicRepository interface {
	FindByID(ctx context.Context, id uint) (domain.TopicWithAuthor, error)
	FindBySession(ctx context.Context, sessionID uint) ([]domain.TopicWithAuthor, error)
	FindByAuthor(ctx context.Context, participantID uint) ([]domain.TopicWithAuthor, error)
}

type AggregationVoteRepository interface {
	FindBySession(ctx context.Context, sessionID uint) ([]domain.VoteWithVoter, error)
}

// AggregationService derives the read-side topic view: vote counts,
// display ranks and member lists. It holds no state of its own and
// recomputes on every call.
type AggregationService struct {
	topics AggregationTopicRepository
	votes  AggregationVoteRepository
}

func NewAggregationService(topics AggregationTopicRepository, votes AggregationVoteRepository) *AggregationService {
	return &AggregationService{
		topics: topics,
		votes:  votes,
	}
}

// ListTopicDetails computes the view for every topic in the session.
// Hidden topics are excluded unless includeHidden is set (admin
// moderation); they never take part in ranking either way.
func (s *AggregationService) ListTopicDetails(ctx context.Context, sessionID uint, includeHidden bool) ([]domain.TopicDetails, error) {
	topics, err := s.topics.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("s.topics.FindBySession -> %w", err)
	}

	votes, err := s.votes.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("s.votes.FindBySession -> %w", err)
	}

	votesByTopic := make(map[uint][]domain.VoteWithVoter)
	for _, v := range votes {
		votesByTopic[v.TopicID] = append(votesByTopic[v.TopicID], v)
	}

	var visible, hidden []domain.TopicDetails
	for _, t := range topics {
		details := s.buildDetails(t, votesByTopic[t.ID])
		if t.IsHidden {
			hidden = append(hidden, details)
		} else {
			visible = append(visible, details)
		}
	}

	// Votes descending, earlier submission wins ties; position in this
	// order is the display rank.
	sort.SliceStable(visible, func(i, j int) bool {
		if visible[i].VoteCount != visible[j].VoteCount {
			return visible[i].VoteCount > visible[j].VoteCount
		}

		return visible[i].CreatedAt.Before(visible[j].CreatedAt)
	})
	for i := range visible {
		visible[i].Rank = i + 1
	}

	if includeHidden {
		return append(visible, hidden...), nil
	}

	return visible, nil
}

// GetTopicDetails computes the view for a single topic, ranked against
// the rest of its session.
func (s *AggregationService) GetTopicDetails(ctx context.Context, topicID uint) (domain.TopicDetails, error) {
	topic, err := s.topics.FindByID(ctx, topicID)
	if err != nil {
		if errors.Is(err, repository.ErrTopicNotFound) {
			return domain.TopicDetails{}, ErrTopicNotFound
		}

		return domain.TopicDetails{}, fmt.Errorf("s.topics.FindByID -> %w", err)
	}

	all, err := s.ListTopicDetails(ctx, topic.BOFSessionID, true)
	if err != nil {
		return domain.TopicDetails{}, err
	}

	for _, details := range all {
		if details.TopicID == topicID {
			return details, nil
		}
	}

	return domain.TopicDetails{}, ErrTopicNotFound
}

// ListTopicDetailsByAuthor returns the view for every topic the
// participant authored, hidden ones included, ranked within each
// topic's own session.
func (s *AggregationService) ListTopicDetailsByAuthor(ctx context.Context, participantID uint) ([]domain.TopicDetails, error) {
	topics, err := s.topics.FindByAuthor(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("s.topics.FindByAuthor -> %w", err)
	}

	bySession := make(map[uint][]domain.TopicDetails)
	var result []domain.TopicDetails
	for _, t := range topics {
		session, ok := bySession[t.BOFSessionID]
		if !ok {
			session, err = s.ListTopicDetails(ctx, t.BOFSessionID, true)
			if err != nil {
				return nil, err
			}
			bySession[t.BOFSessionID] = session
		}

		for _, details := range session {
			if details.TopicID == t.ID {
				result = append(result, details)
				break
			}
		}
	}

	return result, nil
}

func (s *AggregationService) buildDetails(topic domain.TopicWithAuthor, votes []domain.VoteWithVoter) domain.TopicDetails {
	voters := make([]domain.TopicMember, 0, len(votes))
	for _, v := range votes {
		voters = append(voters, domain.TopicMember{
			ID:      v.Voter.ID,
			Name:    v.Voter.Name,
			Company: v.Voter.Company,
			Avatar:  v.Voter.AvatarURL,
			IsVIP:   v.Voter.IsVIP,
		})
	}

	// The author has no vote row but is always "in" their own topic,
	// shown as Lead.
	joined := make([]domain.TopicMember, 0, len(voters)+1)
	joined = append(joined, domain.TopicMember{
		ID:      topic.Author.ID,
		Name:    topic.Author.Name,
		Company: topic.Author.Company,
		Avatar:  topic.Author.AvatarURL,
		IsVIP:   topic.Author.IsVIP,
		IsLead:  true,
	})
	joined = append(joined, voters...)

	sortMembers(voters)
	sortMembers(joined)

	return domain.TopicDetails{
		TopicID:       topic.ID,
		BOFSessionID:  topic.BOFSessionID,
		Title:         topic.Title,
		Description:   topic.Description,
		IsHidden:      topic.IsHidden,
		AuthorID:      topic.Author.ID,
		AuthorName:    topic.Author.Name,
		AuthorCompany: topic.Author.Company,
		AuthorAvatar:  topic.Author.AvatarURL,
		VoteCount:     len(voters),
		JoinedCount:   len(joined),
		Voters:        voters,
		JoinedUsers:   joined,
		CreatedAt:     topic.CreatedAt,
		UpdatedAt:     topic.UpdatedAt,
	}
}

// sortMembers orders a member list for display: VIPs first, then
// alphabetically.
func sortMembers(members []domain.TopicMember) {
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].IsVIP != members[j].IsVIP {
			return members[i].IsVIP
		}

		return members[i].Name < members[j].Name
	})
}
