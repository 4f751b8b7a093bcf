package repository

import (
	"context"
	"fmt"

	"github.com/craftconf/bof-api/internal/domain"
	"github.com/craftconf/bof-api/internal/repository/dao"
)

var ErrVoteNotFound = dao.ErrVoteNotFound

type VoteDAO interface {
	Upsert(ctx context.Context, vote dao.Vote) (dao.Vote, error)
	FindByParticipantAndSession(ctx context.Context, participantID, sessionID uint) (dao.Vote, error)
	FindByParticipant(ctx context.Context, participantID uint) ([]dao.Vote, error)
	FindBySession(ctx context.Context, sessionID uint) ([]dao.Vote, error)
	FindByTopic(ctx context.Context, topicID uint) ([]dao.Vote, error)
	CountBySession(ctx context.Context, sessionID uint) (int64, error)
	CountByParticipant(ctx context.Context, participantID uint) (int64, error)
	CountSessionsVoted(ctx context.Context, participantID uint) (int64, error)
	CountReceivedByAuthor(ctx context.Context, participantID uint) (int64, error)
}

type VoteRepository struct {
	dao VoteDAO
}

func NewVoteRepository(dao VoteDAO) *VoteRepository {
	return &VoteRepository{
		dao: dao,
	}
}

// Upsert casts or moves the participant's single vote for the session.
func (r *VoteRepository) Upsert(ctx context.Context, vote domain.Vote) (domain.Vote, error) {
	upserted, err := r.dao.Upsert(ctx, dao.Vote{
		TopicID:       vote.TopicID,
		ParticipantID: vote.ParticipantID,
		BOFSessionID:  vote.BOFSessionID,
	})
	if err != nil {
		return domain.Vote{}, fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return r.daoToDomain(upserted), nil
}

func (r *VoteRepository) FindByParticipantAndSession(ctx context.Context, participantID, sessionID uint) (domain.Vote, error) {
	found, err := r.dao.FindByParticipantAndSession(ctx, participantID, sessionID)
	if err != nil {
		return domain.Vote{}, fmt.Errorf("r.dao.FindByParticipantAndSession -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *VoteRepository) FindByParticipant(ctx context.Context, participantID uint) ([]domain.Vote, error) {
	found, err := r.dao.FindByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByParticipant -> %w", err)
	}

	votes := make([]domain.Vote, 0, len(found))
	for _, v := range found {
		votes = append(votes, r.daoToDomain(v))
	}

	return votes, nil
}

func (r *VoteRepository) FindBySession(ctx context.Context, sessionID uint) ([]domain.VoteWithVoter, error) {
	found, err := r.dao.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBySession -> %w", err)
	}

	votes := make([]domain.VoteWithVoter, 0, len(found))
	for _, v := range found {
		votes = append(votes, r.daoToDomainWithVoter(v))
	}

	return votes, nil
}

func (r *VoteRepository) FindByTopic(ctx context.Context, topicID uint) ([]domain.VoteWithVoter, error) {
	found, err := r.dao.FindByTopic(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByTopic -> %w", err)
	}

	votes := make([]domain.VoteWithVoter, 0, len(found))
	for _, v := range found {
		votes = append(votes, r.daoToDomainWithVoter(v))
	}

	return votes, nil
}

func (r *VoteRepository) CountBySession(ctx context.Context, sessionID uint) (int64, error) {
	count, err := r.dao.CountBySession(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountBySession -> %w", err)
	}

	return count, nil
}

func (r *VoteRepository) CountByParticipant(ctx context.Context, participantID uint) (int64, error) {
	count, err := r.dao.CountByParticipant(ctx, participantID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByParticipant -> %w", err)
	}

	return count, nil
}

func (r *VoteRepository) CountSessionsVoted(ctx context.Context, participantID uint) (int64, error) {
	count, err := r.dao.CountSessionsVoted(ctx, participantID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountSessionsVoted -> %w", err)
	}

	return count, nil
}

func (r *VoteRepository) CountReceivedByAuthor(ctx context.Context, participantID uint) (int64, error) {
	count, err := r.dao.CountReceivedByAuthor(ctx, participantID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountReceivedByAuthor -> %w", err)
	}

	return count, nil
}

func (r *VoteRepository) daoToDomain(v dao.Vote) domain.Vote {
	return domain.Vote{
		ID:            v.ID,
		TopicID:       v.TopicID,
		ParticipantID: v.ParticipantID,
		BOFSessionID:  v.BOFSessionID,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func (r *VoteRepository) daoToDomainWithVoter(v dao.Vote) domain.VoteWithVoter {
	return domain.VoteWithVoter{
		Vote: r.daoToDomain(v),
		Voter: domain.Participant{
			ID:        v.Participant.ID,
			Name:      v.Participant.Name,
			Email:     v.Participant.Email,
			Company:   v.Participant.Company,
			AvatarURL: v.Participant.AvatarURL,
			IsVIP:     v.Participant.IsVIP,
			Role:      v.Participant.Role,
		},
	}
}
