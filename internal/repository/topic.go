package repository

import (
	"context"
	"fmt"

	"github.com/craftconf/bof-api/internal/domain"
	"github.com/craftconf/bof-api/internal/repository/dao"
)

var ErrTopicNotFound = dao.ErrTopicNotFound

type TopicDAO interface {
	Insert(ctx context.Context, topic dao.Topic, clearAuthorVotes bool) (dao.Topic, error)
	FindByID(ctx context.Context, id uint) (dao.Topic, error)
	FindByAuthorAndSession(ctx context.Context, participantID, sessionID uint) (dao.Topic, error)
	FindBySession(ctx context.Context, sessionID uint) ([]dao.Topic, error)
	FindByAuthor(ctx context.Context, participantID uint) ([]dao.Topic, error)
	Update(ctx context.Context, id uint, title, description string) (dao.Topic, error)
	SetHidden(ctx context.Context, id uint, hidden bool) error
	Delete(ctx context.Context, id uint) error
	Move(ctx context.Context, id, targetSessionID uint) error
	CountBySession(ctx context.Context, sessionID uint) (int64, error)
	CountVisibleByAuthor(ctx context.Context, participantID uint) (int64, error)
}

type TopicRepository struct {
	dao TopicDAO
}

func NewTopicRepository(dao TopicDAO) *TopicRepository {
	return &TopicRepository{
		dao: dao,
	}
}

// Create inserts the topic; clearAuthorVotes removes the author's
// existing vote in the session within the same transaction.
func (r *TopicRepository) Create(ctx context.Context, topic domain.Topic, clearAuthorVotes bool) (domain.Topic, error) {
	created, err := r.dao.Insert(ctx, dao.Topic{
		BOFSessionID:  topic.BOFSessionID,
		ParticipantID: topic.ParticipantID,
		Title:         topic.Title,
		Description:   topic.Description,
	}, clearAuthorVotes)
	if err != nil {
		return domain.Topic{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *TopicRepository) FindByID(ctx context.Context, id uint) (domain.TopicWithAuthor, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.TopicWithAuthor{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomainWithAuthor(found), nil
}

func (r *TopicRepository) FindByAuthorAndSession(ctx context.Context, participantID, sessionID uint) (domain.Topic, error) {
	found, err := r.dao.FindByAuthorAndSession(ctx, participantID, sessionID)
	if err != nil {
		return domain.Topic{}, fmt.Errorf("r.dao.FindByAuthorAndSession -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TopicRepository) FindBySession(ctx context.Context, sessionID uint) ([]domain.TopicWithAuthor, error) {
	found, err := r.dao.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBySession -> %w", err)
	}

	topics := make([]domain.TopicWithAuthor, 0, len(found))
	for _, t := range found {
		topics = append(topics, r.daoToDomainWithAuthor(t))
	}

	return topics, nil
}

func (r *TopicRepository) FindByAuthor(ctx context.Context, participantID uint) ([]domain.TopicWithAuthor, error) {
	found, err := r.dao.FindByAuthor(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByAuthor -> %w", err)
	}

	topics := make([]domain.TopicWithAuthor, 0, len(found))
	for _, t := range found {
		topics = append(topics, r.daoToDomainWithAuthor(t))
	}

	return topics, nil
}

func (r *TopicRepository) Update(ctx context.Context, id uint, title, description string) (domain.Topic, error) {
	updated, err := r.dao.Update(ctx, id, title, description)
	if err != nil {
		return domain.Topic{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *TopicRepository) SetHidden(ctx context.Context, id uint, hidden bool) error {
	if err := r.dao.SetHidden(ctx, id, hidden); err != nil {
		return fmt.Errorf("r.dao.SetHidden -> %w", err)
	}

	return nil
}

func (r *TopicRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *TopicRepository) Move(ctx context.Context, id, targetSessionID uint) error {
	if err := r.dao.Move(ctx, id, targetSessionID); err != nil {
		return fmt.Errorf("r.dao.Move -> %w", err)
	}

	return nil
}

func (r *TopicRepository) CountBySession(ctx context.Context, sessionID uint) (int64, error) {
	count, err := r.dao.CountBySession(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountBySession -> %w", err)
	}

	return count, nil
}

func (r *TopicRepository) CountVisibleByAuthor(ctx context.Context, participantID uint) (int64, error) {
	count, err := r.dao.CountVisibleByAuthor(ctx, participantID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountVisibleByAuthor -> %w", err)
	}

	return count, nil
}

func (r *TopicRepository) daoToDomain(t dao.Topic) domain.Topic {
	return domain.Topic{
		ID:            t.ID,
		BOFSessionID:  t.BOFSessionID,
		ParticipantID: t.ParticipantID,
		Title:         t.Title,
		Description:   t.Description,
		IsHidden:      t.IsHidden,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func (r *TopicRepository) daoToDomainWithAuthor(t dao.Topic) domain.TopicWithAuthor {
	return domain.TopicWithAuthor{
		Topic: r.daoToDomain(t),
		Author: domain.Participant{
			ID:        t.Author.ID,
			Name:      t.Author.Name,
			Email:     t.Author.Email,
			Company:   t.Author.Company,
			AvatarURL: t.Author.AvatarURL,
			IsVIP:     t.Author.IsVIP,
			Role:      t.Author.Role,
		},
	}
}
