package repository

import (
	"context"
	"fmt"

	"github.com/craftconf/bof-api/internal/domain"
	"github.com/craftconf/bof-api/internal/repository/dao"
)

var ErrSessionNotFound = dao.ErrSessionNotFound

type BOFSessionDAO interface {
	Insert(ctx context.Context, session dao.BOFSession) (dao.BOFSession, error)
	FindByID(ctx context.Context, id uint) (dao.BOFSession, error)
	FindAll(ctx context.Context) ([]dao.BOFSession, error)
	Count(ctx context.Context) (int64, error)
}

type BOFSessionRepository struct {
	dao BOFSessionDAO
}

func NewBOFSessionRepository(dao BOFSessionDAO) *BOFSessionRepository {
	return &BOFSessionRepository{
		dao: dao,
	}
}

func (r *BOFSessionRepository) Create(ctx context.Context, session domain.BOFSession) (domain.BOFSession, error) {
	created, err := r.dao.Insert(ctx, dao.BOFSession{
		DayNumber:      session.DayNumber,
		SessionNumber:  session.SessionNumber,
		Title:          session.Title,
		Description:    session.Description,
		SessionTime:    session.SessionTime,
		VotingOpensAt:  session.VotingOpensAt,
		VotingClosesAt: session.VotingClosesAt,
		Status:         session.Status,
	})
	if err != nil {
		return domain.BOFSession{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *BOFSessionRepository) FindByID(ctx context.Context, id uint) (domain.BOFSession, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.BOFSession{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *BOFSessionRepository) FindAll(ctx context.Context) ([]domain.BOFSession, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	sessions := make([]domain.BOFSession, 0, len(found))
	for _, s := range found {
		sessions = append(sessions, r.daoToDomain(s))
	}

	return sessions, nil
}

func (r *BOFSessionRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return count, nil
}

func (r *BOFSessionRepository) daoToDomain(s dao.BOFSession) domain.BOFSession {
	return domain.BOFSession{
		ID:             s.ID,
		DayNumber:      s.DayNumber,
		SessionNumber:  s.SessionNumber,
		Title:          s.Title,
		Description:    s.Description,
		SessionTime:    s.SessionTime,
		VotingOpensAt:  s.VotingOpensAt,
		VotingClosesAt: s.VotingClosesAt,
		Status:         s.Status,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
