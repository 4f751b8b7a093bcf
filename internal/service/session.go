package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/craftconf/bof-api/internal/domain"
	"github.com/craftconf/bof-api/internal/repository"
)

type SessionLookupRepository interface {
	FindByID(ctx context.Context, id uint) (domain.BOFSession, error)
	FindAll(ctx context.Context) ([]domain.BOFSession, error)
}

// SessionService is the read-only registry of BOF sessions.
type SessionService struct {
	repo SessionLookupRepository
}

func NewSessionService(repo SessionLookupRepository) *SessionService {
	return &SessionService{
		repo: repo,
	}
}

func (s *SessionService) List(ctx context.Context) ([]domain.BOFSession, error) {
	sessions, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return sessions, nil
}

func (s *SessionService) GetByID(ctx context.Context, id uint) (domain.BOFSession, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return domain.BOFSession{}, ErrSessionNotFound
		}

		return domain.BOFSession{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return session, nil
}
