package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/craftconf/bof-api/internal/domain"
	"github.com/craftconf/bof-api/internal/repository"
)

var ErrParticipantEmailExists = repository.ErrParticipantEmailExists

type ParticipantRepository interface {
	Create(ctx context.Context, participant domain.Participant) (domain.Participant, error)
	FindByID(ctx context.Context, id uint) (domain.Participant, error)
	FindAll(ctx context.Context) ([]domain.Participant, error)
	SetBlocked(ctx context.Context, id uint, blocked bool) error
}

// ParticipantService handles the admin-facing participant management.
type ParticipantService struct {
	repo ParticipantRepository
}

func NewParticipantService(repo ParticipantRepository) *ParticipantService {
	return &ParticipantService{
		repo: repo,
	}
}

// Create registers a participant and mints their QR auth token. The
// token is immutable for the participant's lifetime.
func (s *ParticipantService) Create(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	if participant.Role == "" {
		participant.Role = domain.RoleParticipant
	}
	participant.AuthToken = uuid.NewString()

	created, err := s.repo.Create(ctx, participant)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantEmailExists) {
			return domain.Participant{}, ErrParticipantEmailExists
		}

		return domain.Participant{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ParticipantService) GetByID(ctx context.Context, id uint) (domain.Participant, error) {
	participant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return domain.Participant{}, ErrParticipantNotFound
		}

		return domain.Participant{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return participant, nil
}

func (s *ParticipantService) List(ctx context.Context) ([]domain.Participant, error) {
	participants, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return participants, nil
}

func (s *ParticipantService) SetBlocked(ctx context.Context, id uint, blocked bool) error {
	if err := s.repo.SetBlocked(ctx, id, blocked); err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return ErrParticipantNotFound
		}

		return fmt.Errorf("s.repo.SetBlocked -> %w", err)
	}

	return nil
}
