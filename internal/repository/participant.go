package repository

import (
	"context"
	"fmt"

	"github.com/craftconf/bof-api/internal/domain"
	"github.com/craftconf/bof-api/internal/repository/dao"
)

var (
	ErrParticipantNotFound    = dao.ErrParticipantNotFound
	ErrParticipantEmailExists = dao.ErrParticipantEmailExists
)

type ParticipantDAO interface {
	Insert(ctx context.Context, participant dao.Participant) (dao.Participant, error)
	FindByID(ctx context.Context, id uint) (dao.Participant, error)
	FindByToken(ctx context.Context, token string) (dao.Participant, error)
	FindAll(ctx context.Context) ([]dao.Participant, error)
	SetBlocked(ctx context.Context, id uint, blocked bool) error
	UpsertSession(ctx context.Context, session dao.ParticipantSession) (dao.ParticipantSession, error)
	TouchSession(ctx context.Context, sessionID uint) error
	DeleteSession(ctx context.Context, sessionID uint) error
}

type ParticipantRepository struct {
	dao ParticipantDAO
}

func NewParticipantRepository(dao ParticipantDAO) *ParticipantRepository {
	return &ParticipantRepository{
		dao: dao,
	}
}

func (r *ParticipantRepository) Create(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	created, err := r.dao.Insert(ctx, dao.Participant{
		Name:      participant.Name,
		Email:     participant.Email,
		Company:   participant.Company,
		AuthToken: participant.AuthToken,
		AvatarURL: participant.AvatarURL,
		IsVIP:     participant.IsVIP,
		Role:      participant.Role,
	})
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ParticipantRepository) FindByID(ctx context.Context, id uint) (domain.Participant, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ParticipantRepository) FindByToken(ctx context.Context, token string) (domain.Participant, error) {
	found, err := r.dao.FindByToken(ctx, token)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.FindByToken -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ParticipantRepository) FindAll(ctx context.Context) ([]domain.Participant, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	participants := make([]domain.Participant, 0, len(found))
	for _, p := range found {
		participants = append(participants, r.daoToDomain(p))
	}

	return participants, nil
}

func (r *ParticipantRepository) SetBlocked(ctx context.Context, id uint, blocked bool) error {
	if err := r.dao.SetBlocked(ctx, id, blocked); err != nil {
		return fmt.Errorf("r.dao.SetBlocked -> %w", err)
	}

	return nil
}

func (r *ParticipantRepository) UpsertSession(ctx context.Context, participantID uint, device domain.DeviceInfo) (domain.ParticipantSession, error) {
	upserted, err := r.dao.UpsertSession(ctx, dao.ParticipantSession{
		ParticipantID:     participantID,
		DeviceFingerprint: device.Fingerprint,
		IPAddress:         device.IPAddress,
		UserAgent:         device.UserAgent,
	})
	if err != nil {
		return domain.ParticipantSession{}, fmt.Errorf("r.dao.UpsertSession -> %w", err)
	}

	return domain.ParticipantSession{
		ID:                upserted.ID,
		ParticipantID:     upserted.ParticipantID,
		DeviceFingerprint: upserted.DeviceFingerprint,
		IPAddress:         upserted.IPAddress,
		UserAgent:         upserted.UserAgent,
		LastActivity:      upserted.LastActivity,
		CreatedAt:         upserted.CreatedAt,
	}, nil
}

func (r *ParticipantRepository) TouchSession(ctx context.Context, sessionID uint) error {
	if err := r.dao.TouchSession(ctx, sessionID); err != nil {
		return fmt.Errorf("r.dao.TouchSession -> %w", err)
	}

	return nil
}

func (r *ParticipantRepository) DeleteSession(ctx context.Context, sessionID uint) error {
	if err := r.dao.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("r.dao.DeleteSession -> %w", err)
	}

	return nil
}

func (r *ParticipantRepository) daoToDomain(p dao.Participant) domain.Participant {
	return domain.Participant{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Company:   p.Company,
		AuthToken: p.AuthToken,
		AvatarURL: p.AvatarURL,
		IsBlocked: p.IsBlocked,
		IsVIP:     p.IsVIP,
		Role:      p.Role,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
