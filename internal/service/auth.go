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
	ErrInvalidToken       = errors.New("invalid auth token")
	ErrParticipantBlocked = errors.New("participant is blocked")
)

type AuthParticipantRepository interface {
	FindByToken(ctx context.Context, token string) (domain.Participant, error)
	UpsertSession(ctx context.Context, participantID uint, device domain.DeviceInfo) (domain.ParticipantSession, error)
	DeleteSession(ctx context.Context, sessionID uint) error
}

type AnalyticsRecorder interface {
	Record(ctx context.Context, event domain.AnalyticsEvent) error
}

type AuthService struct {
	repo      AuthParticipantRepository
	analytics AnalyticsRecorder
}

func NewAuthService(repo AuthParticipantRepository, analytics AnalyticsRecorder) *AuthService {
	return &AuthService{
		repo:      repo,
		analytics: analytics,
	}
}

// VerifyToken resolves a QR token to a participant and records the
// device session. No server-side expiry is enforced; the conference
// runs for days and re-scanning is inconvenient.
func (s *AuthService) VerifyToken(ctx context.Context, token string, device domain.DeviceInfo) (domain.Participant, domain.ParticipantSession, error) {
	participant, err := s.ResolveToken(ctx, token)
	if err != nil {
		return domain.Participant{}, domain.ParticipantSession{}, err
	}

	session, err := s.repo.UpsertSession(ctx, participant.ID, device)
	if err != nil {
		return domain.Participant{}, domain.ParticipantSession{}, fmt.Errorf("s.repo.UpsertSession -> %w", err)
	}

	s.record(ctx, domain.AnalyticsEvent{
		ParticipantID: participant.ID,
		EventType:     domain.EventQRScanned,
		EventData: map[string]any{
			"device_fingerprint": device.Fingerprint,
			"ip_address":         device.IPAddress,
		},
	})

	return participant, session, nil
}

// ResolveToken looks the token up without touching device sessions,
// used by the bearer-token middleware.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (domain.Participant, error) {
	participant, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return domain.Participant{}, ErrInvalidToken
		}

		return domain.Participant{}, fmt.Errorf("s.repo.FindByToken -> %w", err)
	}

	if participant.IsBlocked {
		return domain.Participant{}, ErrParticipantBlocked
	}

	return participant, nil
}

func (s *AuthService) Logout(ctx context.Context, participantID, sessionID uint) error {
	if err := s.repo.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("s.repo.DeleteSession -> %w", err)
	}

	s.record(ctx, domain.AnalyticsEvent{
		ParticipantID: participantID,
		EventType:     domain.EventLogout,
	})

	return nil
}

// record logs analytics best-effort; an analytics failure never fails
// the user action.
func (s *AuthService) record(ctx context.Context, event domain.AnalyticsEvent) {
	if s.analytics == nil {
		return
	}
	if err := s.analytics.Record(ctx, event); err != nil {
		zap.L().Warn("failed to record analytics event",
			zap.String("event_type", event.EventType), zap.Error(err))
	}
}
