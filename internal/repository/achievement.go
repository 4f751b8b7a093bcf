package repository

import (
	"context"
	"fmt"

	"github.com/craftconf/bof-api/internal/domain"
	"github.com/craftconf/bof-api/internal/repository/dao"
)

var ErrAchievementNotFound = dao.ErrAchievementNotFound

type AchievementDAO interface {
	FindAll(ctx context.Context) ([]dao.Achievement, error)
	FindByCode(ctx context.Context, code string) (dao.Achievement, error)
	Award(ctx context.Context, participantID, achievementID uint) error
	FindByParticipant(ctx context.Context, participantID uint) ([]dao.ParticipantAchievement, error)
	CountByParticipant(ctx context.Context, participantID uint) (int64, error)
}

type AchievementRepository struct {
	dao AchievementDAO
}

func NewAchievementRepository(dao AchievementDAO) *AchievementRepository {
	return &AchievementRepository{
		dao: dao,
	}
}

func (r *AchievementRepository) FindAll(ctx context.Context) ([]domain.Achievement, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	achievements := make([]domain.Achievement, 0, len(found))
	for _, a := range found {
		achievements = append(achievements, r.daoToDomain(a))
	}

	return achievements, nil
}

func (r *AchievementRepository) FindByCode(ctx context.Context, code string) (domain.Achievement, error) {
	found, err := r.dao.FindByCode(ctx, code)
	if err != nil {
		return domain.Achievement{}, fmt.Errorf("r.dao.FindByCode -> %w", err)
	}

	return r.daoToDomain(found), nil
}

// Award is idempotent; awarding an already-earned badge is a no-op.
func (r *AchievementRepository) Award(ctx context.Context, participantID, achievementID uint) error {
	if err := r.dao.Award(ctx, participantID, achievementID); err != nil {
		return fmt.Errorf("r.dao.Award -> %w", err)
	}

	return nil
}

func (r *AchievementRepository) FindByParticipant(ctx context.Context, participantID uint) ([]domain.ParticipantAchievement, error) {
	found, err := r.dao.FindByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByParticipant -> %w", err)
	}

	earned := make([]domain.ParticipantAchievement, 0, len(found))
	for _, pa := range found {
		earned = append(earned, domain.ParticipantAchievement{
			ID:            pa.ID,
			ParticipantID: pa.ParticipantID,
			AchievementID: pa.AchievementID,
			Achievement:   r.daoToDomain(pa.Achievement),
			EarnedAt:      pa.EarnedAt,
		})
	}

	return earned, nil
}

func (r *AchievementRepository) CountByParticipant(ctx context.Context, participantID uint) (int64, error) {
	count, err := r.dao.CountByParticipant(ctx, participantID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByParticipant -> %w", err)
	}

	return count, nil
}

func (r *AchievementRepository) daoToDomain(a dao.Achievement) domain.Achievement {
	return domain.Achievement{
		ID:          a.ID,
		Code:        a.Code,
		Title:       a.Title,
		Description: a.Description,
		Icon:        a.Icon,
		Points:      a.Points,
		CreatedAt:   a.CreatedAt,
	}
}
