package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrAchievementNotFound = errors.New("achievement not found")

type Achievement struct {
	ID uint `gorm:"primaryKey"`

	Code        string `gorm:"uniqueIndex;not null"`
	Title       string `gorm:"not null"`
	Description string
	Icon        string
	Points      int `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type ParticipantAchievement struct {
	ID uint `gorm:"primaryKey"`

	ParticipantID uint `gorm:"not null;uniqueIndex:uq_participant_achievements"`
	AchievementID uint `gorm:"not null;uniqueIndex:uq_participant_achievements"`

	Achievement Achievement `gorm:"foreignKey:AchievementID"`

	EarnedAt time.Time `gorm:"not null"`
}

type AchievementDAO struct {
	db *gorm.DB
}

func NewAchievementDAO(db *gorm.DB) *AchievementDAO {
	return &AchievementDAO{
		db: db,
	}
}

func (d *AchievementDAO) FindAll(ctx context.Context) ([]Achievement, error) {
	var achievements []Achievement

	result := d.db.WithContext(ctx).Order("points desc").Find(&achievements)
	if result.Error != nil {
		return nil, result.Error
	}

	return achievements, nil
}

func (d *AchievementDAO) FindByCode(ctx context.Context, code string) (Achievement, error) {
	var achievement Achievement

	result := d.db.WithContext(ctx).First(&achievement, "code = ?", code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Achievement{}, ErrAchievementNotFound
		}

		return Achievement{}, result.Error
	}

	return achievement, nil
}

// Award records the earned achievement. Earning the same badge twice is
// a no-op, enforced by the unique (participant_id, achievement_id)
// index and the do-nothing conflict clause.
func (d *AchievementDAO) Award(ctx context.Context, participantID, achievementID uint) error {
	earned := ParticipantAchievement{
		ParticipantID: participantID,
		AchievementID: achievementID,
		EarnedAt:      time.Now(),
	}

	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "participant_id"}, {Name: "achievement_id"}},
		DoNothing: true,
	}).Create(&earned)

	return result.Error
}

func (d *AchievementDAO) FindByParticipant(ctx context.Context, participantID uint) ([]ParticipantAchievement, error) {
	var earned []ParticipantAchievement

	result := d.db.WithContext(ctx).
		Preload("Achievement").
		Where("participant_id = ?", participantID).
		Order("earned_at desc").
		Find(&earned)
	if result.Error != nil {
		return nil, result.Error
	}

	return earned, nil
}

func (d *AchievementDAO) CountByParticipant(ctx context.Context, participantID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&ParticipantAchievement{}).
		Where("participant_id = ?", participantID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
