package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("bof session not found")

type BOFSession struct {
	ID uint `gorm:"primaryKey"`

	DayNumber      int    `gorm:"not null"`
	SessionNumber  int    `gorm:"not null"`
	Title          string `gorm:"not null"`
	Description    string
	SessionTime    time.Time `gorm:"not null"`
	VotingOpensAt  *time.Time
	VotingClosesAt *time.Time
	Status         string `gorm:"not null;default:upcoming"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type BOFSessionDAO struct {
	db *gorm.DB
}

func NewBOFSessionDAO(db *gorm.DB) *BOFSessionDAO {
	return &BOFSessionDAO{
		db: db,
	}
}

func (d *BOFSessionDAO) Insert(ctx context.Context, session BOFSession) (BOFSession, error) {
	result := d.db.WithContext(ctx).Create(&session)
	if result.Error != nil {
		return BOFSession{}, result.Error
	}

	return session, nil
}

func (d *BOFSessionDAO) FindByID(ctx context.Context, id uint) (BOFSession, error) {
	var session BOFSession

	result := d.db.WithContext(ctx).First(&session, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return BOFSession{}, ErrSessionNotFound
		}

		return BOFSession{}, result.Error
	}

	return session, nil
}

func (d *BOFSessionDAO) FindAll(ctx context.Context) ([]BOFSession, error) {
	var sessions []BOFSession

	result := d.db.WithContext(ctx).
		Order("day_number asc").
		Order("session_number asc").
		Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}

	return sessions, nil
}

func (d *BOFSessionDAO) Count(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&BOFSession{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
