package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type AnalyticsEvent struct {
	ID uint `gorm:"primaryKey"`

	ParticipantID uint   `gorm:"index"`
	EventType     string `gorm:"not null;index"`
	EventData     string `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"not null"`
}

type AnalyticsDAO struct {
	db *gorm.DB
}

func NewAnalyticsDAO(db *gorm.DB) *AnalyticsDAO {
	return &AnalyticsDAO{
		db: db,
	}
}

func (d *AnalyticsDAO) Insert(ctx context.Context, event AnalyticsEvent) (AnalyticsEvent, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return AnalyticsEvent{}, result.Error
	}

	return event, nil
}

func (d *AnalyticsDAO) FindByType(ctx context.Context, eventType string, limit int) ([]AnalyticsEvent, error) {
	var events []AnalyticsEvent

	result := d.db.WithContext(ctx).
		Where("event_type = ?", eventType).
		Order("created_at desc").
		Limit(limit).
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}
