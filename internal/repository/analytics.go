package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/craftconf/bof-api/internal/domain"
	"github.com/craftconf/bof-api/internal/repository/dao"
)

type AnalyticsDAO interface {
	Insert(ctx context.Context, event dao.AnalyticsEvent) (dao.AnalyticsEvent, error)
	FindByType(ctx context.Context, eventType string, limit int) ([]dao.AnalyticsEvent, error)
}

type AnalyticsRepository struct {
	dao AnalyticsDAO
}

func NewAnalyticsRepository(dao AnalyticsDAO) *AnalyticsRepository {
	return &AnalyticsRepository{
		dao: dao,
	}
}

func (r *AnalyticsRepository) Record(ctx context.Context, event domain.AnalyticsEvent) error {
	data := "{}"
	if event.EventData != nil {
		raw, err := json.Marshal(event.EventData)
		if err != nil {
			return fmt.Errorf("json.Marshal -> %w", err)
		}
		data = string(raw)
	}

	_, err := r.dao.Insert(ctx, dao.AnalyticsEvent{
		ParticipantID: event.ParticipantID,
		EventType:     event.EventType,
		EventData:     data,
	})
	if err != nil {
		return fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return nil
}
