package domain

import "time"

const (
	EventQRScanned    = "qr_scanned"
	EventVoteCast     = "vote_cast"
	EventTopicCreated = "topic_created"
	EventLogout       = "logout"
)

// AnalyticsEvent is an insert-only log row. ParticipantID may be zero
// for anonymous events.
type AnalyticsEvent struct {
	ID            uint           `json:"id"`
	ParticipantID uint           `json:"participant_id,omitempty"`
	EventType     string         `json:"event_type"`
	EventData     map[string]any `json:"event_data,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}
