package domain

import "time"

const (
	RoleAdmin       = "admin"
	RoleParticipant = "participant"
)

type Participant struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	AuthToken string    `json:"-"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	IsBlocked bool      `json:"is_blocked"`
	IsVIP     bool      `json:"is_vip"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p Participant) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// ParticipantSession is a device session created when a participant
// scans their QR token. It is observability data only; authorization
// decisions never depend on it.
type ParticipantSession struct {
	ID                uint      `json:"id"`
	ParticipantID     uint      `json:"participant_id"`
	DeviceFingerprint string    `json:"device_fingerprint"`
	IPAddress         string    `json:"ip_address,omitempty"`
	UserAgent         string    `json:"user_agent,omitempty"`
	LastActivity      time.Time `json:"last_activity"`
	CreatedAt         time.Time `json:"created_at"`
}

type DeviceInfo struct {
	Fingerprint string
	IPAddress   string
	UserAgent   string
}

// ParticipantStats is the leaderboard row for one participant. All
// counters are derived at read time, never stored.
type ParticipantStats struct {
	Participant
	TopicsCreated     int `json:"topics_created"`
	VotesCast         int `json:"votes_cast"`
	VotesReceived     int `json:"votes_received"`
	AchievementsCount int `json:"achievements_count"`
	TotalPoints       int `json:"total_points"`
	Rank              int `json:"rank,omitempty"`
}
