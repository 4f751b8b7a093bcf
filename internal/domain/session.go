package domain

import "time"

const (
	BOFStatusUpcoming     = "upcoming"
	BOFStatusVotingOpen   = "voting_open"
	BOFStatusVotingClosed = "voting_closed"
	BOFStatusCompleted    = "completed"
)

// BOFSession is a scheduled "Birds of a Feather" discussion slot.
type BOFSession struct {
	ID             uint       `json:"id"`
	DayNumber      int        `json:"day_number"`
	SessionNumber  int        `json:"session_number"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	SessionTime    time.Time  `json:"session_time"`
	VotingOpensAt  *time.Time `json:"voting_opens_at,omitempty"`
	VotingClosesAt *time.Time `json:"voting_closes_at,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
