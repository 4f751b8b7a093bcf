package domain

import "time"

// Vote ties one participant to one topic within one BOF session. A
// participant holds at most one vote per session; casting again moves
// the existing row to the new topic.
type Vote struct {
	ID            uint      `json:"id"`
	TopicID       uint      `json:"topic_id"`
	ParticipantID uint      `json:"participant_id"`
	BOFSessionID  uint      `json:"bof_session_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// VoteWithVoter pairs a vote with the voter's identity for the
// aggregation view.
type VoteWithVoter struct {
	Vote
	Voter Participant `json:"voter"`
}
