package domain

import "time"

type Topic struct {
	ID            uint      `json:"id"`
	BOFSessionID  uint      `json:"bof_session_id"`
	ParticipantID uint      `json:"participant_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	IsHidden      bool      `json:"is_hidden"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TopicWithAuthor pairs a topic with its author's identity for the
// aggregation view.
type TopicWithAuthor struct {
	Topic
	Author Participant `json:"author"`
}

// TopicMember is one identity shown inside a topic's member list.
// The author appears with IsLead set even though no vote row backs them.
type TopicMember struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Avatar  string `json:"avatar,omitempty"`
	IsVIP   bool   `json:"is_vip"`
	IsLead  bool   `json:"is_lead"`
}

// TopicDetails is the aggregation view over one topic: author identity,
// vote count, display rank and member lists. It is recomputed on every
// read and never persisted.
type TopicDetails struct {
	TopicID       uint          `json:"topic_id"`
	BOFSessionID  uint          `json:"bof_session_id"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	IsHidden      bool          `json:"is_hidden"`
	AuthorID      uint          `json:"author_id"`
	AuthorName    string        `json:"author_name"`
	AuthorCompany string        `json:"author_company,omitempty"`
	AuthorAvatar  string        `json:"author_avatar,omitempty"`
	VoteCount     int           `json:"vote_count"`
	JoinedCount   int           `json:"joined_count"`
	Voters        []TopicMember `json:"voters"`
	JoinedUsers   []TopicMember `json:"joined_users"`
	Rank          int           `json:"rank,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
