package response

import (
	"github.com/craftconf/bof-api/internal/domain"
)

type VerifyTokenResponse struct {
	Participant domain.Participant `json:"participant"`
	SessionID   uint               `json:"session_id"`
	IsAdmin     bool               `json:"is_admin"`
}

type CastVoteResponse struct {
	Message string      `json:"message"`
	Vote    domain.Vote `json:"vote"`
}

type UserVoteResponse struct {
	HasVoted bool         `json:"has_voted"`
	Vote     *domain.Vote `json:"vote,omitempty"`
}

type TopicListResponse struct {
	BOFSessionID uint                  `json:"bof_session_id"`
	Topics       []domain.TopicDetails `json:"topics"`
}

type LeaderboardResponse struct {
	Entries []domain.ParticipantStats `json:"entries"`
}

type AchievementsResponse struct {
	ParticipantID uint                            `json:"participant_id"`
	TotalPoints   int                             `json:"total_points"`
	Achievements  []domain.ParticipantAchievement `json:"achievements"`
}
