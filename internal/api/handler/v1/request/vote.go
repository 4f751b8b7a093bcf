package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CastVoteRequest struct {
	ParticipantID uint `json:"participantId"`
	TopicID       uint `json:"topicId"`
	BOFSessionID  uint `json:"bofSessionId"`
}

func (req *CastVoteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ParticipantID, validation.Required),
		validation.Field(&req.TopicID, validation.Required),
		validation.Field(&req.BOFSessionID, validation.Required),
	)
}
