package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// Historical client contract: participantId is camelCase while
// bof_session_id stays snake_case.
type CreateTopicRequest struct {
	ParticipantID uint   `json:"participantId"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	BOFSessionID  uint   `json:"bof_session_id"`
}

func (req *CreateTopicRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ParticipantID, validation.Required),
		validation.Field(&req.Title, validation.Required, validation.Length(5, 255)),
		validation.Field(&req.Description, validation.Length(0, 1000)),
		validation.Field(&req.BOFSessionID, validation.Required),
	)
}

type UpdateTopicRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (req *UpdateTopicRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(5, 255)),
		validation.Field(&req.Description, validation.Length(0, 1000)),
	)
}

type MoveTopicRequest struct {
	TargetSessionID uint `json:"target_session_id"`
}

func (req *MoveTopicRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TargetSessionID, validation.Required),
	)
}

type SetTopicVisibilityRequest struct {
	Hidden *bool `json:"hidden"`
}

func (req *SetTopicVisibilityRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Hidden, validation.NotNil),
	)
}
