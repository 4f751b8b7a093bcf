package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateParticipantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	IsVIP bool   `json:"is_vip"`
}

func (req *CreateParticipantRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Role, validation.In("participant", "admin")),
	)
}

type SetBlockedRequest struct {
	Blocked *bool `json:"blocked"`
}

func (req *SetBlockedRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Blocked, validation.NotNil),
	)
}
