package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type VerifyTokenRequest struct {
	Token             string `json:"token"`
	DeviceFingerprint string `json:"device_fingerprint"`
	UserAgent         string `json:"user_agent"`
	ScreenResolution  string `json:"screen_resolution"`
}

func (req *VerifyTokenRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Token, validation.Required),
		validation.Field(&req.DeviceFingerprint, validation.Length(0, 255)),
	)
}

type LogoutRequest struct {
	ParticipantID uint `json:"participant_id"`
	SessionID     uint `json:"session_id"`
}

func (req *LogoutRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ParticipantID, validation.Required),
		validation.Field(&req.SessionID, validation.Required),
	)
}
