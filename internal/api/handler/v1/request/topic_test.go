package request

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTopicRequest_BindsClientKeys(t *testing.T) {
	var req CreateTopicRequest
	err := json.Unmarshal([]byte(`{"participantId":2,"bof_session_id":1,"title":"Observability in prod"}`), &req)
	require.NoError(t, err)

	assert.Equal(t, uint(2), req.ParticipantID)
	assert.Equal(t, uint(1), req.BOFSessionID)
	assert.NoError(t, req.Validate())
}

func TestCreateTopicRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateTopicRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  CreateTopicRequest{ParticipantID: 2, Title: "Observability in prod", BOFSessionID: 1},
		},
		{
			name:    "title too short",
			req:     CreateTopicRequest{ParticipantID: 2, Title: "Go", BOFSessionID: 1},
			wantErr: true,
		},
		{
			name:    "title too long",
			req:     CreateTopicRequest{ParticipantID: 2, Title: strings.Repeat("x", 256), BOFSessionID: 1},
			wantErr: true,
		},
		{
			name:    "description too long",
			req:     CreateTopicRequest{ParticipantID: 2, Title: "Valid title", Description: strings.Repeat("x", 1001), BOFSessionID: 1},
			wantErr: true,
		},
		{
			name:    "missing session",
			req:     CreateTopicRequest{ParticipantID: 2, Title: "Valid title"},
			wantErr: true,
		},
		{
			name:    "missing participant",
			req:     CreateTopicRequest{Title: "Valid title", BOFSessionID: 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
