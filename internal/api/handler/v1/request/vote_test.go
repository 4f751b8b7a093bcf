package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastVoteRequest_BindsClientKeys(t *testing.T) {
	var req CastVoteRequest
	err := json.Unmarshal([]byte(`{"participantId":2,"topicId":100,"bofSessionId":10}`), &req)
	require.NoError(t, err)

	assert.Equal(t, uint(2), req.ParticipantID)
	assert.Equal(t, uint(100), req.TopicID)
	assert.Equal(t, uint(10), req.BOFSessionID)
	assert.NoError(t, req.Validate())
}

func TestCastVoteRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CastVoteRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  CastVoteRequest{ParticipantID: 2, TopicID: 100, BOFSessionID: 10},
		},
		{
			name:    "missing participant",
			req:     CastVoteRequest{TopicID: 100, BOFSessionID: 10},
			wantErr: true,
		},
		{
			name:    "missing topic",
			req:     CastVoteRequest{ParticipantID: 2, BOFSessionID: 10},
			wantErr: true,
		},
		{
			name:    "missing session",
			req:     CastVoteRequest{ParticipantID: 2, TopicID: 100},
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
