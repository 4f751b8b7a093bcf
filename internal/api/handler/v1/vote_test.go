package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftconf/bof-api/internal/domain"
	"github.com/craftconf/bof-api/internal/service"
)

type stubVoteService struct {
	castVote domain.Vote
	castErr  error
	userVote domain.Vote
	userErr  error
}

func (s *stubVoteService) Cast(ctx context.Context, participantID, topicID, sessionID uint) (domain.Vote, error) {
	return s.castVote, s.castErr
}

func (s *stubVoteService) GetUserVote(ctx context.Context, participantID, sessionID uint) (domain.Vote, error) {
	return s.userVote, s.userErr
}

func (s *stubVoteService) ListByParticipant(ctx context.Context, participantID uint) ([]domain.Vote, error) {
	return []domain.Vote{s.userVote}, s.userErr
}

func newVoteRouter(svc VoteService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewVoteHandler(svc)
	router.POST("/votes/cast", handler.HandleCastVote)
	router.GET("/votes/user", handler.HandleGetUserVote)

	return router
}

func TestVoteHandler_HandleCastVote(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		castErr  error
		wantCode int
		wantBody string
	}{
		{
			name:     "happy path",
			body:     `{"participantId":2,"topicId":100,"bofSessionId":10}`,
			wantCode: http.StatusOK,
			wantBody: `"vote recorded"`,
		},
		{
			name:     "missing topic id",
			body:     `{"participantId":2,"bofSessionId":10}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing participant id",
			body:     `{"topicId":100,"bofSessionId":10}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed body",
			body:     `{"topicId":`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "own topic",
			body:     `{"participantId":2,"topicId":100,"bofSessionId":10}`,
			castErr:  service.ErrCannotVoteOwnTopic,
			wantCode: http.StatusBadRequest,
			wantBody: `"CANNOT_VOTE_OWN_TOPIC"`,
		},
		{
			name:     "unknown topic",
			body:     `{"participantId":2,"topicId":999,"bofSessionId":10}`,
			castErr:  service.ErrTopicNotFound,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "session does not match topic",
			body:     `{"participantId":2,"topicId":100,"bofSessionId":11}`,
			castErr:  service.ErrTopicSessionMismatch,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newVoteRouter(&stubVoteService{
				castVote: domain.Vote{ID: 1, TopicID: 100, ParticipantID: 2, BOFSessionID: 10},
				castErr:  tt.castErr,
			})

			req := httptest.NewRequest(http.MethodPost, "/votes/cast", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			assert.Equal(t, tt.wantCode, resp.Code)
			if tt.wantBody != "" {
				assert.Contains(t, resp.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestVoteHandler_HandleGetUserVote(t *testing.T) {
	t.Run("no vote yet", func(t *testing.T) {
		router := newVoteRouter(&stubVoteService{userErr: service.ErrVoteNotFound})

		req := httptest.NewRequest(http.MethodGet, "/votes/user?participantId=2&bofSessionId=10", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"has_voted":false`)
	})

	t.Run("existing vote", func(t *testing.T) {
		router := newVoteRouter(&stubVoteService{
			userVote: domain.Vote{ID: 7, TopicID: 100, ParticipantID: 2, BOFSessionID: 10},
		})

		req := httptest.NewRequest(http.MethodGet, "/votes/user?participantId=2&bofSessionId=10", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"has_voted":true`)
		assert.Contains(t, resp.Body.String(), `"topic_id":100`)
	})

	t.Run("missing participant query", func(t *testing.T) {
		router := newVoteRouter(&stubVoteService{})

		req := httptest.NewRequest(http.MethodGet, "/votes/user?bofSessionId=10", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}
