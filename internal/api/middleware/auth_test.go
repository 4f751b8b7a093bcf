package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/craftconf/bof-api/internal/domain"
	"github.com/craftconf/bof-api/internal/service"
)

type stubResolver struct {
	participants map[string]domain.Participant
}

func (s *stubResolver) ResolveToken(ctx context.Context, token string) (domain.Participant, error) {
	p, ok := s.participants[token]
	if !ok {
		return domain.Participant{}, service.ErrInvalidToken
	}
	if p.IsBlocked {
		return domain.Participant{}, service.ErrParticipantBlocked
	}
	return p, nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	resolver := &stubResolver{participants: map[string]domain.Participant{
		"tok-user":    {ID: 1, Name: "Ada", Role: domain.RoleParticipant},
		"tok-admin":   {ID: 2, Name: "Root", Role: domain.RoleAdmin},
		"tok-blocked": {ID: 3, Name: "Mallory", IsBlocked: true},
	}}
	authenticator := NewAuthenticator(resolver)

	router := gin.New()
	router.GET("/me", authenticator.VerifyToken(), func(ctx *gin.Context) {
		p, _ := GetParticipant(ctx)
		ctx.JSON(http.StatusOK, p)
	})
	router.GET("/admin", authenticator.VerifyToken(), authenticator.RequireAdmin(), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	return router
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestAuthenticator_VerifyToken(t *testing.T) {
	router := newTestRouter()

	t.Run("valid bearer token", func(t *testing.T) {
		resp := doRequest(router, "/me", "Bearer tok-user")

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"name":"Ada"`)
	})

	t.Run("token via query parameter", func(t *testing.T) {
		resp := doRequest(router, "/me?token=tok-user", "")

		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		resp := doRequest(router, "/me", "")

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("unknown token", func(t *testing.T) {
		resp := doRequest(router, "/me", "Bearer tok-nope")

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Contains(t, resp.Body.String(), "INVALID_TOKEN")
	})

	t.Run("blocked participant", func(t *testing.T) {
		resp := doRequest(router, "/me", "Bearer tok-blocked")

		assert.Equal(t, http.StatusForbidden, resp.Code)
		assert.Contains(t, resp.Body.String(), "BLOCKED_USER")
	})
}

func TestAuthenticator_RequireAdmin(t *testing.T) {
	router := newTestRouter()

	t.Run("admin passes", func(t *testing.T) {
		resp := doRequest(router, "/admin", "Bearer tok-admin")

		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("participant is denied", func(t *testing.T) {
		resp := doRequest(router, "/admin", "Bearer tok-user")

		assert.Equal(t, http.StatusForbidden, resp.Code)
		assert.Contains(t, resp.Body.String(), "PERMISSION_DENIED")
	})
}
