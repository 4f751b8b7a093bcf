package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/craftconf/bof-api/internal/api/handler/v1/response"
	"github.com/craftconf/bof-api/internal/domain"
	"github.com/craftconf/bof-api/internal/service"
)

// ParticipantKey is where the authenticator stores the resolved
// participant in the gin context.
const ParticipantKey = "participant"

var (
	errMissingToken = errors.New("missing auth token")
	errAdminOnly    = errors.New("admin role required")
)

type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (domain.Participant, error)
}

type Authenticator struct {
	resolver TokenResolver
}

func NewAuthenticator(resolver TokenResolver) *Authenticator {
	return &Authenticator{
		resolver: resolver,
	}
}

// VerifyToken authenticates the request from its bearer auth token
// and stores the participant in the context.
func (a *Authenticator) VerifyToken() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := extractToken(ctx)
		if token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		participant, err := a.resolver.ResolveToken(ctx.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrParticipantBlocked) {
				response.RenderErr(ctx, response.ErrBlockedUser(err))
				return
			}

			response.RenderErr(ctx, response.ErrUnauthorized(service.ErrInvalidToken))
			return
		}

		ctx.Set(ParticipantKey, participant)
		ctx.Next()
	}
}

// RequireAdmin must run after VerifyToken.
func (a *Authenticator) RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		participant, ok := GetParticipant(ctx)
		if !ok || !participant.IsAdmin() {
			response.RenderErr(ctx, response.ErrPermissionDenied(errAdminOnly))
			return
		}

		ctx.Next()
	}
}

func GetParticipant(ctx *gin.Context) (domain.Participant, bool) {
	val, exists := ctx.Get(ParticipantKey)
	if !exists {
		return domain.Participant{}, false
	}

	participant, ok := val.(domain.Participant)

	return participant, ok
}

func extractToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if after, found := strings.CutPrefix(header, "Bearer "); found {
		return after
	}

	// The websocket client cannot set headers, so the token may
	// arrive as a query parameter instead.
	return ctx.Query("token")
}
