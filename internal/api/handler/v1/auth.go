package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftconf/bof-api/internal/api/handler/v1/request"
	"github.com/craftconf/bof-api/internal/api/handler/v1/response"
	"github.com/craftconf/bof-api/internal/domain"
	"github.com/craftconf/bof-api/internal/service"
)

type AuthService interface {
	VerifyToken(ctx context.Context, token string, device domain.DeviceInfo) (domain.Participant, domain.ParticipantSession, error)
	Logout(ctx context.Context, participantID, sessionID uint) error
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

// HandleVerifyToken godoc
// @Summary      Verify a QR badge token and open a device session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.VerifyTokenRequest true "request body"
// @Success      200      {object}   response.VerifyTokenResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/verify [post]
func (h *AuthHandler) HandleVerifyToken(ctx *gin.Context) {
	var req request.VerifyTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	participant, session, err := h.svc.VerifyToken(ctx.Request.Context(), req.Token, domain.DeviceInfo{
		Fingerprint: req.DeviceFingerprint,
		IPAddress:   ctx.ClientIP(),
		UserAgent:   req.UserAgent,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			response.RenderErr(ctx, response.ErrUnauthorized(err))
		case errors.Is(err, service.ErrParticipantBlocked):
			response.RenderErr(ctx, response.ErrBlockedUser(err))
		default:
			err = fmt.Errorf("v1.HandleVerifyToken -> h.svc.VerifyToken -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.VerifyTokenResponse{
		Participant: participant,
		SessionID:   session.ID,
		IsAdmin:     participant.IsAdmin(),
	})
}

// HandleLogout godoc
// @Summary      Close a participant's device session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.LogoutRequest true "request body"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/logout [post]
func (h *AuthHandler) HandleLogout(ctx *gin.Context) {
	var req request.LogoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Logout(ctx.Request.Context(), req.ParticipantID, req.SessionID); err != nil {
		err = fmt.Errorf("v1.HandleLogout -> h.svc.Logout -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
