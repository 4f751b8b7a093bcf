package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftconf/bof-api/internal/api/handler/v1/response"
	"github.com/craftconf/bof-api/internal/domain"
	"github.com/craftconf/bof-api/internal/service"
)

type SessionService interface {
	List(ctx context.Context) ([]domain.BOFSession, error)
	GetByID(ctx context.Context, id uint) (domain.BOFSession, error)
}

type SessionHandler struct {
	svc SessionService
}

func NewSessionHandler(svc SessionService) *SessionHandler {
	return &SessionHandler{
		svc: svc,
	}
}

// HandleListSessions godoc
// @Summary      List all BOF sessions in schedule order
// @Tags         sessions
// @Produce      json
// @Success      200 {array}    domain.BOFSession
// @Failure      500 {object}   response.Err
// @Router       /sessions [get]
func (h *SessionHandler) HandleListSessions(ctx *gin.Context) {
	sessions, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListSessions -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, sessions)
}

// HandleGetSession godoc
// @Summary      Get one BOF session
// @Tags         sessions
// @Produce      json
// @Param        sessionID   path      int true "BOF session ID"
// @Success      200        {object}   domain.BOFSession
// @Failure      400        {object}   response.Err
// @Failure      404        {object}   response.Err
// @Failure      500        {object}   response.Err
// @Router       /sessions/{sessionID} [get]
func (h *SessionHandler) HandleGetSession(ctx *gin.Context) {
	sessionID, err := parseUintParam(ctx, "sessionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	session, err := h.svc.GetByID(ctx.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))
			return
		}

		err = fmt.Errorf("v1.HandleGetSession -> h.svc.GetByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, session)
}
