package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftconf/bof-api/internal/api/handler/v1/request"
	"github.com/craftconf/bof-api/internal/api/handler/v1/response"
	"github.com/craftconf/bof-api/internal/api/middleware"
	"github.com/craftconf/bof-api/internal/domain"
	"github.com/craftconf/bof-api/internal/service"
)

type AdminTopicService interface {
	Update(ctx context.Context, caller domain.Participant, topicID uint, title, description string) (domain.Topic, error)
	Delete(ctx context.Context, caller domain.Participant, topicID uint) error
	SetHidden(ctx context.Context, topicID uint, hidden bool) error
	Move(ctx context.Context, topicID, targetSessionID uint) error
}

type ParticipantService interface {
	Create(ctx context.Context, participant domain.Participant) (domain.Participant, error)
	List(ctx context.Context) ([]domain.Participant, error)
	SetBlocked(ctx context.Context, id uint, blocked bool) error
}

type AdminHandler struct {
	topics       AdminTopicService
	participants ParticipantService
}

func NewAdminHandler(topics AdminTopicService, participants ParticipantService) *AdminHandler {
	return &AdminHandler{
		topics:       topics,
		participants: participants,
	}
}

// HandleEditTopic godoc
// @Summary      Edit any topic's title or description
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        topicID   path      int true "topic ID"
// @Param        request   body      request.UpdateTopicRequest true "request body"
// @Success      200      {object}   domain.Topic
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     TokenAuth
// @Router       /admin/topics/{topicID} [patch]
func (h *AdminHandler) HandleEditTopic(ctx *gin.Context) {
	topicID, err := parseUintParam(ctx, "topicID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateTopicRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	caller, _ := middleware.GetParticipant(ctx)

	topic, err := h.topics.Update(ctx.Request.Context(), caller, topicID, req.Title, req.Description)
	if err != nil {
		renderTopicMutationErr(ctx, "v1.HandleEditTopic", err)
		return
	}

	ctx.JSON(http.StatusOK, topic)
}

// HandleRemoveTopic godoc
// @Summary      Delete any topic and its votes
// @Tags         admin
// @Produce      json
// @Param        topicID   path      int true "topic ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     TokenAuth
// @Router       /admin/topics/{topicID} [delete]
func (h *AdminHandler) HandleRemoveTopic(ctx *gin.Context) {
	topicID, err := parseUintParam(ctx, "topicID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	caller, _ := middleware.GetParticipant(ctx)

	if err = h.topics.Delete(ctx.Request.Context(), caller, topicID); err != nil {
		renderTopicMutationErr(ctx, "v1.HandleRemoveTopic", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleSetTopicVisibility godoc
// @Summary      Hide or unhide a topic
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        topicID   path      int true "topic ID"
// @Param        request   body      request.SetTopicVisibilityRequest true "request body"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     TokenAuth
// @Router       /admin/topics/{topicID}/visibility [put]
func (h *AdminHandler) HandleSetTopicVisibility(ctx *gin.Context) {
	topicID, err := parseUintParam(ctx, "topicID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.SetTopicVisibilityRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.topics.SetHidden(ctx.Request.Context(), topicID, *req.Hidden); err != nil {
		renderTopicMutationErr(ctx, "v1.HandleSetTopicVisibility", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleMoveTopic godoc
// @Summary      Move a topic and its votes to another session
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        topicID   path      int true "topic ID"
// @Param        request   body      request.MoveTopicRequest true "request body"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     TokenAuth
// @Router       /admin/topics/{topicID}/move [put]
func (h *AdminHandler) HandleMoveTopic(ctx *gin.Context) {
	topicID, err := parseUintParam(ctx, "topicID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.MoveTopicRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.topics.Move(ctx.Request.Context(), topicID, req.TargetSessionID); err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			renderTopicMutationErr(ctx, "v1.HandleMoveTopic", err)
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListParticipants godoc
// @Summary      List every registered participant
// @Tags         admin
// @Produce      json
// @Success      200 {array}    domain.Participant
// @Failure      401 {object}   response.Err
// @Failure      403 {object}   response.Err
// @Failure      500 {object}   response.Err
// @Security     TokenAuth
// @Router       /admin/participants [get]
func (h *AdminHandler) HandleListParticipants(ctx *gin.Context) {
	participants, err := h.participants.List(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListParticipants -> h.participants.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, participants)
}

// HandleCreateParticipant godoc
// @Summary      Register a participant and mint their badge token
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateParticipantRequest true "request body"
// @Success      201      {object}   domain.Participant
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     TokenAuth
// @Router       /admin/participants [post]
func (h *AdminHandler) HandleCreateParticipant(ctx *gin.Context) {
	var req request.CreateParticipantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	participant, err := h.participants.Create(ctx.Request.Context(), domain.Participant{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
		IsVIP: req.IsVIP,
	})
	if err != nil {
		if errors.Is(err, service.ErrParticipantEmailExists) {
			response.RenderErr(ctx, response.ErrConflict("EMAIL_EXISTS", err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateParticipant -> h.participants.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, participant)
}

// HandleSetParticipantBlocked godoc
// @Summary      Block or unblock a participant
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        participantID   path      int true "participant ID"
// @Param        request         body      request.SetBlockedRequest true "request body"
// @Success      204
// @Failure      400            {object}   response.Err
// @Failure      401            {object}   response.Err
// @Failure      403            {object}   response.Err
// @Failure      404            {object}   response.Err
// @Failure      500            {object}   response.Err
// @Security     TokenAuth
// @Router       /admin/participants/{participantID}/block [put]
func (h *AdminHandler) HandleSetParticipantBlocked(ctx *gin.Context) {
	participantID, err := parseUintParam(ctx, "participantID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.SetBlockedRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.participants.SetBlocked(ctx.Request.Context(), participantID, *req.Blocked); err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))
			return
		}

		err = fmt.Errorf("v1.HandleSetParticipantBlocked -> h.participants.SetBlocked -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
