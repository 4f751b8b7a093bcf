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

type VoteService interface {
	Cast(ctx context.Context, participantID, topicID, sessionID uint) (domain.Vote, error)
	GetUserVote(ctx context.Context, participantID, sessionID uint) (domain.Vote, error)
	ListByParticipant(ctx context.Context, participantID uint) ([]domain.Vote, error)
}

type VoteHandler struct {
	svc VoteService
}

func NewVoteHandler(svc VoteService) *VoteHandler {
	return &VoteHandler{
		svc: svc,
	}
}

// HandleCastVote godoc
// @Summary      Cast or move a participant's vote for a session
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        request   body      request.CastVoteRequest true "request body"
// @Success      200      {object}   response.CastVoteResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /votes/cast [post]
func (h *VoteHandler) HandleCastVote(ctx *gin.Context) {
	var req request.CastVoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	vote, err := h.svc.Cast(ctx.Request.Context(), req.ParticipantID, req.TopicID, req.BOFSessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCannotVoteOwnTopic):
			response.RenderErr(ctx, response.ErrCannotVoteOwnTopic(err))
		case errors.Is(err, service.ErrTopicSessionMismatch):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrTopicNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		default:
			err = fmt.Errorf("v1.HandleCastVote -> h.svc.Cast -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.CastVoteResponse{
		Message: "vote recorded",
		Vote:    vote,
	})
}

// HandleGetUserVote godoc
// @Summary      Get a participant's current vote in a session, if any
// @Tags         votes
// @Produce      json
// @Param        participantId  query     int true "participant ID"
// @Param        bofSessionId   query     int true "BOF session ID"
// @Success      200           {object}   response.UserVoteResponse
// @Failure      400           {object}   response.Err
// @Failure      500           {object}   response.Err
// @Router       /votes/user [get]
func (h *VoteHandler) HandleGetUserVote(ctx *gin.Context) {
	participantID, err := parseUintQuery(ctx, "participantId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	sessionID, err := parseUintQuery(ctx, "bofSessionId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	vote, err := h.svc.GetUserVote(ctx.Request.Context(), participantID, sessionID)
	if err != nil {
		if errors.Is(err, service.ErrVoteNotFound) {
			ctx.JSON(http.StatusOK, response.UserVoteResponse{HasVoted: false})
			return
		}

		err = fmt.Errorf("v1.HandleGetUserVote -> h.svc.GetUserVote -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.UserVoteResponse{
		HasVoted: true,
		Vote:     &vote,
	})
}

// HandleListParticipantVotes godoc
// @Summary      List every vote a participant currently holds
// @Tags         votes
// @Produce      json
// @Param        participantId  query     int true "participant ID"
// @Success      200 {array}    domain.Vote
// @Failure      400 {object}   response.Err
// @Failure      500 {object}   response.Err
// @Router       /votes [get]
func (h *VoteHandler) HandleListParticipantVotes(ctx *gin.Context) {
	participantID, err := parseUintQuery(ctx, "participantId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	votes, err := h.svc.ListByParticipant(ctx.Request.Context(), participantID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListParticipantVotes -> h.svc.ListByParticipant -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, votes)
}
