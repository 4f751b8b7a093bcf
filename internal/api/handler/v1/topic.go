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

type TopicService interface {
	Create(ctx context.Context, participantID, sessionID uint, title, description string) (domain.Topic, error)
}

type AggregationService interface {
	ListTopicDetails(ctx context.Context, sessionID uint, includeHidden bool) ([]domain.TopicDetails, error)
	GetTopicDetails(ctx context.Context, topicID uint) (domain.TopicDetails, error)
	ListTopicDetailsByAuthor(ctx context.Context, participantID uint) ([]domain.TopicDetails, error)
}

type TopicHandler struct {
	svc  TopicService
	view AggregationService
}

func NewTopicHandler(svc TopicService, view AggregationService) *TopicHandler {
	return &TopicHandler{
		svc:  svc,
		view: view,
	}
}

// HandleCreateTopic godoc
// @Summary      Propose a topic for a BOF session
// @Tags         topics
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateTopicRequest true "request body"
// @Success      201      {object}   domain.Topic
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /topics [post]
func (h *TopicHandler) HandleCreateTopic(ctx *gin.Context) {
	var req request.CreateTopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	topic, err := h.svc.Create(ctx.Request.Context(), req.ParticipantID, req.BOFSessionID, req.Title, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyCreatedTopic):
			response.RenderErr(ctx, response.ErrConflict("ALREADY_CREATED_TOPIC", err))
		case errors.Is(err, service.ErrSessionNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrParticipantNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		default:
			err = fmt.Errorf("v1.HandleCreateTopic -> h.svc.Create -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, topic)
}

// HandleListTopics godoc
// @Summary      List a session's visible topics with votes, members and ranks
// @Tags         topics
// @Produce      json
// @Param        bofSessionId   query     int true "BOF session ID"
// @Success      200           {object}   response.TopicListResponse
// @Failure      400           {object}   response.Err
// @Failure      500           {object}   response.Err
// @Router       /topics [get]
func (h *TopicHandler) HandleListTopics(ctx *gin.Context) {
	sessionID, err := parseUintQuery(ctx, "bofSessionId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	topics, err := h.view.ListTopicDetails(ctx.Request.Context(), sessionID, false)
	if err != nil {
		err = fmt.Errorf("v1.HandleListTopics -> h.view.ListTopicDetails -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.TopicListResponse{
		BOFSessionID: sessionID,
		Topics:       topics,
	})
}

// HandleGetTopic godoc
// @Summary      Get one topic with votes, members and rank
// @Tags         topics
// @Produce      json
// @Param        topicID   path      int true "topic ID"
// @Success      200      {object}   domain.TopicDetails
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /topics/{topicID} [get]
func (h *TopicHandler) HandleGetTopic(ctx *gin.Context) {
	topicID, err := parseUintParam(ctx, "topicID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	details, err := h.view.GetTopicDetails(ctx.Request.Context(), topicID)
	if err != nil {
		if errors.Is(err, service.ErrTopicNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))
			return
		}

		err = fmt.Errorf("v1.HandleGetTopic -> h.view.GetTopicDetails -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, details)
}

// HandleListTopicsByAuthor godoc
// @Summary      List topics a participant authored, across sessions
// @Tags         topics
// @Produce      json
// @Param        participantID   path      int true "participant ID"
// @Success      200 {array}    domain.TopicDetails
// @Failure      400 {object}   response.Err
// @Failure      500 {object}   response.Err
// @Router       /participants/{participantID}/topics [get]
func (h *TopicHandler) HandleListTopicsByAuthor(ctx *gin.Context) {
	participantID, err := parseUintParam(ctx, "participantID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	topics, err := h.view.ListTopicDetailsByAuthor(ctx.Request.Context(), participantID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListTopicsByAuthor -> h.view.ListTopicDetailsByAuthor -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, topics)
}

func renderTopicMutationErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrTopicNotFound):
		response.RenderErr(ctx, response.ErrNotFound(err))
	case errors.Is(err, service.ErrForbidden):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	default:
		err = fmt.Errorf("%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
