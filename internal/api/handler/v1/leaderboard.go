package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftconf/bof-api/internal/api/handler/v1/response"
	"github.com/craftconf/bof-api/internal/domain"
)

type LeaderboardService interface {
	Leaderboard(ctx context.Context) ([]domain.ParticipantStats, error)
}

type AchievementService interface {
	ListCatalog(ctx context.Context) ([]domain.Achievement, error)
	ListByParticipant(ctx context.Context, participantID uint) ([]domain.ParticipantAchievement, error)
	TotalPoints(ctx context.Context, participantID uint) (int, error)
}

type LeaderboardHandler struct {
	board  LeaderboardService
	badges AchievementService
}

func NewLeaderboardHandler(board LeaderboardService, badges AchievementService) *LeaderboardHandler {
	return &LeaderboardHandler{
		board:  board,
		badges: badges,
	}
}

// HandleGetLeaderboard godoc
// @Summary      Rank all participants by achievement points
// @Tags         leaderboard
// @Produce      json
// @Success      200 {object}   response.LeaderboardResponse
// @Failure      500 {object}   response.Err
// @Router       /leaderboard [get]
func (h *LeaderboardHandler) HandleGetLeaderboard(ctx *gin.Context) {
	entries, err := h.board.Leaderboard(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetLeaderboard -> h.board.Leaderboard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.LeaderboardResponse{Entries: entries})
}

// HandleListAchievementCatalog godoc
// @Summary      List every achievement that can be earned
// @Tags         achievements
// @Produce      json
// @Success      200 {array}    domain.Achievement
// @Failure      500 {object}   response.Err
// @Router       /achievements [get]
func (h *LeaderboardHandler) HandleListAchievementCatalog(ctx *gin.Context) {
	catalog, err := h.badges.ListCatalog(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListAchievementCatalog -> h.badges.ListCatalog -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, catalog)
}

// HandleGetParticipantAchievements godoc
// @Summary      List a participant's earned achievements and points
// @Tags         achievements
// @Produce      json
// @Param        participantID   path      int true "participant ID"
// @Success      200            {object}   response.AchievementsResponse
// @Failure      400            {object}   response.Err
// @Failure      500            {object}   response.Err
// @Router       /participants/{participantID}/achievements [get]
func (h *LeaderboardHandler) HandleGetParticipantAchievements(ctx *gin.Context) {
	participantID, err := parseUintParam(ctx, "participantID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	earned, err := h.badges.ListByParticipant(ctx.Request.Context(), participantID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetParticipantAchievements -> h.badges.ListByParticipant -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	points, err := h.badges.TotalPoints(ctx.Request.Context(), participantID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetParticipantAchievements -> h.badges.TotalPoints -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.AchievementsResponse{
		ParticipantID: participantID,
		TotalPoints:   points,
		Achievements:  earned,
	})
}
