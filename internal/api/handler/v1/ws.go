package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type WebSocketServer interface {
	ServeWS(w http.ResponseWriter, r *http.Request)
}

type RealtimeHandler struct {
	hub WebSocketServer
}

func NewRealtimeHandler(hub WebSocketServer) *RealtimeHandler {
	return &RealtimeHandler{
		hub: hub,
	}
}

// HandleWebSocket godoc
// @Summary      Open the realtime invalidation stream
// @Description  Clients subscribe to channels (bof_{sessionID}, leaderboard) and receive change events.
// @Tags         realtime
// @Success      101
// @Router       /ws [get]
func (h *RealtimeHandler) HandleWebSocket(ctx *gin.Context) {
	h.hub.ServeWS(ctx.Writer, ctx.Request)
}
