package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"inspection-report/internal/realtime"
)

type RealtimeHandler struct {
	hub    *realtime.Hub
	logger *zap.Logger
}

func NewRealtimeHandler(hub *realtime.Hub, logger *zap.Logger) *RealtimeHandler {
	return &RealtimeHandler{hub: hub, logger: logger}
}

// Subscribe godoc
// @Summary     Subscribe to record events
// @Description Upgrades to a websocket that receives record.submitted and record.deleted events, for every record or only one user's
// @Tags        realtime
// @Param       userId query string false "Only events about this user's records"
// @Success     101
// @Router      /ws [get]
func (h *RealtimeHandler) Subscribe(c *gin.Context) {
	channel := realtime.ChannelRecords
	if userID := c.Query("userId"); userID != "" {
		channel = realtime.UserChannel(userID)
	}

	// The upgrader has already answered the request when this fails.
	if err := h.hub.ServeWS(c.Writer, c.Request, channel); err != nil {
		h.logger.Warn("websocket subscribe failed", zap.String("channel", channel), zap.Error(err))
	}
}
