package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
)

// POST /api/game-events
func (h *Handler) LogEvent(c *gin.Context) {
	var ev domain.GameEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		respondBadBody(c, err)
		return
	}

	if err := h.Game.LogEvent(c.Request.Context(), ev); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
