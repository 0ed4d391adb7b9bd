package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/study-config
func (h *Handler) StudyConfig(c *gin.Context) {
	cfg, err := h.Game.StudyConfig(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}
