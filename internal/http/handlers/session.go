package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/service"
)

type initSessionRequest struct {
	ProlificID string          `json:"prolificId"`
	Metadata   domain.Metadata `json:"metadata"`
}

// POST /api/initialize-session
func (h *Handler) InitializeSession(c *gin.Context) {
	var req initSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}
	if req.Metadata.Browser == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Missing required field: metadata.browser"})
		return
	}

	id, err := h.Game.InitializeSession(c.Request.Context(), req.ProlificID, req.Metadata)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionId": id})
}

type completeSessionRequest struct {
	SessionID string         `json:"sessionId"`
	GameState map[string]any `json:"gameState"`
}

// POST /api/sessions/complete
func (h *Handler) CompleteSession(c *gin.Context) {
	var req completeSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	if err := h.Game.CompleteSession(c.Request.Context(), req.SessionID, req.GameState); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// POST /api/tutorial/complete
func (h *Handler) CompleteTutorial(c *gin.Context) {
	var req service.TutorialCompletion
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	if err := h.Game.CompleteTutorial(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// POST /api/meanings/submit
func (h *Handler) SubmitMeanings(c *gin.Context) {
	var req domain.WordMeaningSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	if err := h.Game.ProcessMeaningSubmissions(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
