package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
)

// GET /api/tutorial/init?session_id=
func (h *Handler) InitializeTutorial(c *gin.Context) {
	id, ok := sessionIDQuery(c)
	if !ok {
		return
	}

	res, err := h.Game.InitializeTutorial(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/game/init?session_id=
func (h *Handler) InitializeGame(c *gin.Context) {
	id, ok := sessionIDQuery(c)
	if !ok {
		return
	}

	res, err := h.Game.InitializeGame(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/game/next?session_id=&currentIndex=
func (h *Handler) NextAnagram(c *gin.Context) {
	id, ok := sessionIDQuery(c)
	if !ok {
		return
	}
	idx, err := strconv.Atoi(c.DefaultQuery("currentIndex", "0"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid anagram index"})
		return
	}

	res, err := h.Game.NextAnagram(c.Request.Context(), id, idx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type validateWordRequest struct {
	Word    string `json:"word"`
	Anagram string `json:"anagram"`
}

// POST /api/word/validate
func (h *Handler) ValidateWord(c *gin.Context) {
	var req validateWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}
	if req.Word == "" || req.Anagram == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Missing required fields: word or anagram"})
		return
	}

	res, err := h.Game.ValidateWordSubmission(c.Request.Context(), req.Word, req.Anagram)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/word-submissions
func (h *Handler) SubmitWords(c *gin.Context) {
	var req domain.WordSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	if err := h.Game.SubmitWords(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "totalReward": req.TotalReward})
}

// GET /api/game-results?session_id=
func (h *Handler) GameResults(c *gin.Context) {
	id, ok := sessionIDQuery(c)
	if !ok {
		return
	}

	res, err := h.Game.GameResults(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
