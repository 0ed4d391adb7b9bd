package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/logger"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/service"
)

// Handler - HTTP слой поверх GameService
type Handler struct {
	Game *service.GameService
	// проверка хранилища для /healthz, может быть nil
	Ping func(ctx context.Context) error
}

func New(game *service.GameService, ping func(ctx context.Context) error) *Handler {
	return &Handler{Game: game, Ping: ping}
}

// ошибки сервиса -> статус и {"detail": ...}
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	case errors.Is(err, service.ErrInvalidFormat):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
	default:
		logger.WithContext(c.Request.Context()).Error("request failed",
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	}
}

// тело запроса не разобралось
func respondBadBody(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body: " + err.Error()})
}

// id сессии из query: фронт шлет и session_id, и sessionId
func sessionIDQuery(c *gin.Context) (string, bool) {
	if id := c.Query("session_id"); id != "" {
		return id, true
	}
	if id := c.Query("sessionId"); id != "" {
		return id, true
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Missing required query parameter: session_id"})
	return "", false
}

func (h *Handler) Healthz(c *gin.Context) {
	if h.Ping != nil {
		if err := h.Ping(c.Request.Context()); err != nil {
			logger.WithContext(c.Request.Context()).Warn("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
