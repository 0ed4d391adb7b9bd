// Package http wires gin middleware and the /api routes of the study backend.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/http/handlers"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/http/middleware"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/logger"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/metrics"
)

type RouterConfig struct {
	CORSOrigins []string
	// nil - без ограничения частоты
	Limiter middleware.Limiter
}

// NewRouter собирает gin.Engine со всеми middleware и маршрутами
func NewRouter(h *handlers.Handler, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware())
	r.Use(metrics.Middleware())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	if cfg.Limiter != nil {
		api.Use(middleware.RateLimit(cfg.Limiter))
	}
	RegisterRoutes(api, h)
	return r
}

func RegisterRoutes(api *gin.RouterGroup, h *handlers.Handler) {
	api.GET("/study-config", h.StudyConfig)
	api.POST("/initialize-session", h.InitializeSession)

	api.GET("/tutorial/init", h.InitializeTutorial)
	api.POST("/tutorial/complete", h.CompleteTutorial)

	api.GET("/game/init", h.InitializeGame)
	api.GET("/game/next", h.NextAnagram)
	api.POST("/word/validate", h.ValidateWord)
	api.POST("/word-submissions", h.SubmitWords)
	api.POST("/game-events", h.LogEvent)
	api.GET("/game-results", h.GameResults)

	api.POST("/sessions/complete", h.CompleteSession)
	api.POST("/meanings/submit", h.SubmitMeanings)
}
