package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/config"
	httpServer "github.com/svdpmukherjee/anagram-game-cheating-detection/internal/http"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/http/handlers"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/http/middleware"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/logger"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/service"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/storage"
)

// Version устанавливается при сборке
var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", "error", err)
	}

	logger.Init(cfg.LogLevel, cfg.JSONLogs())
	log := logger.Get()
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, cfg.RunMigrations)
	if err != nil {
		logger.Fatal("open storage", "driver", cfg.StorageDriver, "error", err)
	}
	defer backend.Close()
	log.Info("storage ready", "driver", backend.Driver)

	limiter, closeLimiter := newLimiter(ctx, cfg)
	defer closeLimiter()

	h := handlers.New(service.NewGameService(backend.Stores), backend.Ping)
	r := httpServer.NewRouter(h, httpServer.RouterConfig{
		CORSOrigins: cfg.CORSOrigins,
		Limiter:     limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server started", "port", cfg.AppPort, "version", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}

// redis если задан REDIS_ADDR и отвечает, иначе лимитер в памяти
func newLimiter(ctx context.Context, cfg *config.Config) (middleware.Limiter, func()) {
	local := middleware.NewLocalLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	if cfg.RedisAddr == "" {
		return local, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, using in-process rate limiter", "addr", cfg.RedisAddr, "error", err)
		_ = client.Close()
		return local, func() {}
	}

	logger.Info("redis rate limiter enabled", "addr", cfg.RedisAddr)
	return middleware.NewRedisLimiter(client, cfg.RateLimitRPS, time.Second), func() { _ = client.Close() }
}
