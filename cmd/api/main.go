// cmd/api/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/repleniq/backend-go/internal/api"
	"github.com/repleniq/backend-go/internal/cache"
	"github.com/repleniq/backend-go/internal/config"
	"github.com/repleniq/backend-go/internal/notify"
	"github.com/repleniq/backend-go/internal/pipeline/replen"
	"github.com/repleniq/backend-go/internal/service"
	"github.com/repleniq/backend-go/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.App.LogLevel)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	resultCache, err := cache.NewResultCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Result cache unavailable, continuing without caching")
		resultCache = cache.NewNoopResultCache()
	}

	sender := buildSender(cfg)

	pipeline := replen.New(cfg.App.RiskVendorMarker)
	inventory := service.NewInventoryService(pipeline, resultCache, sender, cfg.App.ForecastHorizon)

	router := api.NewRouter(inventory, cfg.App.UploadDir, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

func buildSender(cfg *config.Config) notify.Sender {
	if !cfg.Notifier.Enabled || cfg.Notifier.CredentialsJSON == "" {
		logger.Log.Info().Msg("Email transport not configured, orders will be logged only")
		return notify.LogSender{}
	}

	sender, err := notify.NewGmailSender(context.Background(), cfg.Notifier.CredentialsJSON, cfg.Notifier.Sender)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Failed to initialize Gmail transport, orders will be logged only")
		return notify.LogSender{}
	}
	return sender
}
