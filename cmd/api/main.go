package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/happyhearts/banquet-concierge/internal/api/router"
	"github.com/happyhearts/banquet-concierge/internal/chat"
	appconfig "github.com/happyhearts/banquet-concierge/internal/config"
	"github.com/happyhearts/banquet-concierge/internal/conversation"
	"github.com/happyhearts/banquet-concierge/internal/http/handlers"
	"github.com/happyhearts/banquet-concierge/internal/observability/metrics"
	"github.com/happyhearts/banquet-concierge/pkg/logging"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.NewFor(cfg.LogLevel, cfg.Env)
	logger.Info("starting banquet-concierge API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	chatMetrics := metrics.NewChatMetrics(prometheus.DefaultRegisterer)

	// Redis is optional: without it the chat runs statelessly and session
	// history is simply not restored.
	var transcript chat.TranscriptStore
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		transcript = conversation.NewTranscriptStore(redis.NewClient(opts))
		logger.Info("transcript store enabled", "addr", cfg.RedisAddr)
	}

	engine := conversation.NewEngine(cfg.VenueLink)
	chatHandler := chat.NewHandler(engine, transcript, chatMetrics, logger)
	webhookHandler := handlers.NewWhatsAppWebhookHandler(cfg.WhatsAppVerifyToken, chatMetrics, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        chatHandler,
		WhatsAppWebhook:    webhookHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
