package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/happyhearts/banquet-concierge/internal/chat"
	"github.com/happyhearts/banquet-concierge/internal/http/handlers"
	httpmiddleware "github.com/happyhearts/banquet-concierge/internal/http/middleware"
	"github.com/happyhearts/banquet-concierge/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	ChatHandler        *chat.Handler
	WhatsAppWebhook    *handlers.WhatsAppWebhookHandler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.ChatHandler.HealthCheck)

	r.Route("/chat", func(r chi.Router) {
		r.Post("/message", cfg.ChatHandler.HandleMessage)
		r.Get("/ws", cfg.ChatHandler.HandleWebSocket)
		r.Get("/history", cfg.ChatHandler.HandleHistory)
	})

	if cfg.WhatsAppWebhook != nil {
		r.Route("/webhooks/whatsapp", func(r chi.Router) {
			r.Get("/", cfg.WhatsAppWebhook.HandleVerify)
			r.Post("/", cfg.WhatsAppWebhook.HandleInbound)
		})
	}

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
