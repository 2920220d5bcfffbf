package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/happyhearts/banquet-concierge/internal/observability/metrics"
	"github.com/happyhearts/banquet-concierge/pkg/logging"
)

// WhatsAppWebhookHandler answers provider verification handshakes and
// acknowledges inbound message payloads. It never rejects a payload: a
// malformed body is acknowledged with an empty text so the provider does
// not retry forever.
type WhatsAppWebhookHandler struct {
	verifyToken string
	metrics     *metrics.ChatMetrics
	logger      *logging.Logger
}

func NewWhatsAppWebhookHandler(verifyToken string, m *metrics.ChatMetrics, logger *logging.Logger) *WhatsAppWebhookHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &WhatsAppWebhookHandler{verifyToken: verifyToken, metrics: m, logger: logger}
}

// HandleVerify implements the subscription handshake: when a subscribe-mode
// request carries a challenge and a token, the challenge is echoed back.
func (h *WhatsAppWebhookHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := q.Get("hub.mode")
	challenge := q.Get("hub.challenge")
	token := q.Get("hub.verify_token")

	if mode == "subscribe" && challenge != "" && token != "" {
		if h.verifyToken != "" && token != h.verifyToken {
			h.logger.Warn("whatsapp webhook verify token mismatch")
		}
		h.metrics.ObserveWebhook("verify", "ok")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(challenge))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// whatsappPayload mirrors the nested provider envelope just deep enough to
// pull out the first message's text body.
type whatsappPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// HandleInbound acknowledges an inbound provider payload, extracting the
// message text on a best-effort basis.
func (h *WhatsAppWebhookHandler) HandleInbound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var payload whatsappPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.Debug("whatsapp webhook payload not parseable", "error", err)
		h.metrics.ObserveWebhook("inbound", "malformed")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "received"})
		return
	}

	text := firstMessageText(payload)
	h.metrics.ObserveWebhook("inbound", "ok")
	h.logger.Info("whatsapp webhook received", "has_text", text != "")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "received", "text": text})
}

func firstMessageText(p whatsappPayload) string {
	if len(p.Entry) == 0 {
		return ""
	}
	changes := p.Entry[0].Changes
	if len(changes) == 0 {
		return ""
	}
	msgs := changes[0].Value.Messages
	if len(msgs) == 0 {
		return ""
	}
	return msgs[0].Text.Body
}
