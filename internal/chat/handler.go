package chat

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/happyhearts/banquet-concierge/internal/conversation"
	"github.com/happyhearts/banquet-concierge/internal/observability/metrics"
	"github.com/happyhearts/banquet-concierge/pkg/logging"
)

// TranscriptStore reads and writes chat history.
type TranscriptStore interface {
	Append(ctx context.Context, sessionID string, msg conversation.TranscriptMessage) error
	List(ctx context.Context, sessionID string, limit int64) ([]conversation.TranscriptMessage, error)
}

// Handler serves the booking chat over HTTP and WebSocket. It is a thin
// adapter: every reply is recomputed by the engine from the full transcript,
// so the handler holds no conversation state of its own.
type Handler struct {
	engine     *conversation.Engine
	transcript TranscriptStore
	metrics    *metrics.ChatMetrics
	logger     *logging.Logger
}

// InboundMessage is what the chat widget sends.
type InboundMessage struct {
	Type string `json:"type"` // "message", "ping"
	Text string `json:"text"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type      string           `json:"type"` // "message", "history", "session", "pong"
	Text      string           `json:"text,omitempty"`
	Role      string           `json:"role,omitempty"`
	SessionID string           `json:"session_id,omitempty"`
	Messages  []HistoryMessage `json:"messages,omitempty"`
}

// HistoryMessage is a simplified message for history responses.
type HistoryMessage struct {
	Role      string `json:"role"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// NewHandler creates a chat handler.
func NewHandler(engine *conversation.Engine, transcript TranscriptStore, m *metrics.ChatMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{engine: engine, transcript: transcript, metrics: m, logger: logger}
}

// generateSessionID creates a random session identifier.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}

// HandleMessage answers a full-transcript chat request. The response status
// is always 200: a body we cannot parse, or any unexpected failure inside
// reply computation, degrades to the fixed apology reply instead of an
// error status.
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("chat: reply computation panicked", "panic", rec)
			h.metrics.ObserveReply("http", "apology")
			h.writeReply(w, conversation.ApologyReply)
		}
	}()

	var req struct {
		Messages []conversation.ChatMessage `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("chat: unreadable request body", "error", err)
		h.metrics.ObserveReply("http", "apology")
		h.writeReply(w, conversation.ApologyReply)
		return
	}

	reply := h.engine.Reply(req.Messages)
	h.metrics.ObserveReply("http", "ok")
	h.metrics.ObserveReplyLatency("http", time.Since(start).Seconds())
	h.writeReply(w, reply)
}

func (h *Handler) writeReply(w http.ResponseWriter, reply string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"reply": reply})
}

// HandleWebSocket upgrades to WebSocket and drives a live conversation. The
// transcript lives on the connection; the store only restores history for
// reconnecting sessions.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = generateSessionID()
	}

	_ = websocket.JSON.Send(conn, OutboundMessage{Type: "session", SessionID: sessionID})

	transcript := h.restoreTranscript(r.Context(), conn, sessionID)

	h.logger.Info("chat: connection opened", "session_id", sessionID)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("chat: connection closed", "session_id", sessionID, "error", err)
			return
		}

		if msg.Type == "ping" {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
			continue
		}

		if msg.Type != "message" || strings.TrimSpace(msg.Text) == "" {
			continue
		}

		transcript = append(transcript, conversation.ChatMessage{Role: conversation.ChatRoleUser, Content: msg.Text})
		h.persist(r.Context(), sessionID, conversation.ChatRoleUser, msg.Text)

		reply := h.safeReply(transcript)
		transcript = append(transcript, conversation.ChatMessage{Role: conversation.ChatRoleAssistant, Content: reply})
		h.persist(r.Context(), sessionID, conversation.ChatRoleAssistant, reply)

		_ = websocket.JSON.Send(conn, OutboundMessage{Type: "message", Role: conversation.ChatRoleAssistant, Text: reply})
	}
}

// safeReply computes the next reply, degrading to the apology on panic so a
// single bad turn never drops the connection.
func (h *Handler) safeReply(transcript []conversation.ChatMessage) (reply string) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("chat: reply computation panicked", "panic", rec)
			h.metrics.ObserveReply("ws", "apology")
			reply = conversation.ApologyReply
		}
	}()
	reply = h.engine.Reply(transcript)
	h.metrics.ObserveReply("ws", "ok")
	h.metrics.ObserveReplyLatency("ws", time.Since(start).Seconds())
	return reply
}

// restoreTranscript loads persisted history for the session, replays it to
// the client, and returns it as the working transcript.
func (h *Handler) restoreTranscript(ctx context.Context, conn *websocket.Conn, sessionID string) []conversation.ChatMessage {
	if h.transcript == nil {
		return nil
	}
	msgs, err := h.transcript.List(ctx, sessionID, 50)
	if err != nil || len(msgs) == 0 {
		return nil
	}

	transcript := make([]conversation.ChatMessage, 0, len(msgs))
	history := make([]HistoryMessage, 0, len(msgs))
	for _, m := range msgs {
		transcript = append(transcript, conversation.ChatMessage{Role: m.Role, Content: m.Body})
		history = append(history, HistoryMessage{
			Role:      m.Role,
			Text:      m.Body,
			Timestamp: m.Timestamp.Format(time.RFC3339),
		})
	}
	_ = websocket.JSON.Send(conn, OutboundMessage{Type: "history", Messages: history})
	return transcript
}

func (h *Handler) persist(ctx context.Context, sessionID, role, body string) {
	if h.transcript == nil {
		return
	}
	err := h.transcript.Append(ctx, sessionID, conversation.TranscriptMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Body:      body,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		h.logger.Error("chat: failed to persist transcript message", "error", err, "session_id", sessionID)
	}
}

// HandleHistory returns chat history for a session.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if h.transcript == nil {
		_ = json.NewEncoder(w).Encode(map[string]any{"messages": []HistoryMessage{}})
		return
	}

	msgs, err := h.transcript.List(r.Context(), sessionID, 100)
	if err != nil {
		h.logger.Error("chat: failed to load history", "error", err)
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		return
	}

	history := make([]HistoryMessage, 0, len(msgs))
	for _, m := range msgs {
		history = append(history, HistoryMessage{
			Role:      m.Role,
			Text:      m.Body,
			Timestamp: m.Timestamp.Format(time.RFC3339),
		})
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"messages": history})
}

// HealthCheck reports service liveness.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
