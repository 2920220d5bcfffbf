package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/happyhearts/banquet-concierge/internal/conversation"
	"github.com/happyhearts/banquet-concierge/pkg/logging"
)

// mockTranscript stores messages in memory.
type mockTranscript struct {
	mu    sync.Mutex
	store map[string][]conversation.TranscriptMessage
}

func newMockTranscript() *mockTranscript {
	return &mockTranscript{store: make(map[string][]conversation.TranscriptMessage)}
}

func (m *mockTranscript) Append(_ context.Context, sessionID string, msg conversation.TranscriptMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[sessionID] = append(m.store[sessionID], msg)
	return nil
}

func (m *mockTranscript) List(_ context.Context, sessionID string, limit int64) ([]conversation.TranscriptMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := m.store[sessionID]
	if limit > 0 && int64(len(msgs)) > limit {
		msgs = msgs[int64(len(msgs))-limit:]
	}
	return msgs, nil
}

func newTestHandler(ts TranscriptStore) *Handler {
	return NewHandler(conversation.NewEngine(""), ts, nil, logging.New("error"))
}

func decodeReply(t *testing.T, body []byte) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp["reply"]
}

func TestHandleMessagePromptsForMissingFields(t *testing.T) {
	h := newTestHandler(nil)

	body := `{"messages":[{"role":"user","content":"Hi, I am Rahul Sharma"}]}`
	req := httptest.NewRequest(http.MethodPost, "/chat/message", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleMessage(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	reply := decodeReply(t, w.Body.Bytes())
	assert.True(t, strings.HasPrefix(reply, "Sure! To assist you, please share: "))
}

func TestHandleMessageEmptyBodyFieldsDefault(t *testing.T) {
	h := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/chat/message", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	h.HandleMessage(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	reply := decodeReply(t, w.Body.Bytes())
	assert.Contains(t, reply, "please share")
}

func TestHandleMessageMalformedBodyDegradesToApology(t *testing.T) {
	h := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/chat/message", strings.NewReader(`{broken`))
	w := httptest.NewRecorder()

	h.HandleMessage(w, req)

	// Internal failure never surfaces as an error status.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, conversation.ApologyReply, decodeReply(t, w.Body.Bytes()))
}

func TestHandleMessageMediaShortcut(t *testing.T) {
	h := NewHandler(conversation.NewEngine("https://happyhearts.example/tour"), nil, nil, logging.New("error"))

	body := `{"messages":[{"role":"user","content":"send photos please"}]}`
	req := httptest.NewRequest(http.MethodPost, "/chat/message", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.HandleMessage(w, req)

	assert.Equal(t, "Here is our venue preview: https://happyhearts.example/tour", decodeReply(t, w.Body.Bytes()))
}

func TestHandleHistory(t *testing.T) {
	ts := newMockTranscript()
	require.NoError(t, ts.Append(context.Background(), "sess1", conversation.TranscriptMessage{
		Role: "user", Body: "hello", Timestamp: time.Now().UTC(),
	}))
	h := newTestHandler(ts)

	req := httptest.NewRequest(http.MethodGet, "/chat/history?session=sess1", nil)
	w := httptest.NewRecorder()

	h.HandleHistory(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Messages []HistoryMessage `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "hello", resp.Messages[0].Text)
}

func TestHandleHistoryRequiresSession(t *testing.T) {
	h := newTestHandler(newMockTranscript())

	req := httptest.NewRequest(http.MethodGet, "/chat/history", nil)
	w := httptest.NewRecorder()

	h.HandleHistory(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func dialWS(t *testing.T, h *Handler, session string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat/ws"
	if session != "" {
		url += "?session=" + session
	}
	conn, err := websocket.Dial(url, "", "http://localhost/")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func receiveWS(t *testing.T, conn *websocket.Conn) OutboundMessage {
	t.Helper()
	var msg OutboundMessage
	require.NoError(t, websocket.JSON.Receive(conn, &msg))
	return msg
}

func TestWebSocketConversation(t *testing.T) {
	ts := newMockTranscript()
	conn := dialWS(t, newTestHandler(ts), "wssess")

	hello := receiveWS(t, conn)
	assert.Equal(t, "session", hello.Type)
	assert.Equal(t, "wssess", hello.SessionID)

	require.NoError(t, websocket.JSON.Send(conn, InboundMessage{Type: "ping"}))
	assert.Equal(t, "pong", receiveWS(t, conn).Type)

	// Blank messages are ignored; the next reply answers the real one.
	require.NoError(t, websocket.JSON.Send(conn, InboundMessage{Type: "message", Text: "   "}))
	require.NoError(t, websocket.JSON.Send(conn, InboundMessage{Type: "message", Text: "Hi, I am Rahul Sharma"}))

	reply := receiveWS(t, conn)
	assert.Equal(t, "message", reply.Type)
	assert.Equal(t, conversation.ChatRoleAssistant, reply.Role)
	assert.Contains(t, reply.Text, "please share")

	// Both turns were persisted before the reply was sent.
	msgs, err := ts.List(context.Background(), "wssess", 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, conversation.ChatRoleUser, msgs[0].Role)
	assert.Equal(t, "Hi, I am Rahul Sharma", msgs[0].Body)
	assert.Equal(t, conversation.ChatRoleAssistant, msgs[1].Role)
}

func TestWebSocketAssignsSessionID(t *testing.T) {
	conn := dialWS(t, newTestHandler(nil), "")

	hello := receiveWS(t, conn)
	assert.Equal(t, "session", hello.Type)
	assert.Len(t, hello.SessionID, 32)
}

func TestWebSocketReplaysHistory(t *testing.T) {
	ts := newMockTranscript()
	require.NoError(t, ts.Append(context.Background(), "returning", conversation.TranscriptMessage{
		Role: conversation.ChatRoleUser, Body: "Hi, I am Meera", Timestamp: time.Now().UTC(),
	}))
	require.NoError(t, ts.Append(context.Background(), "returning", conversation.TranscriptMessage{
		Role: conversation.ChatRoleAssistant, Body: "Sure! To assist you, please share: Occasion.", Timestamp: time.Now().UTC(),
	}))

	conn := dialWS(t, newTestHandler(ts), "returning")
	require.Equal(t, "session", receiveWS(t, conn).Type)

	history := receiveWS(t, conn)
	assert.Equal(t, "history", history.Type)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, "Hi, I am Meera", history.Messages[0].Text)
	assert.Equal(t, conversation.ChatRoleAssistant, history.Messages[1].Role)
}

func TestGenerateSessionID(t *testing.T) {
	s1 := generateSessionID()
	s2 := generateSessionID()
	assert.NotEmpty(t, s1)
	assert.NotEqual(t, s1, s2)
	assert.Len(t, s1, 32) // 16 bytes = 32 hex chars
}

func TestHealthCheck(t *testing.T) {
	h := newTestHandler(nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	h.HealthCheck(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
