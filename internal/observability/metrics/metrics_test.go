package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveReply(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewChatMetrics(reg)

	m.ObserveReply("http", "ok")
	m.ObserveReply("http", "ok")
	m.ObserveReply("http", "apology")

	if got := testutil.ToFloat64(m.repliesTotal.WithLabelValues("http", "ok")); got != 2 {
		t.Errorf("replies ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.repliesTotal.WithLabelValues("http", "apology")); got != 1 {
		t.Errorf("replies apology = %v, want 1", got)
	}
}

func TestObserveWebhook(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewChatMetrics(reg)

	m.ObserveWebhook("verify", "ok")

	if got := testutil.ToFloat64(m.webhookTotal.WithLabelValues("verify", "ok")); got != 1 {
		t.Errorf("webhook verify = %v, want 1", got)
	}
}

func TestNilSafe(t *testing.T) {
	var m *ChatMetrics
	m.ObserveReply("http", "ok")
	m.ObserveWebhook("verify", "ok")
	m.ObserveReplyLatency("http", 0.1)
}
