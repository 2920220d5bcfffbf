package metrics

import "github.com/prometheus/client_golang/prometheus"

// ChatMetrics exposes counters/histograms for the chat and webhook flows.
type ChatMetrics struct {
	repliesTotal *prometheus.CounterVec
	webhookTotal *prometheus.CounterVec
	replyLatency *prometheus.HistogramVec
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		repliesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "banquet",
			Subsystem: "chat",
			Name:      "replies_total",
			Help:      "Total chat replies produced",
		}, []string{"channel", "status"}),
		webhookTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "banquet",
			Subsystem: "messaging",
			Name:      "inbound_webhook_total",
			Help:      "Total inbound WhatsApp webhooks",
		}, []string{"kind", "status"}),
		replyLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "banquet",
			Subsystem: "chat",
			Name:      "reply_latency_seconds",
			Help:      "Latency of reply computation",
			Buckets:   prometheus.DefBuckets,
		}, []string{"channel"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.repliesTotal, m.webhookTotal, m.replyLatency)
	return m
}

func (m *ChatMetrics) ObserveReply(channel, status string) {
	if m == nil {
		return
	}
	m.repliesTotal.WithLabelValues(channel, status).Inc()
}

func (m *ChatMetrics) ObserveWebhook(kind, status string) {
	if m == nil {
		return
	}
	m.webhookTotal.WithLabelValues(kind, status).Inc()
}

func (m *ChatMetrics) ObserveReplyLatency(channel string, seconds float64) {
	if m == nil {
		return
	}
	m.replyLatency.WithLabelValues(channel).Observe(seconds)
}
