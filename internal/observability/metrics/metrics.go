package metrics

import "github.com/prometheus/client_golang/prometheus"

// ConversationMetrics exposes counters/histograms for the message-handling
// flow.
type ConversationMetrics struct {
	messagesTotal  *prometheus.CounterVec
	outcomesTotal  *prometheus.CounterVec
	llmLatency     prometheus.Histogram
	llmFailures    prometheus.Counter
	resolveLatency prometheus.Histogram
}

func NewConversationMetrics(reg prometheus.Registerer) *ConversationMetrics {
	m := &ConversationMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assistant",
			Subsystem: "conversation",
			Name:      "messages_total",
			Help:      "Total inbound chat messages",
		}, []string{"channel"}),
		outcomesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assistant",
			Subsystem: "conversation",
			Name:      "outcomes_total",
			Help:      "Resolver outcomes by kind",
		}, []string{"kind"}),
		llmLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "assistant",
			Subsystem: "llm",
			Name:      "request_latency_seconds",
			Help:      "Latency of text-generation calls",
			Buckets:   prometheus.DefBuckets,
		}),
		llmFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "assistant",
			Subsystem: "llm",
			Name:      "failures_total",
			Help:      "Failed text-generation calls",
		}),
		resolveLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "assistant",
			Subsystem: "conversation",
			Name:      "resolve_latency_seconds",
			Help:      "Latency of end-to-end message handling",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.messagesTotal, m.outcomesTotal, m.llmLatency, m.llmFailures, m.resolveLatency)
	return m
}

func (m *ConversationMetrics) ObserveMessage(channel string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(channel).Inc()
}

func (m *ConversationMetrics) ObserveOutcome(kind string) {
	if m == nil {
		return
	}
	m.outcomesTotal.WithLabelValues(kind).Inc()
}

func (m *ConversationMetrics) ObserveLLMLatency(seconds float64) {
	if m == nil {
		return
	}
	m.llmLatency.Observe(seconds)
}

func (m *ConversationMetrics) ObserveLLMFailure() {
	if m == nil {
		return
	}
	m.llmFailures.Inc()
}

func (m *ConversationMetrics) ObserveResolveLatency(seconds float64) {
	if m == nil {
		return
	}
	m.resolveLatency.Observe(seconds)
}
