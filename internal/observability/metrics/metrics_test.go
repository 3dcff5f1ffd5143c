package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestConversationMetricsRegisterAndCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewConversationMetrics(reg)

	m.ObserveMessage("webchat")
	m.ObserveMessage("webchat")
	m.ObserveOutcome("booked")
	m.ObserveLLMLatency(0.25)
	m.ObserveLLMFailure()
	m.ObserveResolveLatency(0.01)

	if got := testutil.ToFloat64(m.messagesTotal.WithLabelValues("webchat")); got != 2 {
		t.Fatalf("expected 2 messages, got %v", got)
	}
	if got := testutil.ToFloat64(m.outcomesTotal.WithLabelValues("booked")); got != 1 {
		t.Fatalf("expected 1 booked outcome, got %v", got)
	}
	if got := testutil.ToFloat64(m.llmFailures); got != 1 {
		t.Fatalf("expected 1 llm failure, got %v", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *ConversationMetrics
	m.ObserveMessage("webchat")
	m.ObserveOutcome("booked")
	m.ObserveLLMLatency(1)
	m.ObserveLLMFailure()
	m.ObserveResolveLatency(1)
}
