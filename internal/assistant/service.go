// Package assistant composes the resolver, formatter, session store and
// text-generation client into the single entry point the UI layers call.
package assistant

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wolfman30/appointment-assistant/internal/dialogue"
	"github.com/wolfman30/appointment-assistant/internal/format"
	"github.com/wolfman30/appointment-assistant/internal/llm"
	"github.com/wolfman30/appointment-assistant/internal/observability/metrics"
	"github.com/wolfman30/appointment-assistant/internal/resolver"
	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

var tracer = otel.Tracer("appointment-assistant/internal/assistant")

// Service handles one inbound chat message end to end. It never propagates a
// fault to the caller: every path yields a display-ready reply.
type Service struct {
	store     dialogue.Store
	resolver  *resolver.Resolver
	formatter *format.Formatter
	client    llm.Client
	logger    *logging.Logger
	metrics   *metrics.ConversationMetrics
}

// New constructs the assistant service. client may be nil, in which case
// only the retrieval shortcut and template formatting are available.
func New(store dialogue.Store, res *resolver.Resolver, formatter *format.Formatter, client llm.Client, logger *logging.Logger, m *metrics.ConversationMetrics) *Service {
	if store == nil {
		panic("assistant: session store required")
	}
	if res == nil {
		panic("assistant: resolver required")
	}
	if formatter == nil {
		panic("assistant: formatter required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		store:     store,
		resolver:  res,
		formatter: formatter,
		client:    client,
		logger:    logger,
		metrics:   m,
	}
}

// Greeting opens a session with a randomized welcome message and records it
// in the session history.
func (s *Service) Greeting(ctx context.Context, sessionID string) string {
	greeting := format.Greeting()
	session, err := s.store.Load(ctx, sessionID)
	if err != nil {
		s.logger.Error("session load failed for greeting", "session_id", sessionID, "error", err)
		return greeting
	}
	session.Append(dialogue.RoleAssistant, greeting)
	if err := s.store.Save(ctx, session); err != nil {
		s.logger.Error("session save failed for greeting", "session_id", sessionID, "error", err)
	}
	return greeting
}

// HandleMessage processes one user message and returns the reply to display.
//
// The retrieval shortcut bypasses the generation service entirely; otherwise
// the conversation history plus the new message go to the model and its
// reply is resolved into an outcome. Session state is saved best-effort; a
// failed save loses slot memory for future turns but never the current
// reply.
func (s *Service) HandleMessage(ctx context.Context, sessionID, message string) string {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "assistant.handle_message")
	defer span.End()
	span.SetAttributes(attribute.String("assistant.session_id", sessionID))

	s.metrics.ObserveMessage("chat")

	session, err := s.store.Load(ctx, sessionID)
	if err != nil {
		s.logger.Error("session load failed", "session_id", sessionID, "error", err)
		session = &dialogue.Session{ID: sessionID}
	}

	var generated string
	if s.client != nil && !resolver.IsRetrievalRequest(message) {
		generated = s.generate(ctx, session, message)
	}

	outcome := s.resolver.Resolve(ctx, &session.State, message, generated)
	span.SetAttributes(attribute.String("assistant.outcome", string(outcome.Kind)))
	s.metrics.ObserveOutcome(string(outcome.Kind))

	reply := s.formatter.Format(ctx, outcome)
	if reply == "" {
		reply = "I can help you book appointments or check your existing appointments. What would you like to do?"
	}

	session.Append(dialogue.RoleUser, message)
	session.Append(dialogue.RoleAssistant, reply)
	if err := s.store.Save(ctx, session); err != nil {
		s.logger.Error("session save failed", "session_id", sessionID, "error", err)
	}

	s.metrics.ObserveResolveLatency(time.Since(start).Seconds())
	return reply
}

// Session exposes the dialogue state to the hosting UI.
func (s *Service) Session(ctx context.Context, sessionID string) (*dialogue.Session, error) {
	return s.store.Load(ctx, sessionID)
}

func (s *Service) generate(ctx context.Context, session *dialogue.Session, message string) string {
	req := llm.Request{
		System: []string{llm.BookingSystemPrompt},
	}
	for _, turn := range session.History {
		req.Messages = append(req.Messages, llm.ChatMessage{Role: turn.Role, Content: turn.Content})
	}
	req.Messages = append(req.Messages, llm.ChatMessage{Role: llm.ChatRoleUser, Content: message})

	start := time.Now()
	resp, err := s.client.Complete(ctx, req)
	s.metrics.ObserveLLMLatency(time.Since(start).Seconds())
	if err != nil {
		// The resolver still runs on the raw message; formatting falls
		// back to templates.
		s.metrics.ObserveLLMFailure()
		s.logger.Error("generation service failed", "error", err)
		return ""
	}
	return resp.Text
}
