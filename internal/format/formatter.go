// Package format turns resolver outcomes into display text. Every outcome
// kind has a deterministic template; booking confirmations and retrieval
// listings may additionally be phrased by the text-generation service, with
// the template as the fallback when that call fails. Both paths carry the
// same data, so tests assert on outcome fields rather than prose.
package format

import (
	"context"
	"fmt"
	"strings"

	"github.com/wolfman30/appointment-assistant/internal/appointment"
	"github.com/wolfman30/appointment-assistant/internal/llm"
	"github.com/wolfman30/appointment-assistant/internal/resolver"
	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

// Formatter renders outcomes. A nil client (or DisableLLM) keeps everything
// on the deterministic templates.
type Formatter struct {
	client     llm.Client
	logger     *logging.Logger
	disableLLM bool
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithoutLLM forces the deterministic templates for every outcome.
func WithoutLLM() Option {
	return func(f *Formatter) { f.disableLLM = true }
}

// New creates a formatter. client may be nil.
func New(client llm.Client, logger *logging.Logger, opts ...Option) *Formatter {
	if logger == nil {
		logger = logging.Default()
	}
	f := &Formatter{client: client, logger: logger}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format renders one outcome as user-facing text.
func (f *Formatter) Format(ctx context.Context, out resolver.Outcome) string {
	switch out.Kind {
	case resolver.KindNeedsInfo, resolver.KindInvalidEmail:
		return withProse(out.Prose, out.FollowupPrompt)

	case resolver.KindDuplicateBooking:
		return fmt.Sprintf("You already have an appointment on %s at %s. Would you like to book a different time?",
			out.Date, out.Time)

	case resolver.KindBooked:
		return f.formatConfirmation(ctx, out.Record)

	case resolver.KindRetrieved:
		return f.formatListing(ctx, out.QueryEmail, out.Records)

	case resolver.KindNoneFound:
		return fmt.Sprintf("I couldn't find any appointments associated with %s. Would you like to book a new appointment?",
			out.QueryEmail)

	case resolver.KindCancelSingle:
		if out.Deleted {
			return fmt.Sprintf("I've successfully canceled your appointment on %s at %s. Is there anything else I can help you with?",
				out.Record.Date, out.Record.Time)
		}
		return "I encountered an error while trying to cancel your appointment. Please try again or contact support."

	case resolver.KindCancelAmbiguous:
		return formatCancelChoices(out.Records)

	case resolver.KindCancelNotFound:
		return "I couldn't find any appointments to cancel. Please check your details and try again."

	case resolver.KindNoActionableIntent:
		return out.Passthrough

	case resolver.KindError:
		return "I'm sorry, something went wrong on my end. Please try again in a moment."

	default:
		f.logger.Warn("unknown outcome kind", "kind", out.Kind)
		return "I can help you book appointments or check your existing appointments. What would you like to do?"
	}
}

// withProse prefixes the conversational remainder of the generated reply to
// a follow-up prompt, exactly one blank line between them.
func withProse(prose, prompt string) string {
	prose = strings.TrimSpace(prose)
	if prose == "" {
		return prompt
	}
	return prose + "\n\n" + prompt
}

func (f *Formatter) formatConfirmation(ctx context.Context, rec *appointment.Record) string {
	if f.llmEnabled() {
		text, err := f.phrase(ctx, llm.ConfirmationSystemPrompt,
			"Please format this appointment confirmation naturally:\n"+confirmationData(rec))
		if err == nil {
			return text
		}
		f.logger.Warn("confirmation phrasing failed, using template", "error", err)
	}
	return confirmationTemplate(rec)
}

func (f *Formatter) formatListing(ctx context.Context, email string, records []appointment.Record) string {
	if f.llmEnabled() {
		text, err := f.phrase(ctx, llm.ListingSystemPrompt,
			fmt.Sprintf("Please format these appointments naturally. Start with \"Here are the appointments for %s:\"\n\nAppointment Data:\n%s",
				email, listingData(records)))
		if err == nil {
			return text
		}
		f.logger.Warn("listing phrasing failed, using template", "error", err)
	}
	return listingTemplate(email, records)
}

func (f *Formatter) llmEnabled() bool {
	return f.client != nil && !f.disableLLM
}

func (f *Formatter) phrase(ctx context.Context, system, input string) (string, error) {
	resp, err := f.client.Complete(ctx, llm.Request{
		System:   []string{system},
		Messages: []llm.ChatMessage{{Role: llm.ChatRoleUser, Content: input}},
	})
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("format: empty phrasing response")
	}
	return text, nil
}
