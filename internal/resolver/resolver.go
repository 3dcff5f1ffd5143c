// Package resolver turns extracted appointment details, dialogue state and
// the appointment store into one structured outcome per inbound message.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/wolfman30/appointment-assistant/internal/appointment"
	"github.com/wolfman30/appointment-assistant/internal/dialogue"
	"github.com/wolfman30/appointment-assistant/internal/extract"
	"github.com/wolfman30/appointment-assistant/internal/parse"
	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

// retrievalPhrases trigger the lookup shortcut on the raw user message. The
// keyword heuristic outranks whatever the generation service classified.
var retrievalPhrases = []string{
	"retrieve",
	"check appointment",
	"my appointment",
	"show appointment",
	"view appointment",
	"get appointment",
	"find appointment",
	"look up",
	"lookup",
	"get info",
	"find info",
	"check info",
	"appointment info",
}

var cancelIDPattern = regexp.MustCompile(`(?i)\bid\s*#?\s*(\d+)\b`)

// Resolver decides what to do with one inbound message.
type Resolver struct {
	repo   appointment.Repository
	logger *logging.Logger
}

// New creates a resolver backed by the given repository.
func New(repo appointment.Repository, logger *logging.Logger) *Resolver {
	if repo == nil {
		panic("resolver: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Resolver{repo: repo, logger: logger}
}

// IsRetrievalRequest reports whether the raw user message matches a lookup
// trigger phrase. Callers can skip the generation service entirely when it
// does.
func IsRetrievalRequest(userMessage string) bool {
	lowered := strings.ToLower(strings.TrimSpace(userMessage))
	for _, phrase := range retrievalPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

// Resolve processes one inbound message to one outcome.
//
// userMessage is the raw user text; generatedReply is the text-generation
// service's response for this turn (empty when the caller short-circuited the
// call). state is updated in place: a name or email learned this turn sticks
// even when the repository later fails.
func (r *Resolver) Resolve(ctx context.Context, state *dialogue.State, userMessage, generatedReply string) Outcome {
	// An email typed directly into the message is captured before anything
	// else so the shortcut below can use it on the same turn.
	if email := parse.FindEmail(userMessage); email != "" {
		state.Email = email
	}

	if IsRetrievalRequest(userMessage) {
		return r.resolveShortcutRetrieval(ctx, state)
	}

	details, clean := extract.AppointmentDetails(generatedReply)
	if details == nil {
		return Outcome{Kind: KindNoActionableIntent, Prose: clean, Passthrough: clean}
	}

	// Last-seen-wins slot memory; never rolled back.
	if details.Name != "" {
		state.Name = details.Name
	}
	if details.Email != "" {
		state.Email = details.Email
	}

	switch details.Action {
	case extract.ActionBook:
		return r.resolveBook(ctx, state, details, clean)
	case extract.ActionRetrieve:
		return r.resolveRetrieve(ctx, state, details, clean)
	case extract.ActionCancel:
		return r.resolveCancel(ctx, state, details, clean, userMessage)
	default:
		return Outcome{Kind: KindNoActionableIntent, Prose: clean, Passthrough: clean}
	}
}

func (r *Resolver) resolveShortcutRetrieval(ctx context.Context, state *dialogue.State) Outcome {
	if state.Email == "" {
		return Outcome{
			Kind:           KindNeedsInfo,
			MissingField:   FieldEmail,
			FollowupPrompt: "To check your appointments, I'll need your email address. What email did you use when booking?",
		}
	}
	return r.listAppointments(ctx, "", state.Email, "")
}

func (r *Resolver) resolveBook(ctx context.Context, state *dialogue.State, details *extract.Details, clean string) Outcome {
	name := details.Name
	if name == "" {
		name = state.Name
	}
	email := details.Email
	if email == "" {
		email = state.Email
	}

	// Validation is strictly ordered and asks for exactly one field at a
	// time.
	if name == "" {
		return Outcome{
			Kind:           KindNeedsInfo,
			Prose:          clean,
			MissingField:   FieldName,
			FollowupPrompt: "Could you please tell me your name?",
		}
	}
	if email == "" {
		return Outcome{
			Kind:           KindNeedsInfo,
			Prose:          clean,
			MissingField:   FieldEmail,
			FollowupPrompt: fmt.Sprintf("Thanks, %s! What's your email address?", name),
		}
	}
	if !parse.ValidEmail(email) {
		return Outcome{
			Kind:           KindInvalidEmail,
			Prose:          clean,
			RawValue:       email,
			FollowupPrompt: "The email address doesn't seem valid. Could you please provide a valid email?",
		}
	}
	if details.Date == "" {
		return Outcome{
			Kind:           KindNeedsInfo,
			Prose:          clean,
			MissingField:   FieldDate,
			FollowupPrompt: "Great! What date would you like to book? (Any format like 3/15/2025 or 2025-03-15 works)",
		}
	}
	if details.Time == "" {
		return Outcome{
			Kind:           KindNeedsInfo,
			Prose:          clean,
			MissingField:   FieldTime,
			FollowupPrompt: fmt.Sprintf("Perfect! What time would you prefer on %s?", details.Date),
		}
	}
	if details.Purpose == "" && !details.Has("purpose") {
		return Outcome{
			Kind:           KindNeedsInfo,
			Prose:          clean,
			MissingField:   FieldPurpose,
			FollowupPrompt: "Almost done! Could you tell me the purpose of this appointment?",
		}
	}

	purpose := details.Purpose
	if purpose == "" {
		purpose = appointment.DefaultPurpose
	}

	exists, err := r.repo.Exists(ctx, name, email, details.Date, details.Time)
	if err != nil {
		return r.repositoryError("duplicate check", err)
	}
	if exists {
		return Outcome{Kind: KindDuplicateBooking, Prose: clean, Date: details.Date, Time: details.Time}
	}

	record, err := r.repo.Create(ctx, name, email, details.Date, details.Time, purpose)
	if errors.Is(err, appointment.ErrDuplicate) {
		// Lost the check-then-insert race to a concurrent session; the
		// uniqueness index kept the store consistent.
		return Outcome{Kind: KindDuplicateBooking, Prose: clean, Date: details.Date, Time: details.Time}
	}
	if err != nil {
		return r.repositoryError("create booking", err)
	}

	r.logger.Info("appointment booked",
		"id", record.ID, "date", record.Date, "time", record.Time)
	return Outcome{Kind: KindBooked, Prose: clean, Record: record}
}

func (r *Resolver) resolveRetrieve(ctx context.Context, state *dialogue.State, details *extract.Details, clean string) Outcome {
	email := details.Email
	if email == "" {
		email = state.Email
	}
	if email == "" {
		return Outcome{
			Kind:           KindNeedsInfo,
			Prose:          clean,
			MissingField:   FieldEmail,
			FollowupPrompt: "Please provide your email address so I can check your appointments.",
		}
	}

	outcome := r.listAppointments(ctx, "", email, details.Date)
	outcome.Prose = clean
	return outcome
}

func (r *Resolver) resolveCancel(ctx context.Context, state *dialogue.State, details *extract.Details, clean, userMessage string) Outcome {
	name := details.Name
	if name == "" {
		name = state.Name
	}
	email := details.Email
	if email == "" {
		email = state.Email
	}

	if name == "" && email == "" {
		return Outcome{
			Kind:           KindNeedsInfo,
			Prose:          clean,
			MissingField:   FieldEmail,
			FollowupPrompt: "Please provide your name or email so I can find and cancel your appointment.",
		}
	}

	matches, err := r.repo.Find(ctx, appointment.Query{Name: name, Email: email, Date: details.Date})
	if err != nil {
		return r.repositoryError("find cancellation candidates", err)
	}
	if len(matches) == 0 {
		return Outcome{Kind: KindCancelNotFound, Prose: clean}
	}

	// "Cancel appointment ID 5" picks one candidate out of a previously
	// ambiguous set.
	if m := cancelIDPattern.FindStringSubmatch(userMessage); m != nil {
		id, _ := strconv.ParseInt(m[1], 10, 64)
		for i := range matches {
			if matches[i].ID == id {
				return r.deleteRecord(ctx, &matches[i], clean)
			}
		}
		return Outcome{Kind: KindCancelNotFound, Prose: clean}
	}

	if len(matches) == 1 {
		return r.deleteRecord(ctx, &matches[0], clean)
	}

	return Outcome{Kind: KindCancelAmbiguous, Prose: clean, Records: matches}
}

func (r *Resolver) deleteRecord(ctx context.Context, record *appointment.Record, clean string) Outcome {
	deleted, err := r.repo.Delete(ctx, record.ID)
	if err != nil {
		return r.repositoryError("delete booking", err)
	}
	if deleted {
		r.logger.Info("appointment cancelled", "id", record.ID, "date", record.Date, "time", record.Time)
	}
	return Outcome{Kind: KindCancelSingle, Prose: clean, Record: record, Deleted: deleted}
}

func (r *Resolver) listAppointments(ctx context.Context, name, email, date string) Outcome {
	records, err := r.repo.Find(ctx, appointment.Query{Name: name, Email: email, Date: date})
	if err != nil {
		return r.repositoryError("list appointments", err)
	}
	if len(records) == 0 {
		return Outcome{Kind: KindNoneFound, QueryEmail: email, QueryDate: date}
	}
	return Outcome{Kind: KindRetrieved, Records: records, QueryEmail: email, QueryDate: date}
}

func (r *Resolver) repositoryError(op string, err error) Outcome {
	r.logger.Error("repository failure", "op", op, "error", err)
	return Outcome{Kind: KindError, ErrDescription: fmt.Sprintf("%s: %v", op, err)}
}
