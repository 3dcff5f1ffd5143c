package resolver

import "github.com/wolfman30/appointment-assistant/internal/appointment"

// Kind tags the resolver's decision for one inbound message.
type Kind string

const (
	// KindNeedsInfo asks the user for exactly one missing field.
	KindNeedsInfo Kind = "needs_info"
	// KindInvalidEmail rejects a syntactically bad address.
	KindInvalidEmail Kind = "invalid_email"
	// KindDuplicateBooking refuses a second identical booking.
	KindDuplicateBooking Kind = "duplicate_booking"
	// KindBooked confirms a stored appointment.
	KindBooked Kind = "booked"
	// KindRetrieved lists appointments found for a query.
	KindRetrieved Kind = "retrieved"
	// KindNoneFound reports an empty retrieval.
	KindNoneFound Kind = "none_found"
	// KindCancelSingle reports a single-match cancellation.
	KindCancelSingle Kind = "cancel_single"
	// KindCancelAmbiguous lists candidates the user must pick from by ID.
	KindCancelAmbiguous Kind = "cancel_ambiguous"
	// KindCancelNotFound reports that nothing matched a cancellation.
	KindCancelNotFound Kind = "cancel_not_found"
	// KindNoActionableIntent passes the generated prose through unchanged.
	KindNoActionableIntent Kind = "no_actionable_intent"
	// KindError reports a repository failure as a recoverable outcome.
	KindError Kind = "error"
)

// Field names a booking slot the user still has to provide.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldDate    Field = "date"
	FieldTime    Field = "time"
	FieldPurpose Field = "purpose"
)

// Outcome is the resolver's structured decision. Kind selects which fields
// are meaningful; the formatter turns it into display text and tests assert
// on the data directly.
type Outcome struct {
	Kind Kind

	// Prose is the conversational remainder of the generated reply, shown
	// ahead of follow-up prompts.
	Prose string

	// NeedsInfo / InvalidEmail
	MissingField   Field
	FollowupPrompt string
	RawValue       string

	// DuplicateBooking
	Date string
	Time string

	// Booked / CancelSingle
	Record  *appointment.Record
	Deleted bool

	// Retrieved / CancelAmbiguous
	Records    []appointment.Record
	QueryEmail string
	QueryDate  string

	// NoActionableIntent
	Passthrough string

	// Error
	ErrDescription string
}
