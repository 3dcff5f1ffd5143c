// Package extract pulls the structured appointment block out of generated
// model replies.
//
// The wire format is a compatibility contract with the generation prompt: at
// most one <APPOINTMENT_DETAILS>...</APPOINTMENT_DETAILS> section containing
// newline-separated "key: value" pairs for name, email, date, time, purpose
// and action. Tags and keys are case-sensitive; the section may span lines
// and can sit anywhere in the reply.
package extract

import (
	"regexp"
	"strings"

	"github.com/wolfman30/appointment-assistant/internal/parse"
)

// Action classifies what the user wants done with an appointment.
type Action string

const (
	ActionBook     Action = "book"
	ActionRetrieve Action = "retrieve"
	ActionCancel   Action = "cancel"
	ActionNone     Action = "none"
)

// Details holds the fields recovered from one generated reply. A field the
// block did not mention is the empty string; Has reports presence explicitly
// for the purpose field where "mentioned but blank" matters.
type Details struct {
	Name    string
	Email   string
	Date    string
	Time    string
	Purpose string
	Action  Action

	present map[string]bool
}

// Has reports whether the block contained a line for the given key, even if
// its value was empty.
func (d *Details) Has(key string) bool {
	return d != nil && d.present[key]
}

var (
	blockPattern = regexp.MustCompile(`(?s)<APPOINTMENT_DETAILS>(.*?)</APPOINTMENT_DETAILS>`)

	// Anchored per line; [ \t] rather than \s keeps an empty value from
	// swallowing the following line.
	fieldPatterns = map[string]*regexp.Regexp{
		"name":    regexp.MustCompile(`(?m)^name:[ \t]*(.*)$`),
		"email":   regexp.MustCompile(`(?m)^email:[ \t]*(.*)$`),
		"date":    regexp.MustCompile(`(?m)^date:[ \t]*(.*)$`),
		"time":    regexp.MustCompile(`(?m)^time:[ \t]*(.*)$`),
		"purpose": regexp.MustCompile(`(?m)^purpose:[ \t]*(.*)$`),
		"action":  regexp.MustCompile(`(?m)^action:[ \t]*(.*)$`),
	}
)

// AppointmentDetails separates the structured block from the conversational
// remainder of a generated reply.
//
// When no block is present it returns (nil, trimmed text). Otherwise each
// field line is scanned independently, date and time values are normalized,
// and the block is stripped from the reply so only prose reaches the user.
func AppointmentDetails(responseText string) (*Details, string) {
	m := blockPattern.FindStringSubmatch(responseText)
	if m == nil {
		return nil, strings.TrimSpace(responseText)
	}

	body := m[1]
	d := &Details{present: make(map[string]bool)}

	for key, pattern := range fieldPatterns {
		fm := pattern.FindStringSubmatch(body)
		if fm == nil {
			continue
		}
		value := strings.TrimSpace(fm[1])
		d.present[key] = true
		switch key {
		case "name":
			d.Name = value
		case "email":
			d.Email = value
		case "date":
			d.Date = parse.NormalizeDate(value)
		case "time":
			d.Time = parse.NormalizeClock(value)
		case "purpose":
			d.Purpose = value
		case "action":
			d.Action = Action(strings.ToLower(value))
		}
	}

	clean := strings.TrimSpace(blockPattern.ReplaceAllString(responseText, ""))
	return d, clean
}
