// Package dialogue holds per-conversation memory: the last-known contact
// fields used to fill omitted booking slots across turns, plus the chat
// history handed to the text-generation service.
package dialogue

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// historyLimit bounds how many turns ride along to the generation service.
const historyLimit = 40

// State is the slot-filling memory for one conversation. Fields are updated
// last-seen-wins and never cleared for the life of the conversation, so a
// user who gave their email three turns ago does not have to repeat it.
type State struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Message is one conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session binds a conversation ID to its state and history. The hosting UI
// owns the session lifetime; one UI session maps to exactly one Session, so
// no locking is needed inside it.
type Session struct {
	ID      string    `json:"id"`
	State   State     `json:"state"`
	History []Message `json:"history,omitempty"`
}

// Append records a turn, discarding the oldest turns beyond the history
// limit.
func (s *Session) Append(role, content string) {
	s.History = append(s.History, Message{Role: role, Content: content})
	if len(s.History) > historyLimit {
		s.History = s.History[len(s.History)-historyLimit:]
	}
}
