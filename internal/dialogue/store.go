package dialogue

import (
	"context"
	"sync"
)

// Store persists sessions between turns. Load never fails on a missing
// session; it returns a fresh one so a first message needs no special
// casing.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
}

// MemoryStore keeps sessions in process memory. The default for single-node
// deployments and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// Load returns a copy of the stored session, or a fresh one.
func (s *MemoryStore) Load(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.sessions[id]
	if !ok {
		return &Session{ID: id}, nil
	}
	copied := *stored
	copied.History = append([]Message(nil), stored.History...)
	return &copied, nil
}

// Save stores a copy of the session.
func (s *MemoryStore) Save(ctx context.Context, session *Session) error {
	copied := *session
	copied.History = append([]Message(nil), session.History...)
	s.mu.Lock()
	s.sessions[session.ID] = &copied
	s.mu.Unlock()
	return nil
}
