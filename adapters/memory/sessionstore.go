// Package memory provides in-memory implementations of storage ports.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/stonefield/jiraSOAP/domain/auth"
	"github.com/stonefield/jiraSOAP/ports"
)

// ErrNotFound is returned when no session is stored for an endpoint.
var ErrNotFound = ports.ErrNotFound

// SessionStore is an in-memory implementation of ports.SessionStore.
// Sessions live as long as the process.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]auth.Session // by normalized endpoint
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]auth.Session)}
}

// Load retrieves the session for endpoint.
func (s *SessionStore) Load(ctx context.Context, endpoint string) (auth.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[auth.NormalizeEndpoint(endpoint)]
	if !ok {
		return auth.Session{}, ErrNotFound
	}
	return sess, nil
}

// Save stores a session, replacing the previous one for its endpoint.
func (s *SessionStore) Save(ctx context.Context, sess auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess.Endpoint = auth.NormalizeEndpoint(sess.Endpoint)
	s.sessions[sess.Endpoint] = sess
	return nil
}

// Delete removes the session for endpoint.
func (s *SessionStore) Delete(ctx context.Context, endpoint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, auth.NormalizeEndpoint(endpoint))
	return nil
}

// List returns every stored session ordered by endpoint.
func (s *SessionStore) List(ctx context.Context) ([]auth.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]auth.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Endpoint < out[j].Endpoint })
	return out, nil
}

// Len returns the number of stored sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Ensure interface compliance.
var (
	_ ports.SessionStore  = (*SessionStore)(nil)
	_ ports.SessionLister = (*SessionStore)(nil)
)
