package rpc

import (
	"sync"
	"time"

	"github.com/stonefield/jiraSOAP/domain/auth"
)

// Session holds the token forwarded by every authenticated call. It is safe
// for concurrent use; ordering concurrent logins is up to the caller.
type Session struct {
	mu       sync.RWMutex
	token    string
	username string
	issuedAt time.Time
}

// NewSession returns a session with no token.
func NewSession() *Session {
	return &Session{}
}

// Set records a freshly issued token.
func (s *Session) Set(username, token string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
	s.token = token
	s.issuedAt = at
}

// Clear forgets the token. Logging out remotely does not call this.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = ""
	s.token = ""
	s.issuedAt = time.Time{}
}

// Token returns the cached token, or "" when not logged in.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Username returns the name the token was issued to.
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// IssuedAt returns when the token was recorded.
func (s *Session) IssuedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.issuedAt
}

// Active reports whether a token is cached.
func (s *Session) Active() bool {
	return s.Token() != ""
}

// Snapshot copies the session into a persistable value for endpoint.
func (s *Session) Snapshot(endpoint string) auth.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return auth.NewSession(endpoint, s.username, s.token, s.issuedAt)
}

// Restore replaces the session state with a persisted one.
func (s *Session) Restore(a auth.Session) {
	s.Set(a.Username, a.Token, a.CreatedAt)
}
