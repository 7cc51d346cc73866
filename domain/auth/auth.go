// Package auth provides login session value types and pure validation functions.
// This package has NO dependencies on I/O or external packages.
package auth

import (
	"strings"
	"time"
)

// Session is a cached login to one remote endpoint (immutable value type).
// The token is opaque; the remote service decides when it stops working.
type Session struct {
	Endpoint  string
	Username  string
	Token     string
	CreatedAt time.Time
}

// NewSession creates a session for a freshly issued token.
func NewSession(endpoint, username, token string, now time.Time) Session {
	return Session{
		Endpoint:  NormalizeEndpoint(endpoint),
		Username:  username,
		Token:     token,
		CreatedAt: now.UTC(),
	}
}

// IsZero returns true if no token is held.
func (s Session) IsZero() bool {
	return s.Token == ""
}

// Age returns how long ago the token was issued.
func (s Session) Age(now time.Time) time.Duration {
	if s.CreatedAt.IsZero() {
		return 0
	}
	return now.UTC().Sub(s.CreatedAt)
}

// IsStale returns true if the token is older than maxAge. A zero maxAge
// never goes stale.
func (s Session) IsStale(now time.Time, maxAge time.Duration) bool {
	return maxAge > 0 && s.Age(now) > maxAge
}

// NormalizeEndpoint lowercases the scheme/host part and strips a trailing
// slash so the same server maps to one stored session.
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	endpoint = strings.TrimRight(endpoint, "/")
	if i := strings.Index(endpoint, "://"); i >= 0 {
		rest := endpoint[i+3:]
		host, path := rest, ""
		if j := strings.Index(rest, "/"); j >= 0 {
			host, path = rest[:j], rest[j:]
		}
		return strings.ToLower(endpoint[:i+3]+host) + path
	}
	return endpoint
}

// LoginRequest represents a login request (value type).
type LoginRequest struct {
	Username string
	Password string
}

// LoginResult represents the outcome of login validation.
type LoginResult struct {
	Valid  bool
	Errors map[string]string
}

// ValidateLogin validates a login request (pure function).
func ValidateLogin(req LoginRequest) LoginResult {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Username) == "" {
		errors["username"] = "Username is required"
	}

	if req.Password == "" {
		errors["password"] = "Password is required"
	}

	return LoginResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}
