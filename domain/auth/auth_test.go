package auth

import (
	"testing"
	"time"
)

func TestNewSession(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("EST", -5*3600))
	s := NewSession("HTTPS://Jira.Example.com/", "alice", "tok-123", now)

	if s.Endpoint != "https://jira.example.com" {
		t.Errorf("Endpoint = %s, want https://jira.example.com", s.Endpoint)
	}
	if s.Username != "alice" {
		t.Errorf("Username = %s, want alice", s.Username)
	}
	if s.Token != "tok-123" {
		t.Errorf("Token = %s, want tok-123", s.Token)
	}
	if s.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt location = %v, want UTC", s.CreatedAt.Location())
	}
	if !s.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", s.CreatedAt, now)
	}
}

func TestSession_IsZero(t *testing.T) {
	if !(Session{}).IsZero() {
		t.Error("empty session should be zero")
	}
	if (Session{Token: "x"}).IsZero() {
		t.Error("session with token should not be zero")
	}
}

func TestSession_IsStale(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		createdAt time.Time
		maxAge    time.Duration
		want      bool
	}{
		{"fresh", now.Add(-time.Minute), time.Hour, false},
		{"stale", now.Add(-2 * time.Hour), time.Hour, true},
		{"no limit", now.Add(-48 * time.Hour), 0, false},
		{"unknown age", time.Time{}, time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Session{Token: "t", CreatedAt: tt.createdAt}
			if got := s.IsStale(now, tt.maxAge); got != tt.want {
				t.Errorf("IsStale() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://jira.example.com", "https://jira.example.com"},
		{"https://JIRA.example.com/", "https://jira.example.com"},
		{"  http://Host:8080/Jira/ ", "http://host:8080/Jira"},
		{"jira.local", "jira.local"},
	}

	for _, tt := range tests {
		if got := NormalizeEndpoint(tt.in); got != tt.want {
			t.Errorf("NormalizeEndpoint(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name       string
		req        LoginRequest
		wantValid  bool
		wantErrors []string
	}{
		{
			name:      "valid login",
			req:       LoginRequest{Username: "alice", Password: "secret"},
			wantValid: true,
		},
		{
			name:       "missing username",
			req:        LoginRequest{Username: "  ", Password: "secret"},
			wantValid:  false,
			wantErrors: []string{"username"},
		},
		{
			name:       "missing password",
			req:        LoginRequest{Username: "alice"},
			wantValid:  false,
			wantErrors: []string{"password"},
		},
		{
			name:       "both missing",
			req:        LoginRequest{},
			wantValid:  false,
			wantErrors: []string{"username", "password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateLogin(tt.req)

			if result.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", result.Valid, tt.wantValid)
			}

			for _, field := range tt.wantErrors {
				if _, ok := result.Errors[field]; !ok {
					t.Errorf("Expected error for field %s", field)
				}
			}
		})
	}
}
