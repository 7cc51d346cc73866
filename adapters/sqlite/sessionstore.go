package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stonefield/jiraSOAP/domain/auth"
	"github.com/stonefield/jiraSOAP/ports"
)

// ErrNotFound is returned when no session is stored for an endpoint.
var ErrNotFound = ports.ErrNotFound

// SessionStore implements ports.SessionStore using SQLite.
type SessionStore struct {
	db *DB
}

// NewSessionStore creates a new SQLite session store.
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{db: db}
}

// Save stores a session, replacing the previous one for its endpoint.
func (s *SessionStore) Save(ctx context.Context, session auth.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (endpoint, username, token, created_at, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(endpoint) DO UPDATE SET
			username = excluded.username,
			token = excluded.token,
			created_at = excluded.created_at,
			updated_at = CURRENT_TIMESTAMP
	`, auth.NormalizeEndpoint(session.Endpoint), session.Username, session.Token, session.CreatedAt.UTC())

	return err
}

// Load retrieves the session for endpoint.
func (s *SessionStore) Load(ctx context.Context, endpoint string) (auth.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT endpoint, username, token, created_at
		FROM sessions
		WHERE endpoint = ?
	`, auth.NormalizeEndpoint(endpoint))

	return scanSession(row)
}

// Delete removes the session for endpoint.
func (s *SessionStore) Delete(ctx context.Context, endpoint string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM sessions WHERE endpoint = ?
	`, auth.NormalizeEndpoint(endpoint))
	return err
}

// List returns every stored session ordered by endpoint.
func (s *SessionStore) List(ctx context.Context) ([]auth.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT endpoint, username, token, created_at
		FROM sessions
		ORDER BY endpoint
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []auth.Session
	for rows.Next() {
		var sess auth.Session
		if err := rows.Scan(&sess.Endpoint, &sess.Username, &sess.Token, &sess.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

func scanSession(row *sql.Row) (auth.Session, error) {
	var sess auth.Session

	err := row.Scan(&sess.Endpoint, &sess.Username, &sess.Token, &sess.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Session{}, ErrNotFound
	}
	if err != nil {
		return auth.Session{}, err
	}
	return sess, nil
}

// Ensure interface compliance.
var (
	_ ports.SessionStore  = (*SessionStore)(nil)
	_ ports.SessionLister = (*SessionStore)(nil)
)
