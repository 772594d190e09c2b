package session

import (
	"database/sql"
	"fmt"
	"time"
)

// Store is the session-state contract handed to the API client and the UI.
type Store interface {
	// Token returns the stored bearer token and whether one is present.
	// Reading has no side effects.
	Token() (string, bool)

	// SetToken persists the credential. Called only on a successful login
	// response; a failed login never writes.
	SetToken(value string) error

	// Clear removes the credential. Subsequent protected calls will be
	// rejected by the remote API.
	Clear() error

	// SidebarExpanded reports the persisted UI preference.
	SidebarExpanded() bool

	// SetSidebarExpanded persists the UI preference.
	SetSidebarExpanded(expanded bool) error
}

// SQLiteStore implements [Store] on a single-row sqlite table.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a store backed by the given database connection.
// The session table must exist (see shared.RunMigrations).
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Token() (string, bool) {
	var token string
	err := s.db.QueryRow("SELECT token FROM session WHERE id = 1").Scan(&token)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

func (s *SQLiteStore) SetToken(value string) error {
	if value == "" {
		return fmt.Errorf("refusing to store an empty token")
	}
	return s.write("UPDATE session SET token = ?, updated_at = ? WHERE id = 1", value)
}

func (s *SQLiteStore) Clear() error {
	return s.write("UPDATE session SET token = '', updated_at = ? WHERE id = 1")
}

func (s *SQLiteStore) SidebarExpanded() bool {
	var expanded bool
	if err := s.db.QueryRow("SELECT sidebar_expanded FROM session WHERE id = 1").Scan(&expanded); err != nil {
		return false
	}
	return expanded
}

func (s *SQLiteStore) SetSidebarExpanded(expanded bool) error {
	return s.write("UPDATE session SET sidebar_expanded = ?, updated_at = ? WHERE id = 1", expanded)
}

// write runs an UPDATE with time.Now appended to args and verifies the
// session row was touched.
func (s *SQLiteStore) write(query string, args ...any) error {
	args = append(args, time.Now())

	result, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("session row not found, run setup first")
	}

	return nil
}
