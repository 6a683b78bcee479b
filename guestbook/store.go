// Package guestbook stores visitor-submitted guestbook entries in SQLite.
// Entries are the one piece of non-authored content on the site, so they are
// kept out of the flat-file content tree and rendered only through the
// escaping markdown path.
package guestbook

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested entry does not exist.
var ErrNotFound = sql.ErrNoRows

const (
	maxNameLen    = 50
	maxMessageLen = 2000
)

// Entry is one guestbook message.
type Entry struct {
	ID        int64
	Name      string
	Message   string
	CreatedAt string // RFC 3339, UTC
}

// Store wraps a SQLite database holding guestbook entries.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write, busy timeout so writers wait instead of
	// failing with SQLITE_BUSY, synchronous=NORMAL is safe under WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    message TEXT NOT NULL,
    created_at TEXT NOT NULL
);
`)
	return err
}

// Add validates and stores a new entry, returning it with ID and timestamp
// filled in.
func (s *Store) Add(name, message string) (Entry, error) {
	name = strings.TrimSpace(name)
	message = strings.TrimSpace(message)
	errs := validation.Errors{
		"name":    validation.Validate(name, validation.Required, validation.Length(1, maxNameLen)),
		"message": validation.Validate(message, validation.Required, validation.Length(1, maxMessageLen)),
	}
	if err := errs.Filter(); err != nil {
		return Entry{}, fmt.Errorf("guestbook: %w", err)
	}

	createdAt := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(`INSERT INTO entries (name, message, created_at) VALUES (?, ?, ?)`,
		name, message, createdAt)
	if err != nil {
		return Entry{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Entry{}, err
	}
	return Entry{ID: id, Name: name, Message: message, CreatedAt: createdAt}, nil
}

// List returns up to limit entries, newest first. A non-positive limit means
// no limit.
func (s *Store) List(limit int) ([]Entry, error) {
	q := `SELECT id, name, message, created_at FROM entries ORDER BY id DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.Query(q+` LIMIT ?`, limit)
	} else {
		rows, err = s.db.Query(q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes an entry by id (admin moderation).
func (s *Store) Delete(id int64) error {
	res, err := s.db.Exec(`DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
