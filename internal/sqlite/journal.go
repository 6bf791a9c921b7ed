// Package sqlite implements the command journal: an append-only SQLite
// table recording every command of every editing session with its outcome.
// Shapes themselves are never stored.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// JournalFileName is the database file created inside the data directory.
const JournalFileName = "journal.db"

// ErrJournalClosed is returned by operations on a closed journal.
var ErrJournalClosed = errors.New("journal is closed")

// Entry is one recorded command.
type Entry struct {
	EntryID   string    `json:"entry_id"`
	SessionID string    `json:"session_id"`
	Seq       int       `json:"seq"`
	Command   string    `json:"command"`
	Outcome   string    `json:"outcome"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Journal appends entries for one session and reads entries of all
// sessions stored in the same database.
type Journal struct {
	mu        sync.Mutex
	db        *sql.DB
	sessionID string
	seq       int
}

// Open opens (creating if needed) the journal database in dataDir and
// starts a new session.
func Open(dataDir string) (*Journal, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, JournalFileName))
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create journal schema: %w", err)
		}
	}

	return &Journal{db: db, sessionID: generateUUID()}, nil
}

// SessionID returns the identifier of the session this journal appends to.
func (j *Journal) SessionID() string {
	return j.sessionID
}

// Append records a command with its outcome kind and error message.
func (j *Journal) Append(command, outcome, message string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.db == nil {
		return ErrJournalClosed
	}

	j.seq++
	_, err := j.db.Exec(
		`INSERT INTO journal (entry_id, session_id, seq, command, outcome, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		generateUUID(), j.sessionID, j.seq, command, outcome, message,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		j.seq--
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

// List returns the entries of sessionID in the order they were recorded.
// An empty sessionID lists every session.
func (j *Journal) List(sessionID string) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.db == nil {
		return nil, ErrJournalClosed
	}

	query := `SELECT entry_id, session_id, seq, command, outcome, message, created_at FROM journal`
	var args []any
	if sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY rowid`

	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.EntryID, &e.SessionID, &e.Seq, &e.Command, &e.Outcome, &e.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Sessions returns the stored session IDs, oldest first.
func (j *Journal) Sessions() ([]string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.db == nil {
		return nil, ErrJournalClosed
	}

	rows, err := j.db.Query(`SELECT session_id FROM journal GROUP BY session_id ORDER BY MIN(rowid)`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, id)
	}
	return sessions, rows.Err()
}

// Close releases the database. Close is idempotent.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}

// generateUUID generates a new UUID v7 for entry and session IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
