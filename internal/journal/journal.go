// Package journal records relocation outcomes in a SQLite database so
// operators can audit what the service did to each file and when.
package journal

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Transfer outcomes.
const (
	OutcomeMoved   = "moved"
	OutcomeCopied  = "copied"
	OutcomeSkipped = "skipped-locked"
	OutcomeFailed  = "failed"
)

// Entry represents a single journaled transfer.
type Entry struct {
	ID             string
	CycleID        string
	SourcePath     string
	DestPath       string
	Classification string
	Outcome        string
	ErrorMessage   string
	OccurredAt     time.Time
}

// Recorder is the journaling capability the watcher depends on. A nil-safe
// no-op implementation is available via Discard for deployments with
// journaling disabled.
type Recorder interface {
	Record(entry Entry) error
	Close() error
}

// Discard returns a Recorder that drops every entry.
func Discard() Recorder {
	return discard{}
}

type discard struct{}

func (discard) Record(Entry) error { return nil }
func (discard) Close() error       { return nil }

// Store manages the SQLite transfer journal.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if necessary) the journal database at dbPath and
// initializes the schema. The parent directory is created when missing.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}

	// busy_timeout must be set first so the remaining pragmas wait on locks
	// instead of failing when another handle holds the database.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Record inserts a transfer entry. A missing ID or timestamp is filled in.
func (s *Store) Record(entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO transfers (id, cycle_id, source_path, dest_path, classification, outcome, error_message, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.CycleID, entry.SourcePath, entry.DestPath,
		entry.Classification, entry.Outcome, entry.ErrorMessage, entry.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("record transfer: %w", err)
	}
	return nil
}

// ByCycle returns every entry recorded under the given cycle ID, oldest
// first.
func (s *Store) ByCycle(cycleID string) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, cycle_id, source_path, dest_path, classification, outcome, error_message, occurred_at
		FROM transfers WHERE cycle_id = ? ORDER BY occurred_at, id`, cycleID)
	if err != nil {
		return nil, fmt.Errorf("query transfers: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Recent returns the most recent entries, newest first, capped at limit.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, cycle_id, source_path, dest_path, classification, outcome, error_message, occurred_at
		FROM transfers ORDER BY occurred_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query transfers: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var dest, errMsg sql.NullString
		if err := rows.Scan(&e.ID, &e.CycleID, &e.SourcePath, &dest, &e.Classification, &e.Outcome, &errMsg, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan transfer row: %w", err)
		}
		e.DestPath = dest.String
		e.ErrorMessage = errMsg.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transfer rows: %w", err)
	}
	return entries, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
