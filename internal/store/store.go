package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"
)

const currentVersion = 1

// Collection names. Each one is persisted as a single JSON document.
const (
	colSessions = "sessions"
	colTags     = "tags"
	colPrefs    = "prefs"
	colTasks    = "tasks"
	colProjects = "projects"
)

// Store persists the five focuslog collections as JSON documents in a
// single SQLite table. Reads of a malformed or absent collection degrade
// to an empty result; they never fail.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string, logger *log.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Store{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:", log.New(io.Discard))
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS collections (
		name       TEXT PRIMARY KEY,
		data       TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// readRaw returns the serialized document for a collection. found is false
// when the collection has never been written.
func (s *Store) readRaw(name string) (data []byte, found bool) {
	var text string
	err := s.db.QueryRow(`SELECT data FROM collections WHERE name = ?`, name).Scan(&text)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		s.logger.Warn("read collection", "collection", name, "err", err)
		return nil, false
	}
	return []byte(text), true
}

func (s *Store) writeRaw(name string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO collections (name, data, updated_at)
		 VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%SZ','now'))
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		name, string(data),
	)
	if err != nil {
		return fmt.Errorf("write collection %q: %w", name, err)
	}
	return nil
}

// readList decodes a list-shaped collection. Malformed or absent data
// yields an empty list; found reports whether the collection exists at all
// (so callers can distinguish "never written" from "explicitly empty").
func readList[T any](s *Store, name string) (records []T, found bool) {
	data, ok := s.readRaw(name)
	if !ok {
		return nil, false
	}
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("malformed collection, treating as empty", "collection", name, "err", err)
		return nil, true
	}
	return records, true
}

// writeList replaces a list-shaped collection in a single statement, so
// the write is atomic from the caller's perspective.
func writeList[T any](s *Store, name string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal collection %q: %w", name, err)
	}
	return s.writeRaw(name, data)
}

// DefaultDBPath returns ~/.config/focuslog/focuslog.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "focuslog", "focuslog.db"), nil
}
