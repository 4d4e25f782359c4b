// Package session persists the single active document identity using SQLite.
// The store survives process restarts; within a process it is the in-memory
// value that is authoritative, so a failed durable write never fails the
// caller.
package session

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/7Nouman/LegalEase-Phase1/model"
)

// namespace is the fixed key under which the active document is stored.
const namespace = "legalease"

// Store holds the active DocumentSession durably. There is no clear
// operation: the only way to change identity is a new successful upload
// overwriting the previous one.
type Store struct {
	db *sql.DB

	mu      sync.RWMutex
	current model.DocumentSession
}

// New opens (or creates) a SQLite database at the given path and loads the
// previously persisted session, if any.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	s := &Store{db: db}
	if err := s.load(); err != nil {
		db.Close()
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return s, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS document_session (
			namespace    TEXT PRIMARY KEY,
			doc_id       TEXT NOT NULL,
			display_name TEXT NOT NULL,
			updated_at   DATETIME NOT NULL DEFAULT (datetime('now'))
		);
	`)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) load() error {
	row := s.db.QueryRow(
		`SELECT doc_id, display_name FROM document_session WHERE namespace = ?`,
		namespace,
	)
	var sess model.DocumentSession
	err := row.Scan(&sess.DocumentID, &sess.DisplayName)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	s.current = sess
	return nil
}

// SetSession overwrites the active session with both fields at once. The
// in-memory value is updated first and stays current for the rest of the
// process lifetime even if the durable write fails; such failures are logged
// and swallowed.
func (s *Store) SetSession(docID, displayName string) {
	s.mu.Lock()
	s.current = model.DocumentSession{DocumentID: docID, DisplayName: displayName}
	s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO document_session (namespace, doc_id, display_name, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(namespace) DO UPDATE SET
			doc_id = excluded.doc_id,
			display_name = excluded.display_name,
			updated_at = excluded.updated_at`,
		namespace, docID, displayName, time.Now().UTC(),
	)
	if err != nil {
		log.Printf("session: persisting document %s failed: %v", docID, err)
	}
}

// GetSession returns the current session; both fields are empty if no upload
// has ever succeeded.
func (s *Store) GetSession() model.DocumentSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
