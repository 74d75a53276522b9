package app

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteSessionStore keeps every session as a JSON payload row in a single
// database file. It exposes the same observable semantics as the file store;
// archiving flips a flag column instead of relocating a file.
type SQLiteSessionStore struct {
	dbPath string

	mu sync.Mutex
	db *sql.DB
}

func NewSQLiteSessionStore(root string) (*SQLiteSessionStore, error) {
	if strings.TrimSpace(root) == "" {
		root = DefaultSessionsDir()
	}
	root = filepath.Clean(root)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	st := &SQLiteSessionStore{dbPath: filepath.Join(root, "sessions.db")}
	if err := st.init(); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *SQLiteSessionStore) init() error {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return err
	}
	// Keep sqlite responsive under contention.
	_, _ = db.Exec("PRAGMA busy_timeout = 5000;")
	_, _ = db.Exec("PRAGMA journal_mode = WAL;")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL;")

	schema := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			archived INTEGER NOT NULL DEFAULT 0,
			payload TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_archived_created ON sessions(archived, created_at);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return err
		}
	}
	s.db = db
	return nil
}

func (s *SQLiteSessionStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteSessionStore) Save(sess *Session) error {
	if sess == nil || strings.TrimSpace(sess.SessionID) == "" {
		return errors.New("missing session id")
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// Saving always lands the session back in the active set, matching the
	// file store where Save rewrites <root>/<id>.json regardless of a prior
	// archive.
	_, err = s.db.Exec(
		`INSERT INTO sessions (id, created_at, archived, payload) VALUES (?, ?, 0, ?)
		 ON CONFLICT(id) DO UPDATE SET created_at = excluded.created_at, archived = 0, payload = excluded.payload`,
		sess.SessionID, sess.CreatedAt, string(payload),
	)
	return err
}

func (s *SQLiteSessionStore) Load(sessionID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var payload string
	err := s.db.QueryRow(
		`SELECT payload FROM sessions WHERE id = ? AND archived = 0`, sessionID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal([]byte(payload), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SQLiteSessionStore) List() ([]*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query(`SELECT payload FROM sessions WHERE archived = 0`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []*Session{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			continue
		}
		var sess Session
		if err := json.Unmarshal([]byte(payload), &sess); err != nil {
			// Skip corrupt rows, same as unparsable files in the file store.
			continue
		}
		sessions = append(sessions, &sess)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortSessionsNewestFirst(sessions)
	return sessions, nil
}

func (s *SQLiteSessionStore) Archive(sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.Exec(
		`UPDATE sessions SET archived = 1 WHERE id = ? AND archived = 0`, sessionID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
