package app

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SessionStore persists sessions one document per id. Load returns nil (not
// an error) for an unknown id, and Archive reports false instead of failing
// when the session does not exist.
type SessionStore interface {
	Save(sess *Session) error
	Load(sessionID string) (*Session, error)
	List() ([]*Session, error)
	Archive(sessionID string) (bool, error)
}

// FileSessionStore is the default JSON-on-disk store.
//
// Layout:
//
//	<root>/<sessionID>.json
//	<root>/archived/<sessionID>.json
type FileSessionStore struct {
	Root string
}

func DefaultSessionsDir() string {
	return filepath.Join(DefaultConfigDir(), "sessions")
}

func NewFileSessionStore(root string) *FileSessionStore {
	if strings.TrimSpace(root) == "" {
		root = DefaultSessionsDir()
	}
	return &FileSessionStore{Root: filepath.Clean(root)}
}

func (s *FileSessionStore) sessionPath(sessionID string) string {
	return filepath.Join(s.Root, sessionID+".json")
}

func (s *FileSessionStore) archiveDir() string {
	return filepath.Join(s.Root, "archived")
}

// Save is an idempotent full overwrite of the session's file.
func (s *FileSessionStore) Save(sess *Session) error {
	if sess == nil || strings.TrimSpace(sess.SessionID) == "" {
		return errors.New("missing session id")
	}
	if err := os.MkdirAll(s.Root, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.sessionPath(sess.SessionID), b, 0o644)
}

// Load reads a session file by id. Returns (nil, nil) when no such file
// exists; archived sessions are invisible here.
func (s *FileSessionStore) Load(sessionID string) (*Session, error) {
	b, err := os.ReadFile(s.sessionPath(sessionID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// List enumerates all non-archived session files, newest first. Files that
// fail to parse are skipped rather than failing the whole listing.
func (s *FileSessionStore) List() ([]*Session, error) {
	ents, err := os.ReadDir(s.Root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*Session{}, nil
		}
		return nil, err
	}
	sessions := make([]*Session, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(s.Root, e.Name()))
		if err != nil {
			continue
		}
		var sess Session
		if err := json.Unmarshal(b, &sess); err != nil {
			continue
		}
		sessions = append(sessions, &sess)
	}
	sortSessionsNewestFirst(sessions)
	return sessions, nil
}

// Archive relocates the session file into the archived subdirectory, hiding
// it from List and Load. Reports false when the file does not exist, so a
// second call on the same id is a safe no-op.
func (s *FileSessionStore) Archive(sessionID string) (bool, error) {
	src := s.sessionPath(sessionID)
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := os.MkdirAll(s.archiveDir(), 0o755); err != nil {
		return false, err
	}
	if err := os.Rename(src, filepath.Join(s.archiveDir(), sessionID+".json")); err != nil {
		return false, err
	}
	return true, nil
}

func sortSessionsNewestFirst(sessions []*Session) {
	sort.Slice(sessions, func(i, j int) bool {
		ti, tj := sessions[i].createdAtTime(), sessions[j].createdAtTime()
		if ti.Equal(tj) {
			// Stable fallback so listings don't reshuffle between calls.
			return sessions[i].SessionID < sessions[j].SessionID
		}
		return ti.After(tj)
	})
}
