package app

import (
	"go.uber.org/zap"
)

// SessionManager owns the current-session pointer and an id-keyed cache over
// a SessionStore. Every mutator that targets the current session persists
// synchronously, and all of them are no-ops when no session is current.
//
// The manager is not safe for concurrent mutation; callers serialize writes
// through a single owner (the TUI event loop does this naturally).
type SessionManager struct {
	store  SessionStore
	logger *zap.Logger

	current *Session
	cache   map[string]*Session
}

func NewSessionManager(store SessionStore, logger *zap.Logger) *SessionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{
		store:  store,
		logger: logger,
		cache:  map[string]*Session{},
	}
}

// CreateSession allocates a new session, makes it current, and caches it.
// Nothing is written to disk until the first mutation or explicit save.
func (m *SessionManager) CreateSession(provider, model string) *Session {
	sess := NewSession(provider, model)
	m.current = sess
	m.cache[sess.SessionID] = sess
	m.logger.Info("session created",
		zap.String("session_id", sess.SessionID),
		zap.String("provider", provider),
		zap.String("model", model))
	return sess
}

// GetSession returns the cached session or loads it from the store.
// Returns (nil, nil) when the id is unknown.
func (m *SessionManager) GetSession(sessionID string) (*Session, error) {
	if sess, ok := m.cache[sessionID]; ok {
		return sess, nil
	}
	sess, err := m.store.Load(sessionID)
	if err != nil {
		return nil, err
	}
	if sess != nil {
		m.cache[sessionID] = sess
	}
	return sess, nil
}

// ResumeSession loads a session by id and makes it current.
func (m *SessionManager) ResumeSession(sessionID string) (*Session, error) {
	sess, err := m.GetSession(sessionID)
	if err != nil || sess == nil {
		return sess, err
	}
	m.current = sess
	return sess, nil
}

// SaveSession overwrites the session's stored document and refreshes the
// cache entry.
func (m *SessionManager) SaveSession(sess *Session) error {
	if err := m.store.Save(sess); err != nil {
		return err
	}
	m.cache[sess.SessionID] = sess
	return nil
}

// ListSessions returns all non-archived sessions, newest first.
func (m *SessionManager) ListSessions() ([]*Session, error) {
	return m.store.List()
}

// ArchiveSession hides the session from the default listing. The first call
// for an existing session returns true; any later call returns false.
func (m *SessionManager) ArchiveSession(sessionID string) (bool, error) {
	ok, err := m.store.Archive(sessionID)
	if err != nil {
		return false, err
	}
	if ok {
		m.logger.Info("session archived", zap.String("session_id", sessionID))
	}
	return ok, nil
}

// Current returns the current session, or nil when none is active.
func (m *SessionManager) Current() *Session {
	return m.current
}

// AddMessage appends a timestamped turn to the current session and persists.
func (m *SessionManager) AddMessage(role, content string) error {
	if m.current == nil {
		return nil
	}
	m.current.AppendMessage(role, content)
	return m.SaveSession(m.current)
}

// AddFileEdited records a touched file on the current session and persists.
func (m *SessionManager) AddFileEdited(path string) error {
	if m.current == nil {
		return nil
	}
	m.current.AddFileEdited(path)
	return m.SaveSession(m.current)
}

// UpdateContextUsage adds tokens to the running total, snapshots the
// percentage, and persists.
func (m *SessionManager) UpdateContextUsage(tokens int, percentage float64) error {
	if m.current == nil {
		return nil
	}
	m.current.AddContextUsage(tokens, percentage)
	return m.SaveSession(m.current)
}

// UpdateCost adds to the current session's running cost and persists.
func (m *SessionManager) UpdateCost(usd float64) error {
	if m.current == nil {
		return nil
	}
	m.current.AddCost(usd)
	return m.SaveSession(m.current)
}
