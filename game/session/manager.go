package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/snakes-ladders-game/game/engine"
	"github.com/wricardo/snakes-ladders-game/game/service"
)

var (
	ErrSessionNotFound      = service.ErrSessionNotFound
	ErrSessionAlreadyExists = service.ErrSessionAlreadyExists
)

// Manager is the in-memory registry of boards being played, keyed by
// lowercased session id
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*service.Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*service.Session)}
}

func key(id string) string {
	return strings.ToLower(id)
}

// Create starts a fresh game on config under id. An empty id gets a
// generated 4-character one; a taken id fails with ErrSessionAlreadyExists.
func (m *Manager) Create(id string, config *engine.BoardConfig) (*service.Session, error) {
	// Build the engine outside the lock; a bad board never touches the registry
	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case id == "":
		id = m.generateSessionID()
	case m.sessionExists(id):
		return nil, ErrSessionAlreadyExists
	}

	now := time.Now()
	sess := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	m.sessions[key(id)] = sess
	return sess, nil
}

func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if sess, ok := m.sessions[key(id)]; ok {
		return sess, nil
	}
	return nil, ErrSessionNotFound
}

// List returns every live session in no particular order
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		out = append(out, sess)
	}
	return out
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.sessionExists(id) {
		return ErrSessionNotFound
	}
	delete(m.sessions, key(id))
	return nil
}

// UpdateLastAccessed keeps a session from being swept by CleanupExpiredSessions
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[key(id)]
	if !ok {
		return ErrSessionNotFound
	}
	sess.LastAccessedAt = time.Now()
	return nil
}

// CleanupExpiredSessions drops boards nobody has touched for maxAge and
// reports how many went
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for k, sess := range m.sessions {
		if sess.LastAccessedAt.Before(cutoff) {
			delete(m.sessions, k)
			removed++
		}
	}
	return removed
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// generateSessionID draws 4 hex characters until it finds a free id. Callers hold m.mu.
func (m *Manager) generateSessionID() string {
	buf := make([]byte, 2)
	for {
		rand.Read(buf)
		if id := hex.EncodeToString(buf); !m.sessionExists(id) {
			return id
		}
	}
}

// sessionExists reports whether id is taken. Callers hold m.mu.
func (m *Manager) sessionExists(id string) bool {
	_, ok := m.sessions[key(id)]
	return ok
}
