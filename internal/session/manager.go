package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager is the in-memory session registry, keyed by an opaque uuid
// token carried in a cookie. There is no server-side table beyond this
// map; restarting the process signs everyone out.
type Manager struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a registry whose idle sessions expire after ttl.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create registers a new anonymous session and returns it.
func (m *Manager) Create() *Session {
	s := &Session{token: uuid.NewString()}
	s.touch(m.now())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.token] = s
	return s
}

// Get returns the session for a token and refreshes its idle timer.
func (m *Manager) Get(token string) (*Session, bool) {
	m.mu.Lock()
	s, ok := m.sessions[token]
	m.mu.Unlock()
	if !ok {
		return nil, false
	}
	s.touch(m.now())
	return s, true
}

// Destroy drops a session, discarding its identity and form state.
func (m *Manager) Destroy(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep removes sessions idle past the TTL and returns how many it dropped.
func (m *Manager) Sweep() int {
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	dropped := 0
	for token, s := range m.sessions {
		if s.seenBefore(cutoff) {
			delete(m.sessions, token)
			dropped++
		}
	}
	return dropped
}

// StartSweeper runs Sweep periodically until ctx is cancelled.
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if dropped := m.Sweep(); dropped > 0 {
				slog.Debug("expired sessions dropped", "count", dropped)
			}
		}
	}
}
