package portal

import (
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Manager holds live sessions in memory. Sessions expire after ttl; expiry
// and deletion both close the session.
type Manager struct {
	opts     Options
	sessions *gocache.Cache
}

func NewManager(opts Options, ttl time.Duration) *Manager {
	cleanup := ttl / 2
	if cleanup < time.Second {
		cleanup = time.Second
	}
	c := gocache.New(ttl, cleanup)
	c.OnEvicted(func(id string, v any) {
		if s, ok := v.(*Session); ok {
			s.Close()
			slog.Debug("session closed", "session_id", id)
		}
	})
	return &Manager{opts: opts, sessions: c}
}

// Create starts a new session.
func (m *Manager) Create() *Session {
	s := NewSession(m.opts)
	m.sessions.SetDefault(s.ID(), s)
	return s
}

// Get returns a live session.
func (m *Manager) Get(id string) (*Session, bool) {
	v, ok := m.sessions.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*Session), true
}

// Delete closes and forgets a session.
func (m *Manager) Delete(id string) {
	m.sessions.Delete(id)
}

// Sweep closes every expired session now instead of waiting for the janitor.
func (m *Manager) Sweep() {
	m.sessions.DeleteExpired()
}

func (m *Manager) Len() int {
	return m.sessions.ItemCount()
}

// Close closes every session.
func (m *Manager) Close() {
	for id := range m.sessions.Items() {
		m.sessions.Delete(id)
	}
}
