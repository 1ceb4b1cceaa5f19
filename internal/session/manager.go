package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/vk/aplab/internal/ctxlog"
)

// Manager owns the live sessions of one application instance.
//
// Sessions are stored in a sync.Map: the key space churns slowly while
// lookups happen on every request.
type Manager struct {
	sessions sync.Map // Key: session ID, Value: *Session
	count    atomic.Int64
	ttl      time.Duration
	now      func() time.Time

	// sweepMu orders Get's lookup and touch against Sweep: a session
	// returned by Get has been touched before any later sweep looks at it.
	sweepMu sync.RWMutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a Manager that expires sessions idle for longer than ttl.
// A non-positive ttl disables expiry.
func NewManager(ttl time.Duration, opts ...Option) *Manager {
	m := &Manager{ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the session with the given id and marks it active.
func (m *Manager) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	m.sweepMu.RLock()
	defer m.sweepMu.RUnlock()
	v, ok := m.sessions.Load(id)
	if !ok {
		return nil, false
	}
	s := v.(*Session)
	s.Touch(m.now())
	return s, true
}

// GetOrCreate returns the session with the given id, or a new session with a
// fresh UUID when id is empty or unknown. created reports which happened.
func (m *Manager) GetOrCreate(id string) (s *Session, created bool) {
	if s, ok := m.Get(id); ok {
		return s, false
	}

	for {
		fresh := New(uuid.NewString())
		fresh.Touch(m.now())
		if _, loaded := m.sessions.LoadOrStore(fresh.ID, fresh); !loaded {
			m.count.Add(1)
			return fresh, true
		}
	}
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	return int(m.count.Load())
}

// Sweep removes sessions idle for longer than the TTL and returns how many
// were removed.
func (m *Manager) Sweep(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}
	m.sweepMu.Lock()
	defer m.sweepMu.Unlock()
	removed := 0
	m.sessions.Range(func(key, value any) bool {
		s := value.(*Session)
		if now.Sub(s.LastSeen()) > m.ttl {
			if _, ok := m.sessions.LoadAndDelete(key); ok {
				m.count.Add(-1)
				removed++
			}
		}
		return true
	})
	return removed
}

// Run sweeps every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	logger := ctxlog.FromContext(ctx)
	if m.ttl <= 0 || interval <= 0 {
		logger.Debug("Session sweeper disabled.")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Debug("Session sweeper started.", "ttl", m.ttl, "interval", interval)
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Session sweeper stopped.")
			return
		case <-ticker.C:
			if n := m.Sweep(m.now()); n > 0 {
				logger.Info("Expired idle sessions.", "count", n, "remaining", m.Len())
			}
		}
	}
}
