package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestGetOrCreate(t *testing.T) {
	m := NewManager(time.Hour)

	s, created := m.GetOrCreate("")
	require.True(t, created)
	_, err := uuid.Parse(s.ID)
	require.NoError(t, err, "new sessions get a UUID")

	again, created := m.GetOrCreate(s.ID)
	assert.False(t, created)
	assert.Same(t, s, again)

	other, created := m.GetOrCreate("not-a-known-id")
	assert.True(t, created)
	assert.NotEqual(t, "not-a-known-id", other.ID)
	assert.Equal(t, 2, m.Len())
}

func TestSessionsAreIsolated(t *testing.T) {
	m := NewManager(time.Hour)
	a, _ := m.GetOrCreate("")
	b, _ := m.GetOrCreate("")

	require.NoError(t, a.SetInt("counter", 10))

	v, err := b.Int("counter", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestSweep_RemovesIdleSessions(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := NewManager(10*time.Minute, WithClock(clock.Now))

	idle, _ := m.GetOrCreate("")
	clock.Advance(8 * time.Minute)
	active, _ := m.GetOrCreate("")

	clock.Advance(5 * time.Minute)
	removed := m.Sweep(clock.Now())

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, m.Len())
	_, ok := m.Get(idle.ID)
	assert.False(t, ok)
	_, ok = m.Get(active.ID)
	assert.True(t, ok)
}

func TestGet_TouchedSessionSurvivesConcurrentSweep(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}

	for i := 0; i < 200; i++ {
		m := NewManager(10*time.Minute, WithClock(clock.Now))
		s, _ := m.GetOrCreate("")
		s.Touch(clock.Now().Add(-20 * time.Minute))

		var wg sync.WaitGroup
		var got bool
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, got = m.Get(s.ID)
		}()
		go func() {
			defer wg.Done()
			m.Sweep(clock.Now())
		}()
		wg.Wait()

		_, kept := m.Get(s.ID)
		require.Equal(t, got, kept, "iteration %d: Get returned %v but the session was kept=%v", i, got, kept)
	}
}

func TestSweep_DisabledWithoutTTL(t *testing.T) {
	m := NewManager(0)
	m.GetOrCreate("")
	assert.Equal(t, 0, m.Sweep(time.Now().Add(24*time.Hour)))
	assert.Equal(t, 1, m.Len())
}

func TestRun_StopsWithContext(t *testing.T) {
	m := NewManager(time.Millisecond)
	m.GetOrCreate("")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
}

func TestGetOrCreate_Concurrent(t *testing.T) {
	m := NewManager(time.Hour)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, _ := m.GetOrCreate("")
			_ = s.Exclusive(func() error { return s.SetInt("n", 1) })
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, m.Len())
}
