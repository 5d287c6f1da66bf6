package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGet(t *testing.T) {
	m := NewManager(time.Minute)
	defer m.Close()

	s := m.Create()
	require.NotEmpty(t, s.ID)

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = m.Get("no-such-session")
	assert.False(t, ok)
}

func TestSessionsStartDenied(t *testing.T) {
	m := NewManager(time.Minute)
	defer m.Close()

	s := m.Create()
	assert.False(t, s.Authorization().Granted)
}

func TestExpiredSessionIsDropped(t *testing.T) {
	m := NewManager(10 * time.Millisecond)
	defer m.Close()

	s := m.Create()
	time.Sleep(30 * time.Millisecond)

	_, ok := m.Get(s.ID)
	assert.False(t, ok)
}

func TestSweepRemovesIdleSessions(t *testing.T) {
	m := NewManager(time.Minute)
	defer m.Close()

	s := m.Create()
	require.Equal(t, 1, m.Count())

	m.sweep(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 0, m.Count())

	_, ok := m.Get(s.ID)
	assert.False(t, ok)
}

func TestMemoryCap(t *testing.T) {
	m := NewManager(time.Minute)
	defer m.Close()

	s := m.Create()
	for i := 0; i < maxMemory+5; i++ {
		s.Remember(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	recent := s.Recent()
	require.Len(t, recent, maxMemory)
	// Oldest entries are evicted first.
	assert.Equal(t, "q5", recent[0].Query)
	assert.Equal(t, fmt.Sprintf("q%d", maxMemory+4), recent[len(recent)-1].Query)
}
