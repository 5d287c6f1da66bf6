package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clio-assist/clio/internal/domain/privacy"
)

// maxMemory caps the conversation exchanges retained per session
const maxMemory = 20

// Exchange is one remembered query/response pair
type Exchange struct {
	Query    string
	Response string
}

// Session holds the per-user state: the history-access authorization owned by
// the privacy gate, and a short conversation memory used as generative-model
// context. Nothing here is persisted; sessions die with the process.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
	auth     privacy.Authorization
	memory   []Exchange
}

// Authorization returns a pointer to the session's authorization state. The
// gate mutates it through this pointer; the manager serializes access by
// handing out one session per request.
func (s *Session) Authorization() *privacy.Authorization {
	return &s.auth
}

// Remember appends an exchange, evicting the oldest beyond the memory cap.
func (s *Session) Remember(query, response string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.memory = append(s.memory, Exchange{Query: query, Response: response})
	if len(s.memory) > maxMemory {
		s.memory = s.memory[len(s.memory)-maxMemory:]
	}
}

// Recent returns a copy of the remembered exchanges, oldest first.
func (s *Session) Recent() []Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Exchange, len(s.memory))
	copy(out, s.memory)
	return out
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen) > ttl
}

// Manager is the in-memory session store. Sessions are created on first
// contact, touched on every request, and swept once their TTL lapses.
type Manager struct {
	sessions sync.Map
	ttl      time.Duration

	stop chan struct{}
	once sync.Once
}

// NewManager creates a session manager with the given idle TTL.
func NewManager(ttl time.Duration) *Manager {
	m := &Manager{
		ttl:  ttl,
		stop: make(chan struct{}),
	}
	go m.janitor()
	return m
}

// Create allocates a fresh session with a unique ID.
func (m *Manager) Create() *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		lastSeen:  now,
	}
	m.sessions.Store(s.ID, s)
	return s
}

// Get returns the session for an ID, refreshing its idle timer.
func (m *Manager) Get(id string) (*Session, bool) {
	val, ok := m.sessions.Load(id)
	if !ok {
		return nil, false
	}
	s := val.(*Session)
	if s.expired(time.Now(), m.ttl) {
		m.sessions.Delete(id)
		return nil, false
	}
	s.touch(time.Now())
	return s, true
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	n := 0
	m.sessions.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

// Close stops the background sweeper.
func (m *Manager) Close() {
	m.once.Do(func() { close(m.stop) })
}

func (m *Manager) janitor() {
	ticker := time.NewTicker(m.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.sweep(now)
		}
	}
}

func (m *Manager) sweep(now time.Time) {
	m.sessions.Range(func(key, value interface{}) bool {
		if value.(*Session).expired(now, m.ttl) {
			m.sessions.Delete(key)
		}
		return true
	})
}
