package planner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionManager owns the live sessions of a process. Sessions are dropped
// once idle for longer than the configured TTL.
type SessionManager struct {
	provider  Provider
	publisher EventPublisher
	idleTTL   time.Duration

	mutex    sync.Mutex
	sessions map[string]*Session

	now func() time.Time
}

func NewSessionManager(provider Provider, publisher EventPublisher, idleTTL time.Duration) *SessionManager {
	return &SessionManager{
		provider:  provider,
		publisher: publisher,
		idleTTL:   idleTTL,
		sessions:  map[string]*Session{},
		now:       time.Now,
	}
}

func (m *SessionManager) Create() *Session {
	session := NewSession(uuid.NewString(), m.provider, m.publisher)
	session.touch(m.now())

	m.mutex.Lock()
	m.sessions[session.ID] = session
	m.mutex.Unlock()

	log.Debug().Str("session", session.ID).Msg("Created session")

	return session
}

func (m *SessionManager) Get(id string) (*Session, error) {
	m.mutex.Lock()
	session, exists := m.sessions[id]
	m.mutex.Unlock()

	if !exists {
		return nil, ErrSessionNotFound
	}

	now := m.now()
	if now.Sub(session.idleSince()) > m.idleTTL {
		m.remove(id)
		return nil, ErrSessionNotFound
	}

	session.touch(now)

	return session, nil
}

func (m *SessionManager) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return len(m.sessions)
}

// Expire drops idle sessions and returns how many were removed.
func (m *SessionManager) Expire() int {
	now := m.now()

	m.mutex.Lock()
	var expired []string
	for id, session := range m.sessions {
		if now.Sub(session.idleSince()) > m.idleTTL {
			expired = append(expired, id)
		}
	}
	m.mutex.Unlock()

	for _, id := range expired {
		m.remove(id)
	}

	if len(expired) > 0 {
		log.Info().Int("count", len(expired)).Msg("Expired idle sessions")
	}

	return len(expired)
}

// Run expires idle sessions periodically until ctx is cancelled.
func (m *SessionManager) Run(ctx context.Context) {
	interval := m.idleTTL / 2
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Expire()
		}
	}
}

func (m *SessionManager) remove(id string) {
	m.mutex.Lock()
	session, exists := m.sessions[id]
	delete(m.sessions, id)
	m.mutex.Unlock()

	if exists {
		session.Wait()
	}
}
