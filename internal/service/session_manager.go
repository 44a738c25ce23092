package service

import (
	"fmt"
	"sync"

	"github.com/apex/log"
	"github.com/google/uuid"
)

// SessionManager is the registry of live sessions.
type SessionManager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
	}
}

func (sm *SessionManager) Create(clientID string) *Session {
	s := newSession(uuid.New().String(), clientID)

	sm.mu.Lock()
	sm.sessions[s.id] = s
	sm.mu.Unlock()

	log.WithFields(log.Fields{"session": s.id, "client": clientID}).Info("session created")
	return s
}

func (sm *SessionManager) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: session id %q", ErrInvalidInput, id)
	}

	sm.mu.RLock()
	defer sm.mu.RUnlock()
	s, exists := sm.sessions[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

func (sm *SessionManager) Remove(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if _, exists := sm.sessions[id]; exists {
		delete(sm.sessions, id)
		log.WithField("session", id).Info("session removed")
	}
}

func (sm *SessionManager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
