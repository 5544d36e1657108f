// Package storage tracks active scan sessions for the HTTP surface.
package storage

import (
	"sync"
	"time"

	"github.com/jinhuihu/orc-book/internal/session"
)

// ScanSession is one client's in-progress book scan. The busy lock
// enforces a single outstanding recognition-or-lookup round trip per
// session; the controller itself is not safe for concurrent passes.
type ScanSession struct {
	ID         string
	Controller *session.Controller
	CreatedAt  time.Time

	busy sync.Mutex
}

// TryAcquire reserves the session for one round trip. It reports false
// when a previous call is still in flight.
func (s *ScanSession) TryAcquire() bool {
	return s.busy.TryLock()
}

// Release frees the session after a round trip completes.
func (s *ScanSession) Release() {
	s.busy.Unlock()
}

// SessionStore is an in-memory registry of scan sessions.
type SessionStore struct {
	sessions map[string]*ScanSession
	mu       sync.RWMutex
}

func New() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*ScanSession),
	}
}

func (s *SessionStore) Get(sessionID string) (*ScanSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, exists := s.sessions[sessionID]
	return sess, exists
}

func (s *SessionStore) Set(sessionID string, sess *ScanSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = sess
}

func (s *SessionStore) GetAll() map[string]*ScanSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*ScanSession, len(s.sessions))
	for k, v := range s.sessions {
		result[k] = v
	}
	return result
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
