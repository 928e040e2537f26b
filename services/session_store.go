package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ActiveSession marks one caller's in-flight unit traversal. It exists
// only between the first question of a unit and finalization; it is
// never persisted.
type ActiveSession struct {
	UserID    uuid.UUID
	UnitID    uint
	StartedAt time.Time
}

type SessionStore interface {
	Start(userID uuid.UUID, unitID uint, at time.Time)
	Get(userID uuid.UUID) (ActiveSession, bool)
	Clear(userID uuid.UUID)
	PruneStale(olderThan time.Duration) int
}

// MemorySessionStore keeps active sessions in process memory, keyed by
// user id. Each entry has a single writer: the owning caller.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]ActiveSession
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[uuid.UUID]ActiveSession)}
}

func (s *MemorySessionStore) Start(userID uuid.UUID, unitID uint, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = ActiveSession{UserID: userID, UnitID: unitID, StartedAt: at}
}

func (s *MemorySessionStore) Get(userID uuid.UUID) (ActiveSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

func (s *MemorySessionStore) Clear(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// PruneStale drops sessions started before now-olderThan and reports
// how many were removed. Abandoned traversals would otherwise pin
// memory and yield nonsense elapsed times if the unit is ever finished.
func (s *MemorySessionStore) PruneStale(olderThan time.Duration) int {
	cutoff := time.Now().UTC().Add(-olderThan)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.StartedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
