package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/storefront/bridge/internal/domain/storefront"
)

// MemoryStore implements Store with an in-process map. Suitable for single
// instance deployments and tests; sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]entry
	ttl      time.Duration
}

type entry struct {
	session Session
	expires time.Time
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemoryStore{
		sessions: make(map[string]entry),
		ttl:      ttl,
	}
}

// Get returns the session with the given id.
func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || time.Now().After(e.expires) {
		return nil, fmt.Errorf("%w: %s", storefront.ErrNoSuchSession, id)
	}
	sess := e.session
	return &sess, nil
}

// Save writes the session and refreshes its TTL. Expired entries are swept
// opportunistically on each write.
func (s *MemoryStore) Save(_ context.Context, sess *Session) error {
	sess.UpdatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, e := range s.sessions {
		if now.After(e.expires) {
			delete(s.sessions, id)
		}
	}
	s.sessions[sess.ID] = entry{session: *sess, expires: now.Add(s.ttl)}
	return nil
}

// Delete removes the session.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
