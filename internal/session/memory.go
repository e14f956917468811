package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	username  string
	expiresAt time.Time // zero means no expiry
}

// MemoryStore keeps sessions in a mutex-guarded process-wide map.  State is
// lost on restart, which invalidates every outstanding session.  Expired
// entries are removed lazily on Resolve and swept opportunistically on
// Issue.
type MemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]memoryEntry
}

// NewMemoryStore returns an in-process store.  A non-positive ttl disables
// expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
	}
}

// Issue creates and records a fresh token for username.
func (s *MemoryStore) Issue(_ context.Context, username string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	entry := memoryEntry{username: username}
	if s.ttl > 0 {
		entry.expiresAt = time.Now().UTC().Add(s.ttl)
	}
	s.mu.Lock()
	s.sweepLocked()
	s.sessions[token] = entry
	s.mu.Unlock()
	return token, nil
}

// Resolve maps a token back to its username, deleting it if expired.
func (s *MemoryStore) Resolve(_ context.Context, token string) (string, error) {
	s.mu.RLock()
	entry, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return "", ErrInvalidToken
	}
	if !entry.expiresAt.IsZero() && time.Now().UTC().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return "", ErrInvalidToken
	}
	return entry.username, nil
}

// Revoke drops a token.  Unknown tokens are ignored.
func (s *MemoryStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

// sweepLocked removes expired entries.  Caller must hold the write lock.
// The map is bounded by login volume within the TTL window, so a full scan
// on each issue is cheap.
func (s *MemoryStore) sweepLocked() {
	if s.ttl <= 0 {
		return
	}
	now := time.Now().UTC()
	for token, entry := range s.sessions {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(s.sessions, token)
		}
	}
}
