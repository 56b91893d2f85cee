package store

import (
	"context"
	"sync"
	"time"

	"github.com/farstack/heimdall/ports"
)

// MemoryStore is an in-memory implementation of the NonceStore
// interface, used in development and tests.
type MemoryStore struct {
	usedNonces map[string]time.Time
	mu         sync.Mutex
}

// NewMemoryStore creates a new in-memory nonce store
func NewMemoryStore() ports.NonceStore {
	return &MemoryStore{
		usedNonces: make(map[string]time.Time),
	}
}

// Consume marks a nonce as used, reporting whether it was fresh.
func (s *MemoryStore) Consume(ctx context.Context, nonce string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if expiry, exists := s.usedNonces[nonce]; exists && now.Before(expiry) {
		return false, nil
	}

	s.usedNonces[nonce] = now.Add(ttl)

	// Drop stale entries while we hold the lock; the map only grows
	// with sign-in volume and records are short-lived anyway.
	for n, expiry := range s.usedNonces {
		if now.After(expiry) {
			delete(s.usedNonces, n)
		}
	}

	return true, nil
}
