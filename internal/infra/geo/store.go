package geo

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/outfit-assistant/internal/domain/outfit"
	"github.com/yanqian/outfit-assistant/pkg/util"
)

// Fix is a position produced by a provider at a point in time.
type Fix struct {
	Coordinates outfit.Coordinates `json:"coordinates"`
	Source      string             `json:"source"`
	At          time.Time          `json:"at"`
}

// Age reports how old the fix is relative to now.
func (f Fix) Age(now time.Time) time.Duration {
	return now.Sub(f.At)
}

// PositionStore keeps the most recent fix.
type PositionStore interface {
	Last(ctx context.Context) (Fix, bool, error)
	Save(ctx context.Context, fix Fix, ttl time.Duration) error
}

// MemoryStore keeps the last fix in process memory.
type MemoryStore struct {
	mu        sync.RWMutex
	fix       *Fix
	expiresAt time.Time
	now       util.Clock
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: util.NowUTC}
}

// Last implements PositionStore.
func (s *MemoryStore) Last(_ context.Context) (Fix, bool, error) {
	s.mu.RLock()
	fix, exp := s.fix, s.expiresAt
	s.mu.RUnlock()
	if fix == nil {
		return Fix{}, false, nil
	}
	if util.Expired(exp, s.now()) {
		s.mu.Lock()
		s.fix = nil
		s.mu.Unlock()
		return Fix{}, false, nil
	}
	return *fix, true, nil
}

// Save replaces the stored fix; ttl <= 0 keeps it indefinitely.
func (s *MemoryStore) Save(_ context.Context, fix Fix, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.fix = &fix
	s.expiresAt = exp
	return nil
}
