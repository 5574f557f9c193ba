package gallery

import (
	"context"
	"sync"
	"time"
)

// Store keeps one newest-first list of entries per device.
type Store interface {
	// Push prepends e and drops everything past limit.
	Push(ctx context.Context, device string, e Entry, limit int) error
	List(ctx context.Context, device string) ([]Entry, error)
	// Remove deletes the entry with the given createdAt and reports whether it existed.
	Remove(ctx context.Context, device string, createdAt int64) (bool, error)
	Clear(ctx context.Context, device string) error
}

// MemoryStore is a process-local Store. Galleries expire ttl after their last use.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*memoryGallery
}

type memoryGallery struct {
	items     []Entry
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, entries: make(map[string]*memoryGallery)}
}

func (s *MemoryStore) Push(_ context.Context, device string, e Entry, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.touch(device, true)
	items := make([]Entry, 0, len(g.items)+1)
	items = append(items, e)
	items = append(items, g.items...)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	g.items = items
	return nil
}

func (s *MemoryStore) List(_ context.Context, device string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.touch(device, false)
	if g == nil {
		return []Entry{}, nil
	}
	return append([]Entry{}, g.items...), nil
}

func (s *MemoryStore) Remove(_ context.Context, device string, createdAt int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.touch(device, false)
	if g == nil {
		return false, nil
	}
	for i, e := range g.items {
		if e.CreatedAt == createdAt {
			g.items = append(g.items[:i:i], g.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) Clear(_ context.Context, device string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, device)
	return nil
}

// touch returns the device's gallery with a refreshed expiry, dropping it
// first if it has expired. Caller holds mu.
func (s *MemoryStore) touch(device string, create bool) *memoryGallery {
	now := s.now()
	g, ok := s.entries[device]
	if ok && s.ttl > 0 && now.After(g.expiresAt) {
		delete(s.entries, device)
		g, ok = nil, false
	}
	if !ok {
		if !create {
			return nil
		}
		g = &memoryGallery{}
		s.entries[device] = g
	}
	g.expiresAt = now.Add(s.ttl)
	return g
}

// Sweep drops every expired gallery and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for device, g := range s.entries {
		if now.After(g.expiresAt) {
			delete(s.entries, device)
			removed++
		}
	}
	return removed
}
