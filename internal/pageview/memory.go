package pageview

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	page    Page
	expires time.Time
}

// MemoryStore keeps page views in process memory. Entries expire ttl after
// their last write and are swept by a background janitor until Close.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*memoryEntry
	ttl     time.Duration
	now     func() time.Time

	stop      chan struct{}
	closeOnce sync.Once
}

// NewMemoryStore creates a MemoryStore and starts its janitor.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return newMemoryStore(ttl, time.Now)
}

func newMemoryStore(ttl time.Duration, now func() time.Time) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &MemoryStore{
		entries: make(map[uuid.UUID]*memoryEntry),
		ttl:     ttl,
		now:     now,
		stop:    make(chan struct{}),
	}
	go s.janitor(sweepInterval(ttl))
	return s
}

func sweepInterval(ttl time.Duration) time.Duration {
	interval := ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}

func (s *MemoryStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

// sweep drops every expired entry.
func (s *MemoryStore) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Create implements Store.
func (s *MemoryStore) Create(ctx context.Context, owner string, mode Mode) (*Page, error) {
	p := New(owner, mode)
	s.mu.Lock()
	s.entries[p.ID] = &memoryEntry{page: *p, expires: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return p, nil
}

// lookup must be called with s.mu held.
func (s *MemoryStore) lookup(id uuid.UUID) (*memoryEntry, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, ErrPageNotFound
	}
	if !s.now().Before(e.expires) {
		delete(s.entries, id)
		return nil, ErrPageNotFound
	}
	return e, nil
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	p := e.page
	return &p, nil
}

// Update implements Store.
func (s *MemoryStore) Update(ctx context.Context, id uuid.UUID, fn func(*Page) error) (*Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	p := e.page
	if err := fn(&p); err != nil {
		return nil, err
	}
	e.page = p
	e.expires = s.now().Add(s.ttl)
	return &p, nil
}

// Len returns the number of stored page views, expired ones included until swept.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close stops the janitor. The store stays readable.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() { close(s.stop) })
	return nil
}
