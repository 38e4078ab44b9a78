package pageview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/google/uuid"
)

// MemcachedStore keeps page views in memcached. Updates use compare-and-swap.
type MemcachedStore struct {
	client *memcache.Client
	prefix string
	ttl    time.Duration
}

// NewMemcachedStore creates a store talking to the given servers.
func NewMemcachedStore(prefix string, ttl time.Duration, servers ...string) *MemcachedStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemcachedStore{
		client: memcache.New(servers...),
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *MemcachedStore) key(id uuid.UUID) string {
	return fmt.Sprintf("%s:page:%s", s.prefix, id)
}

func (s *MemcachedStore) expiration() int32 {
	return int32(s.ttl / time.Second)
}

// Ping checks that every server answers.
func (s *MemcachedStore) Ping(ctx context.Context) error {
	return s.client.Ping()
}

// Create implements Store.
func (s *MemcachedStore) Create(ctx context.Context, owner string, mode Mode) (*Page, error) {
	p := New(owner, mode)
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode page view: %w", err)
	}
	err = s.client.Add(&memcache.Item{
		Key:        s.key(p.ID),
		Value:      data,
		Expiration: s.expiration(),
	})
	if err != nil {
		return nil, fmt.Errorf("store page view: %w", err)
	}
	return p, nil
}

// Get implements Store.
func (s *MemcachedStore) Get(ctx context.Context, id uuid.UUID) (*Page, error) {
	item, err := s.client.Get(s.key(id))
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, ErrPageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load page view: %w", err)
	}
	return decodePage(item.Value)
}

// Update implements Store.
func (s *MemcachedStore) Update(ctx context.Context, id uuid.UUID, fn func(*Page) error) (*Page, error) {
	key := s.key(id)
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		item, err := s.client.Get(key)
		if errors.Is(err, memcache.ErrCacheMiss) {
			return nil, ErrPageNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("load page view: %w", err)
		}
		p, err := decodePage(item.Value)
		if err != nil {
			return nil, err
		}
		if err := fn(p); err != nil {
			return nil, err
		}
		out, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("encode page view: %w", err)
		}
		item.Value = out
		item.Expiration = s.expiration()

		err = s.client.CompareAndSwap(item)
		switch {
		case err == nil:
			return p, nil
		case errors.Is(err, memcache.ErrCASConflict):
			continue
		case errors.Is(err, memcache.ErrNotStored), errors.Is(err, memcache.ErrCacheMiss):
			// Evicted or expired between Get and CompareAndSwap.
			return nil, ErrPageNotFound
		default:
			return nil, fmt.Errorf("store page view: %w", err)
		}
	}
	return nil, fmt.Errorf("update page view %s: too much contention", id)
}

// Close implements Store by closing the client's idle connections.
func (s *MemcachedStore) Close() error {
	return s.client.Close()
}
