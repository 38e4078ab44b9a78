package pageview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// maxUpdateAttempts bounds optimistic retries when two requests race on the
// same page view.
const maxUpdateAttempts = 5

// RedisStore keeps page views in redis so several server instances can serve
// the same page.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects to the redis server described by url,
// e.g. redis://localhost:6379/0.
func NewRedisStore(url, prefix string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisStoreFromClient(redis.NewClient(opts), prefix, ttl), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(id uuid.UUID) string {
	return fmt.Sprintf("%s:page:%s", s.prefix, id)
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Create implements Store.
func (s *RedisStore) Create(ctx context.Context, owner string, mode Mode) (*Page, error) {
	p := New(owner, mode)
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode page view: %w", err)
	}
	ok, err := s.client.SetNX(ctx, s.key(p.ID), data, s.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("store page view: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("store page view: id %s already taken", p.ID)
	}
	return p, nil
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*Page, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrPageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load page view: %w", err)
	}
	return decodePage(data)
}

// Update implements Store using WATCH/MULTI so concurrent writers retry
// instead of overwriting each other.
func (s *RedisStore) Update(ctx context.Context, id uuid.UUID, fn func(*Page) error) (*Page, error) {
	key := s.key(id)
	var updated *Page

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrPageNotFound
		}
		if err != nil {
			return fmt.Errorf("load page view: %w", err)
		}
		p, err := decodePage(data)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
		out, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode page view: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		updated = p
		return nil
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("update page view %s: too much contention", id)
}

// Close implements Store.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func decodePage(data []byte) (*Page, error) {
	var p Page
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode page view: %w", err)
	}
	return &p, nil
}
