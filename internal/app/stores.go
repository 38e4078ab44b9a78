package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nfrund/authforms/internal/config"
	"github.com/nfrund/authforms/internal/pageview"
	"github.com/samber/do/v2"
)

const (
	keyPrefix   = "authforms"
	pingTimeout = 5 * time.Second
)

type pinger interface {
	Ping(ctx context.Context) error
}

// newPageStore opens the backend named by AUTHFORMS_PAGE_STORE. Networked
// backends are pinged so a wrong address fails at startup.
func newPageStore(i do.Injector) (pageview.Store, error) {
	cfg := do.MustInvoke[*config.Config](i)

	var store pageview.Store
	switch cfg.PageStore {
	case config.StoreRedis:
		rs, err := pageview.NewRedisStore(cfg.RedisURL, keyPrefix, cfg.PageTTL)
		if err != nil {
			return nil, err
		}
		store = rs
	case config.StoreMemcached:
		store = pageview.NewMemcachedStore(keyPrefix, cfg.PageTTL, cfg.MemcachedAddr...)
	case config.StoreMemory:
		store = pageview.NewMemoryStore(cfg.PageTTL)
	default:
		return nil, fmt.Errorf("unknown page store %q", cfg.PageStore)
	}

	if p, ok := store.(pinger); ok {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("%s page store unreachable: %w", cfg.PageStore, err)
		}
	}

	slog.Info("page store ready", "backend", cfg.PageStore, "ttl", cfg.PageTTL)
	return store, nil
}
