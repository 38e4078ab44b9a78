package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("AUTHFORMS_SESSION_SECRET", "a-very-secret-key-for-testing-!")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, StoreMemory, cfg.PageStore)
	assert.Equal(t, 30*time.Minute, cfg.PageTTL)
	assert.Equal(t, []string{"localhost:11211"}, cfg.MemcachedAddr)
	assert.Equal(t, 10, cfg.SubmitRate)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("AUTHFORMS_SESSION_SECRET", "a-very-secret-key-for-testing-!")
	t.Setenv("AUTHFORMS_PAGE_STORE", "memcached")
	t.Setenv("AUTHFORMS_MEMCACHED_ADDR", "cache-a:11211,cache-b:11211")
	t.Setenv("AUTHFORMS_PAGE_TTL", "5m")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, StoreMemcached, cfg.PageStore)
	assert.Equal(t, []string{"cache-a:11211", "cache-b:11211"}, cfg.MemcachedAddr)
	assert.Equal(t, 5*time.Minute, cfg.PageTTL)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{"AUTHFORMS_SESSION_SECRET": ""}},
		{name: "short secret", env: map[string]string{"AUTHFORMS_SESSION_SECRET": "short"}},
		{name: "unknown store", env: map[string]string{"AUTHFORMS_PAGE_STORE": "postgres"}},
		{name: "zero ttl", env: map[string]string{"AUTHFORMS_PAGE_TTL": "0s"}},
		{name: "bad ttl", env: map[string]string{"AUTHFORMS_PAGE_TTL": "soon"}},
		{name: "zero rate", env: map[string]string{"AUTHFORMS_SUBMIT_RATE": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AUTHFORMS_SESSION_SECRET", "a-very-secret-key-for-testing-!")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}
