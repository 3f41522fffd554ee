package geo_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/linkmetry/linkmetry/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCache struct {
	mu      sync.Mutex
	entries map[string]*geo.Record
	getErr  error
	putErr  error
	puts    int
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]*geo.Record)}
}

func (m *mockCache) Get(_ context.Context, ip string) (*geo.Record, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.entries[ip], nil
}

func (m *mockCache) Put(_ context.Context, ip string, record *geo.Record) error {
	if m.putErr != nil {
		return m.putErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[ip] = record
	m.puts++

	return nil
}

type mockProvider struct {
	record  *geo.Record
	err     error
	lookups int
}

func (m *mockProvider) Lookup(_ context.Context, _ string) (*geo.Record, error) {
	m.lookups++

	if m.err != nil {
		return nil, m.err
	}

	return m.record, nil
}

func TestResolve_PrivateAddresses(t *testing.T) {
	cache := newMockCache()
	provider := &mockProvider{record: &geo.Record{Country: "US"}}
	resolver := geo.NewResolver(cache, provider, zap.NewNop())

	for _, ip := range []string{"", "unknown", "127.0.0.1", "192.168.1.5", "10.0.0.1", "172.16.0.1"} {
		t.Run("ip "+ip, func(t *testing.T) {
			got := resolver.Resolve(context.Background(), ip)

			assert.Nil(t, got)
		})
	}

	assert.Zero(t, provider.lookups, "private addresses must never reach the provider")
	assert.Zero(t, cache.puts)
}

func TestResolve_CacheHit(t *testing.T) {
	cache := newMockCache()
	cache.entries["8.8.8.8"] = &geo.Record{Country: "US", City: "Mountain View"}

	provider := &mockProvider{record: &geo.Record{Country: "DE"}}
	resolver := geo.NewResolver(cache, provider, zap.NewNop())

	got := resolver.Resolve(context.Background(), "8.8.8.8")

	require.NotNil(t, got)
	assert.Equal(t, "Mountain View", got.City)
	assert.Zero(t, provider.lookups, "cache hit must skip the provider")
}

func TestResolve_CacheMissFetchesAndCaches(t *testing.T) {
	cache := newMockCache()
	provider := &mockProvider{record: &geo.Record{Country: "DE", City: "Berlin"}}
	resolver := geo.NewResolver(cache, provider, zap.NewNop())

	got := resolver.Resolve(context.Background(), "1.2.3.4")

	require.NotNil(t, got)
	assert.Equal(t, "Berlin", got.City)
	assert.Equal(t, 1, provider.lookups)
	assert.Equal(t, 1, cache.puts)
	assert.Equal(t, "Berlin", cache.entries["1.2.3.4"].City)
}

func TestResolve_ProviderFailureReturnsNil(t *testing.T) {
	cache := newMockCache()
	provider := &mockProvider{err: errors.New("connection refused")}
	resolver := geo.NewResolver(cache, provider, zap.NewNop())

	got := resolver.Resolve(context.Background(), "1.2.3.4")

	assert.Nil(t, got)
	assert.Zero(t, cache.puts)
}

func TestResolve_CacheWriteFailureStillReturnsRecord(t *testing.T) {
	cache := newMockCache()
	cache.putErr = errors.New("disk full")

	provider := &mockProvider{record: &geo.Record{Country: "FR"}}
	resolver := geo.NewResolver(cache, provider, zap.NewNop())

	got := resolver.Resolve(context.Background(), "1.2.3.4")

	require.NotNil(t, got)
	assert.Equal(t, "FR", got.Country)
}

func TestResolve_CacheReadFailureFallsThroughToProvider(t *testing.T) {
	cache := newMockCache()
	cache.getErr = errors.New("connection reset")

	provider := &mockProvider{record: &geo.Record{Country: "JP"}}
	resolver := geo.NewResolver(cache, provider, zap.NewNop())

	got := resolver.Resolve(context.Background(), "1.2.3.4")

	require.NotNil(t, got)
	assert.Equal(t, "JP", got.Country)
	assert.Equal(t, 1, provider.lookups)
}
