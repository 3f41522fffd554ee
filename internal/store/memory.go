package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/linkmetry/linkmetry/internal/analytics"
	"github.com/linkmetry/linkmetry/internal/geo"
	"github.com/linkmetry/linkmetry/internal/link"
	"github.com/linkmetry/linkmetry/internal/user"
)

// MemoryLinkStore is an in-memory implementation of link.Repository, used
// in tests and for running the server without Postgres.
type MemoryLinkStore struct {
	mu      sync.RWMutex
	byID    map[string]*link.ShortLink
	byCode  map[string]string // code -> id
}

// NewMemoryLinkStore creates an empty in-memory link store.
func NewMemoryLinkStore() *MemoryLinkStore {
	return &MemoryLinkStore{
		byID:   make(map[string]*link.ShortLink),
		byCode: make(map[string]string),
	}
}

func (m *MemoryLinkStore) Create(_ context.Context, l *link.ShortLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byCode[l.ShortCode]; taken {
		return link.ErrCodeTaken
	}

	clone := *l
	m.byID[l.ID] = &clone
	m.byCode[l.ShortCode] = l.ID

	return nil
}

func (m *MemoryLinkStore) GetByCode(_ context.Context, code string) (*link.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byCode[code]
	if !ok {
		return nil, link.ErrNotFound
	}

	clone := *m.byID[id]

	return &clone, nil
}

func (m *MemoryLinkStore) GetByID(_ context.Context, id string) (*link.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.byID[id]
	if !ok {
		return nil, link.ErrNotFound
	}

	clone := *l

	return &clone, nil
}

func (m *MemoryLinkStore) ListByUser(_ context.Context, userID string) ([]*link.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var links []*link.ShortLink

	for _, l := range m.byID {
		if l.UserID == userID {
			clone := *l
			links = append(links, &clone)
		}
	}

	sort.Slice(links, func(i, j int) bool {
		return links[i].CreatedAt.After(links[j].CreatedAt)
	})

	return links, nil
}

func (m *MemoryLinkStore) Update(_ context.Context, l *link.ShortLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[l.ID]
	if !ok {
		return link.ErrNotFound
	}

	if id, taken := m.byCode[l.ShortCode]; taken && id != l.ID {
		return link.ErrCodeTaken
	}

	delete(m.byCode, existing.ShortCode)

	clone := *l
	m.byID[l.ID] = &clone
	m.byCode[l.ShortCode] = l.ID

	return nil
}

func (m *MemoryLinkStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.byID[id]
	if !ok {
		return link.ErrNotFound
	}

	delete(m.byCode, l.ShortCode)
	delete(m.byID, id)

	return nil
}

// MemoryUserStore is an in-memory implementation of user.Repository.
type MemoryUserStore struct {
	mu      sync.RWMutex
	byEmail map[string]*user.User
}

// NewMemoryUserStore creates an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{byEmail: make(map[string]*user.User)}
}

func (m *MemoryUserStore) Create(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byEmail[u.Email]; taken {
		return user.ErrEmailTaken
	}

	clone := *u
	m.byEmail[u.Email] = &clone

	return nil
}

func (m *MemoryUserStore) GetByEmail(_ context.Context, email string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.byEmail[email]
	if !ok {
		return nil, user.ErrNotFound
	}

	clone := *u

	return &clone, nil
}

// MemoryClickStore is an in-memory implementation of analytics.Store.
type MemoryClickStore struct {
	mu     sync.RWMutex
	clicks []*analytics.ClickEvent
}

// NewMemoryClickStore creates an empty in-memory click store.
func NewMemoryClickStore() *MemoryClickStore {
	return &MemoryClickStore{}
}

func (m *MemoryClickStore) SaveClick(_ context.Context, click *analytics.ClickEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *click
	m.clicks = append(m.clicks, &clone)

	return nil
}

// Clicks returns a snapshot of all recorded clicks.
func (m *MemoryClickStore) Clicks() []*analytics.ClickEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*analytics.ClickEvent, len(m.clicks))
	copy(out, m.clicks)

	return out
}

type memoryGeoEntry struct {
	record    geo.Record
	expiresAt time.Time
}

// MemoryGeoCache is an in-memory implementation of geo.Cache with the same
// logical-expiry semantics as the Postgres cache.
type MemoryGeoCache struct {
	mu      sync.RWMutex
	entries map[string]memoryGeoEntry
	now     func() time.Time
}

// NewMemoryGeoCache creates an empty in-memory geo cache.
func NewMemoryGeoCache() *MemoryGeoCache {
	return &MemoryGeoCache{
		entries: make(map[string]memoryGeoEntry),
		now:     time.Now,
	}
}

// SetClock overrides the cache's clock. Test hook.
func (m *MemoryGeoCache) SetClock(now func() time.Time) {
	m.now = now
}

func (m *MemoryGeoCache) Get(_ context.Context, ip string) (*geo.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[ip]
	if !ok || !entry.expiresAt.After(m.now()) {
		return nil, nil
	}

	clone := entry.record

	return &clone, nil
}

func (m *MemoryGeoCache) Put(_ context.Context, ip string, record *geo.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[ip] = memoryGeoEntry{
		record:    *record,
		expiresAt: m.now().Add(geo.CacheTTL),
	}

	return nil
}

// Len returns the number of entries, expired or not.
func (m *MemoryGeoCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

// Compile-time checks.
var (
	_ link.Repository = (*MemoryLinkStore)(nil)
	_ user.Repository = (*MemoryUserStore)(nil)
	_ analytics.Store = (*MemoryClickStore)(nil)
	_ geo.Cache       = (*MemoryGeoCache)(nil)
)
