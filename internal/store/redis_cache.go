package store

import (
	"context"
	"strconv"
	"time"

	"github.com/linkmetry/linkmetry/internal/link"
	"github.com/redis/go-redis/v9"
)

// RedisLinkCache decorates a link.Repository with Redis caching on the
// code lookup, keeping the redirect hot path off Postgres.
type RedisLinkCache struct {
	store  link.Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisLinkCache creates a cache-aside decorator around store.
func NewRedisLinkCache(store link.Repository, client *redis.Client, ttl time.Duration) *RedisLinkCache {
	return &RedisLinkCache{
		store:  store,
		client: client,
		prefix: "link:",
		ttl:    ttl,
	}
}

// Create stores the link and write-through populates the cache.
func (r *RedisLinkCache) Create(ctx context.Context, l *link.ShortLink) error {
	if err := r.store.Create(ctx, l); err != nil {
		return err
	}

	r.cacheLink(ctx, l)

	return nil
}

// GetByCode checks the cache before the underlying store. Population on
// miss is best-effort; a broken cache degrades to store reads.
func (r *RedisLinkCache) GetByCode(ctx context.Context, code string) (*link.ShortLink, error) {
	if l, err := r.getFromCache(ctx, code); err == nil {
		return l, nil
	}

	l, err := r.store.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	r.cacheLink(ctx, l)

	return l, nil
}

func (r *RedisLinkCache) GetByID(ctx context.Context, id string) (*link.ShortLink, error) {
	return r.store.GetByID(ctx, id)
}

func (r *RedisLinkCache) ListByUser(ctx context.Context, userID string) ([]*link.ShortLink, error) {
	return r.store.ListByUser(ctx, userID)
}

// Update persists the change and drops any cached copy; the code may have
// changed, so both old and new entries must not serve stale targets.
func (r *RedisLinkCache) Update(ctx context.Context, l *link.ShortLink) error {
	old, err := r.store.GetByID(ctx, l.ID)
	if err != nil {
		return err
	}

	if err := r.store.Update(ctx, l); err != nil {
		return err
	}

	r.client.Del(ctx, r.prefix+old.ShortCode, r.prefix+l.ShortCode)

	return nil
}

// Delete removes the link and invalidates its cache entry.
func (r *RedisLinkCache) Delete(ctx context.Context, id string) error {
	old, err := r.store.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := r.store.Delete(ctx, id); err != nil {
		return err
	}

	r.client.Del(ctx, r.prefix+old.ShortCode)

	return nil
}

func (r *RedisLinkCache) getFromCache(ctx context.Context, code string) (*link.ShortLink, error) {
	result, err := r.client.HGetAll(ctx, r.prefix+code).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, link.ErrNotFound
	}

	l := &link.ShortLink{
		ID:        result["id"],
		ShortCode: result["short_code"],
		TargetURL: result["target_url"],
		UserID:    result["user_id"],
	}

	if ts, ok := result["created_at"]; ok {
		if nanos, err := strconv.ParseInt(ts, 10, 64); err == nil {
			l.CreatedAt = time.Unix(0, nanos)
		}
	}

	return l, nil
}

func (r *RedisLinkCache) cacheLink(ctx context.Context, l *link.ShortLink) {
	key := r.prefix + l.ShortCode

	pipe := r.client.Pipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"id":         l.ID,
		"short_code": l.ShortCode,
		"target_url": l.TargetURL,
		"user_id":    l.UserID,
		"created_at": l.CreatedAt.UnixNano(),
	})

	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}

	_, _ = pipe.Exec(ctx)
}

// Compile-time check.
var _ link.Repository = (*RedisLinkCache)(nil)
