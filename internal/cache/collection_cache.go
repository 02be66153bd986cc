package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	dom "github.com/Wagner-V1eira/MinhaGibiteca-backend/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyListPrefix = "collection:list:"

// CollectionCache caches per-user collection listings in Redis. Postgres
// stays the source of truth; every write path invalidates the owner's key.
type CollectionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCollectionCache returns a new CollectionCache.
func NewCollectionCache(rdb *redis.Client, ttl time.Duration) *CollectionCache {
	return &CollectionCache{rdb: rdb, ttl: ttl}
}

func listKey(userID int64) string {
	return keyListPrefix + strconv.FormatInt(userID, 10)
}

// GetList returns the cached listing for the user or nil on miss.
func (c *CollectionCache) GetList(ctx context.Context, userID int64) ([]dom.CollectionEntry, error) {
	b, err := c.rdb.Get(ctx, listKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.CollectionEntry
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the user's listing.
func (c *CollectionCache) SetList(ctx context.Context, userID int64, list []dom.CollectionEntry) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey(userID), b, c.ttl).Err()
}

// Invalidate drops the user's cached listing (called on every write).
func (c *CollectionCache) Invalidate(ctx context.Context, userID int64) error {
	return c.rdb.Del(ctx, listKey(userID)).Err()
}
