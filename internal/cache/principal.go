package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/staynest/staynest/internal/model"
)

const (
	// principalCachePrefix is the Redis key prefix for principal cache.
	principalCachePrefix = "auth:principal:"
	// principalCacheTTL is the time-to-live for cached principals.
	// Kept well under the token TTL so a deactivated account falls out
	// of the cache long before its token expires.
	principalCacheTTL = 5 * time.Minute
)

// cachedPrincipal is the Redis representation of a resolved principal.
type cachedPrincipal struct {
	AccountID string    `json:"account_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

// GetPrincipal retrieves a cached principal by cache key.
// Returns nil if not found (cache miss).
func (c *Cache) GetPrincipal(ctx context.Context, cacheKey string) (*model.Principal, error) {
	key := principalCachePrefix + cacheKey

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// Cache miss is not an error
		return nil, nil //nolint:nilerr
	}

	var cached cachedPrincipal
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return &model.Principal{
		AccountID: cached.AccountID,
		Email:     cached.Email,
		FirstName: cached.FirstName,
		LastName:  cached.LastName,
		CreatedAt: cached.CreatedAt,
		IsActive:  cached.IsActive,
	}, nil
}

// SetPrincipal caches a resolved principal.
func (c *Cache) SetPrincipal(ctx context.Context, cacheKey string, p *model.Principal) error {
	key := principalCachePrefix + cacheKey

	cached := cachedPrincipal{
		AccountID: p.AccountID,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		CreatedAt: p.CreatedAt,
		IsActive:  p.IsActive,
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal principal: %w", err)
	}

	return c.client.Set(ctx, key, data, principalCacheTTL).Err()
}

// DeletePrincipal removes a cached principal.
func (c *Cache) DeletePrincipal(ctx context.Context, cacheKey string) error {
	key := principalCachePrefix + cacheKey
	return c.client.Del(ctx, key).Err()
}
