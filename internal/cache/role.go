package cache

import (
	"context"
	"time"
)

const (
	// roleCachePrefix is the Redis key prefix for identity role cache.
	roleCachePrefix = "auth:role:"
	// roleCacheTTL is the time-to-live for cached roles.
	roleCacheTTL = 5 * time.Minute
)

// GetRole retrieves a cached role for an email.
// Returns empty string on cache miss.
func (c *Cache) GetRole(ctx context.Context, email string) (string, error) {
	role, err := c.client.Get(ctx, roleCachePrefix+email).Result()
	if err != nil {
		// Cache miss is not an error
		return "", nil //nolint:nilerr
	}
	return role, nil
}

// SetRole caches an identity's role.
func (c *Cache) SetRole(ctx context.Context, email, role string) error {
	return c.client.Set(ctx, roleCachePrefix+email, role, roleCacheTTL).Err()
}

// DeleteRole removes a cached role.
// Used when a role is changed so the new role takes effect immediately.
func (c *Cache) DeleteRole(ctx context.Context, email string) error {
	return c.client.Del(ctx, roleCachePrefix+email).Err()
}
