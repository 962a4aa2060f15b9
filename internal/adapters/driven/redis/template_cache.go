package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/opiekalabs/wypadek-core/internal/core/ports/driven"
	"github.com/redis/go-redis/v9"
)

// Verify interface compliance
var _ driven.TemplateCache = (*TemplateCache)(nil)

const templatePrefix = "template:"

// TemplateCache implements driven.TemplateCache using Redis. Template
// bytes are immutable per revision, so a plain TTL'd value is enough;
// uploads invalidate the key.
type TemplateCache struct {
	client *redis.Client
}

// NewTemplateCache creates a new Redis-backed TemplateCache
func NewTemplateCache(client *redis.Client) *TemplateCache {
	return &TemplateCache{client: client}
}

// Get returns the cached template bytes, or nil on a miss
func (c *TemplateCache) Get(ctx context.Context, id string) ([]byte, error) {
	data, err := c.client.Get(ctx, templatePrefix+id).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return data, nil
}

// Set caches template bytes with a TTL
func (c *TemplateCache) Set(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, templatePrefix+id, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache template: %w", err)
	}
	return nil
}

// Invalidate drops a cached template after an upload
func (c *TemplateCache) Invalidate(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, templatePrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to invalidate template: %w", err)
	}
	return nil
}
