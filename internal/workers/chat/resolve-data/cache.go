// internal/workers/chat/resolve-data/cache.go
package resolvedata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"rural-assist/internal/common/logger"
	"rural-assist/internal/models"
	"rural-assist/internal/sources"
)

const cacheKeyPrefix = "rural:data"

// Cache keeps live-tier results in redis. Cache faults are logged and
// treated as misses.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCache(client *redis.Client, ttl time.Duration, log logger.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, logger: log}
}

// CacheKey is rural:data:<type>:<query key>.
func CacheKey(q sources.Query) string {
	return fmt.Sprintf("%s:%s:%s", cacheKeyPrefix, q.Domain, q.Key())
}

// Cacheable reports whether a result may be stored. Only api and scraping
// results with data qualify.
func Cacheable(r models.DataSourceResult) bool {
	if r.Source != models.SourceAPI && r.Source != models.SourceScraping {
		return false
	}
	return r.HasData()
}

func (c *Cache) Get(ctx context.Context, key string) (models.DataSourceResult, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
		return models.DataSourceResult{}, false
	}

	var r models.DataSourceResult
	if err := json.Unmarshal(raw, &r); err != nil {
		c.logger.Warn("cache entry unreadable", map[string]interface{}{"key": key, "error": err.Error()})
		return models.DataSourceResult{}, false
	}
	return r, Cacheable(r)
}

func (c *Cache) Put(ctx context.Context, key string, r models.DataSourceResult) {
	if !Cacheable(r) {
		return
	}
	raw, err := json.Marshal(r)
	if err != nil {
		c.logger.Warn("cache encode failed", map[string]interface{}{"key": key, "error": err.Error()})
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
