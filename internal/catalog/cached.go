package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"buildboard-api/internal/cache"
	"buildboard-api/internal/model"
)

// CacheKeyPrefix namespaces catalog entries in a shared cache.
const CacheKeyPrefix = "buildboard:catalog:"

// CachedCatalog is a read-through cache in front of another Catalog.
// Only found items are cached so a later catalog addition is visible.
// The cache is never authoritative: when it is unreachable lookups go
// straight to the wrapped catalog.
type CachedCatalog struct {
	next  Catalog
	cache cache.Cache
	ttl   time.Duration
	log   logrus.FieldLogger
}

// NewCachedCatalog wraps next with c.
func NewCachedCatalog(next Catalog, c cache.Cache, ttl time.Duration, logger logrus.FieldLogger) *CachedCatalog {
	return &CachedCatalog{
		next:  next,
		cache: c,
		ttl:   ttl,
		log:   logger.WithField("component", "catalog_cache"),
	}
}

// Lookup resolves articleNumber from cache, falling back to the wrapped
// catalog. Cache failures are logged and never fail the lookup.
func (c *CachedCatalog) Lookup(ctx context.Context, articleNumber string) (*model.Item, error) {
	key := CacheKeyPrefix + articleNumber
	log := c.log.WithField("article", articleNumber)

	data, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		var it model.Item
		jerr := json.Unmarshal(data, &it)
		if jerr == nil {
			return &it, nil
		}
		log.WithError(jerr).Warn("Dropping undecodable cache entry")
		if err := c.cache.Delete(ctx, key); err != nil {
			log.WithError(err).Warn("Catalog cache delete failed")
		}
	case !errors.Is(err, cache.ErrCacheMiss):
		log.WithError(err).Warn("Catalog cache read failed")
	}

	it, err := c.next.Lookup(ctx, articleNumber)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, nil
	}

	data, err = json.Marshal(it)
	if err == nil {
		err = c.cache.Set(ctx, key, data, c.ttl)
	}
	if err != nil {
		log.WithError(err).Warn("Catalog cache write failed")
	}
	return it, nil
}

var _ Catalog = (*CachedCatalog)(nil)
