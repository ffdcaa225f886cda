package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"lightbnb/internal/cache"
	"lightbnb/internal/model"
)

const generationKey = "properties:generation"

// CachedGateway serves repeated property searches from redis. Adding a
// property bumps a generation counter that is part of every search key, so
// earlier results stop being served. Any cache failure falls back to the
// wrapped Querier.
type CachedGateway struct {
	Querier
	cache cache.Cache
	ttl   time.Duration
	log   zerolog.Logger
}

var _ Querier = (*CachedGateway)(nil)

func NewCachedGateway(next Querier, c cache.Cache, ttl time.Duration, log zerolog.Logger) *CachedGateway {
	return &CachedGateway{Querier: next, cache: c, ttl: ttl, log: log}
}

func (c *CachedGateway) GetAllProperties(ctx context.Context, opts model.PropertySearch, limit int) ([]model.PropertyListing, error) {
	key, err := c.searchKey(ctx, opts, limit)
	if err != nil {
		c.warn(err, "search cache unavailable")
		return c.Querier.GetAllProperties(ctx, opts, limit)
	}

	raw, err := c.cache.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var listings []model.PropertyListing
		if err := json.Unmarshal(raw, &listings); err == nil {
			return listings, nil
		}
		c.warn(err, "discarding undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		c.warn(err, "search cache read failed")
	}

	listings, err := c.Querier.GetAllProperties(ctx, opts, limit)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(listings)
	if err == nil {
		err = c.cache.Set(ctx, key, data, c.ttl).Err()
	}
	if err != nil {
		c.warn(err, "search cache write failed")
	}
	return listings, nil
}

func (c *CachedGateway) AddProperty(ctx context.Context, p *model.Property) (*model.Property, error) {
	created, err := c.Querier.AddProperty(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Incr(ctx, generationKey).Err(); err != nil {
		c.warn(err, "search cache invalidation failed")
	}
	return created, nil
}

func (c *CachedGateway) searchKey(ctx context.Context, opts model.PropertySearch, limit int) (string, error) {
	gen, err := c.cache.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	filter, err := json.Marshal(opts)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("properties:%d:%d:%s", gen, limit, filter), nil
}

func (c *CachedGateway) warn(err error, msg string) {
	c.log.Warn().Err(err).Msg(msg)
}
