package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/offerhub/offers-api/internal/api/metrics"
	"github.com/offerhub/offers-api/internal/core/domain"
)

const (
	offerGenKey        = "offers:gen"
	offerListKeyPrefix = "offers:list:"
	defaultCacheTTL    = 30 * time.Second
)

// kv is the subset of redis.Cmdable the cache needs.
type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// OfferCache keeps the full offer list under a generation-scoped key.
// Invalidate bumps the generation, leaving older lists to expire via TTL.
type OfferCache struct {
	client kv
	ttl    time.Duration
}

// NewOfferCache wraps client. A non-positive ttl uses defaultCacheTTL.
func NewOfferCache(client kv, ttl time.Duration) *OfferCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &OfferCache{client: client, ttl: ttl}
}

func listKey(gen int64) string {
	return offerListKeyPrefix + strconv.FormatInt(gen, 10)
}

func (c *OfferCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, offerGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("offer cache generation: %w", err)
	}
	return gen, nil
}

func (c *OfferCache) GetList(ctx context.Context) ([]*domain.Offer, int64, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}

	raw, err := c.client.Get(ctx, listKey(gen)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.OfferCacheTotal.WithLabelValues("miss").Inc()
			return nil, gen, false, nil
		}
		return nil, 0, false, fmt.Errorf("offer cache get: %w", err)
	}

	var offers []*domain.Offer
	if err := json.Unmarshal(raw, &offers); err != nil {
		// A corrupt entry is treated as a miss and overwritten by the next fill.
		metrics.OfferCacheTotal.WithLabelValues("miss").Inc()
		return nil, gen, false, nil
	}
	metrics.OfferCacheTotal.WithLabelValues("hit").Inc()
	return offers, gen, true, nil
}

func (c *OfferCache) SetList(ctx context.Context, gen int64, offers []*domain.Offer) error {
	if offers == nil {
		offers = []*domain.Offer{}
	}
	raw, err := json.Marshal(offers)
	if err != nil {
		return fmt.Errorf("offer cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, listKey(gen), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("offer cache set: %w", err)
	}
	return nil
}

func (c *OfferCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, offerGenKey).Err(); err != nil {
		return fmt.Errorf("offer cache invalidate: %w", err)
	}
	return nil
}
