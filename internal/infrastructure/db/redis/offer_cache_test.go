package redis

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offerhub/offers-api/internal/core/domain"
)

// memKV is an in-memory kv that records TTLs.
type memKV struct {
	data    map[string]string
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
	incrErr error
}

func newMemKV() *memKV {
	return &memKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memKV) Get(_ context.Context, key string) *redis.StringCmd {
	if m.getErr != nil {
		return redis.NewStringResult("", m.getErr)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memKV) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	if m.setErr != nil {
		return redis.NewStatusResult("", m.setErr)
	}
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	m.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (m *memKV) Incr(_ context.Context, key string) *redis.IntCmd {
	if m.incrErr != nil {
		return redis.NewIntResult(0, m.incrErr)
	}
	n, _ := strconv.ParseInt(m.data[key], 10, 64)
	n++
	m.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func TestOfferCache_MissThenHit(t *testing.T) {
	store := newMemKV()
	cache := NewOfferCache(store, time.Minute)
	ctx := context.Background()

	offers, gen, ok, err := cache.GetList(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, offers)
	assert.Zero(t, gen)

	want := []*domain.Offer{{ID: "1", Title: "A", OriginalPrice: 100, Discount: 10, DiscountedPrice: 90}}
	require.NoError(t, cache.SetList(ctx, gen, want))
	assert.Equal(t, time.Minute, store.ttls[listKey(gen)])

	got, _, ok, err := cache.GetList(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, 90.0, got[0].DiscountedPrice)
	assert.Equal(t, "A", got[0].Title)
}

func TestOfferCache_EmptyListIsAHit(t *testing.T) {
	cache := NewOfferCache(newMemKV(), 0)
	ctx := context.Background()

	require.NoError(t, cache.SetList(ctx, 0, nil))
	got, _, ok, err := cache.GetList(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestOfferCache_Invalidate(t *testing.T) {
	store := newMemKV()
	cache := NewOfferCache(store, 0)
	ctx := context.Background()

	require.NoError(t, cache.SetList(ctx, 0, []*domain.Offer{{ID: "1"}}))
	assert.Equal(t, defaultCacheTTL, store.ttls[listKey(0)])
	require.NoError(t, cache.Invalidate(ctx))

	_, gen, ok, err := cache.GetList(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(1), gen)
}

func TestOfferCache_FillFromBeforeAWriteIsNeverServed(t *testing.T) {
	store := newMemKV()
	cache := NewOfferCache(store, 0)
	ctx := context.Background()

	// A reader misses and goes to the store.
	_, gen, ok, err := cache.GetList(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	// A writer commits and invalidates before the reader fills.
	require.NoError(t, cache.Invalidate(ctx))
	require.NoError(t, cache.SetList(ctx, gen, []*domain.Offer{{ID: "stale"}}))

	_, next, ok, err := cache.GetList(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, gen+1, next)

	require.NoError(t, cache.SetList(ctx, next, []*domain.Offer{{ID: "fresh"}}))
	got, _, ok, err := cache.GetList(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "fresh", got[0].ID)
}

func TestOfferCache_CorruptEntryIsAMiss(t *testing.T) {
	store := newMemKV()
	store.data[listKey(0)] = "{not json"
	cache := NewOfferCache(store, 0)

	_, _, ok, err := cache.GetList(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOfferCache_Errors(t *testing.T) {
	store := newMemKV()
	boom := errors.New("connection refused")
	store.getErr, store.setErr, store.incrErr = boom, boom, boom
	cache := NewOfferCache(store, 0)
	ctx := context.Background()

	_, _, _, err := cache.GetList(ctx)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, cache.SetList(ctx, 0, nil), boom)
	assert.ErrorIs(t, cache.Invalidate(ctx), boom)
}
