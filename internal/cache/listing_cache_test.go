package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farebd/leasehold/api/internal/models"
)

// newTestCache spins up a miniredis instance and a cache wrapping it.
func newTestCache(t *testing.T) (*ListingCache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	c := NewWithClient(client, 30*time.Second)
	t.Cleanup(func() { _ = c.Close() })

	return c, srv
}

func TestListingCache_MissThenHit(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, err := c.GetSnapshot(ctx)
	assert.ErrorIs(t, err, ErrMiss)

	listings := []models.Listing{
		{ID: "a", Type: models.PropertyTypePlot, Location: "Warsaw", LeaseType: "Lease"},
		{ID: "b", Type: models.PropertyTypeBuilding, Location: "Krakow", LeaseType: "Long-term rental"},
	}
	require.NoError(t, c.SetSnapshot(ctx, listings))

	got, err := c.GetSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, models.PropertyTypeBuilding, got[1].Type)
}

func TestListingCache_Invalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetSnapshot(ctx, []models.Listing{{ID: "a"}}))
	require.NoError(t, c.Invalidate(ctx))

	_, err := c.GetSnapshot(ctx)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestListingCache_ExpiresAfterTTL(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetSnapshot(ctx, []models.Listing{{ID: "a"}}))

	// miniredis only advances time explicitly.
	srv.FastForward(time.Minute)

	_, err := c.GetSnapshot(ctx)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestListingCache_CorruptEntryBehavesLikeMiss(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, srv.Set("listings:approved:snapshot", "{not json"))

	_, err := c.GetSnapshot(ctx)
	assert.ErrorIs(t, err, ErrMiss)
}
