// Package cache provides a read-through Redis cache for the browse page's
// listing snapshot. The snapshot is the full createdAt-descending approved
// listing collection the filter engine runs over; caching it keeps repeated
// searches off the document store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/farebd/leasehold/api/internal/config"
	"github.com/farebd/leasehold/api/internal/models"
)

// ErrMiss is returned when the snapshot is not cached.
var ErrMiss = errors.New("cache miss")

const snapshotKey = "listings:approved:snapshot"

// ListingCache stores the approved-listing snapshot with a short TTL.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a ListingCache backed by a Redis client built from cfg.
func New(cfg config.RedisConfig) *ListingCache {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	return &ListingCache{client: client, ttl: cfg.TTL}
}

// NewWithClient wraps an existing Redis client, used by tests with miniredis.
func NewWithClient(client *redis.Client, ttl time.Duration) *ListingCache {
	return &ListingCache{client: client, ttl: ttl}
}

// Ping tests the Redis connection.
func (c *ListingCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *ListingCache) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// GetSnapshot returns the cached listing snapshot, or ErrMiss when absent.
func (c *ListingCache) GetSnapshot(ctx context.Context) ([]models.Listing, error) {
	raw, err := c.client.Get(ctx, snapshotKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read listing snapshot: %w", err)
	}

	var listings []models.Listing
	if err := json.Unmarshal([]byte(raw), &listings); err != nil {
		// A corrupt entry behaves like a miss; the caller will refill it.
		return nil, ErrMiss
	}
	return listings, nil
}

// SetSnapshot stores the listing snapshot with the configured TTL.
func (c *ListingCache) SetSnapshot(ctx context.Context, listings []models.Listing) error {
	raw, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("failed to encode listing snapshot: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store listing snapshot: %w", err)
	}
	return nil
}

// Invalidate drops the snapshot. Called after any listing write so browse
// results never serve a stale approval state longer than one refill.
func (c *ListingCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, snapshotKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate listing snapshot: %w", err)
	}
	return nil
}
