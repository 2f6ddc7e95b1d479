package invoice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/YarKhan02/Workshop-sub000/models"

	"github.com/go-redis/redis/v8"
)

const cacheKeyPrefix = "invoice:"

// ErrCacheMiss means no rendered invoice is cached under the key.
var ErrCacheMiss = errors.New("invoice not cached")

// CacheKey identifies one rendering of the booking's invoice. Status and total
// are spelled out; the rest of what the invoice prints goes into a fingerprint,
// so any change to the booking yields a new key.
func CacheKey(booking models.Booking) string {
	h := fnv.New64a()
	// A Booking always marshals.
	data, _ := json.Marshal(booking)
	_, _ = h.Write(data)
	return fmt.Sprintf("%s:%s:%s:%016x", booking.ID, booking.Status, booking.Amounts.Total, h.Sum64())
}

// Cache keeps rendered invoice PDFs in Redis.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get returns the PDF cached under key, as built by CacheKey.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached invoice: %w", err)
	}
	return data, nil
}

func (c *Cache) Put(ctx context.Context, key string, pdf []byte) error {
	if err := c.client.Set(ctx, cacheKeyPrefix+key, pdf, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache invoice: %w", err)
	}
	return nil
}
