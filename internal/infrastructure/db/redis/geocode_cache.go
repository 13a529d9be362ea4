package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/delivery-zones/internal/core/domain"
)

const keyPrefix = "geocode:"

// GeocodeCache stores resolved addresses as JSON under geocode:<key>.
// Entries expire on their own; nothing is ever deleted explicitly.
type GeocodeCache struct {
	client redis.UniversalClient
}

func NewGeocodeCache(client redis.UniversalClient) *GeocodeCache {
	return &GeocodeCache{client: client}
}

// Get returns (nil, false, nil) on a miss.
func (c *GeocodeCache) Get(ctx context.Context, key string) (*domain.ResolvedAddress, bool, error) {
	raw, err := c.client.Get(ctx, cacheKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("geocode cache get: %w", err)
	}

	addr, err := decodeAddress(raw)
	if err != nil {
		return nil, false, err
	}
	return addr, true, nil
}

func (c *GeocodeCache) Put(ctx context.Context, key string, value *domain.ResolvedAddress, ttl time.Duration) error {
	if value == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("geocode cache encode: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("geocode cache put: %w", err)
	}
	return nil
}

func cacheKey(key string) string {
	return keyPrefix + key
}

func decodeAddress(raw []byte) (*domain.ResolvedAddress, error) {
	var addr domain.ResolvedAddress
	if err := json.Unmarshal(raw, &addr); err != nil {
		return nil, fmt.Errorf("geocode cache decode: %w", err)
	}
	return &addr, nil
}
