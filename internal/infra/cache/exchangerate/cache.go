package exchangerate

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-RentalService/pkg/types"
)

const keyPrefix = "rental:fx:"

// Cache кэш курсов "CLP за 1 USD" по арендатору и дате
type Cache struct {
	client *redis.Client
}

// NewCache создает кэш курсов
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func key(tenantID string, day types.Date) string {
	return keyPrefix + tenantID + ":" + day.String()
}

// Get возвращает курс из кэша; ok=false при промахе
func (c *Cache) Get(ctx context.Context, tenantID string, day types.Date) (float64, bool, error) {
	raw, err := c.client.Get(ctx, key(tenantID, day)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("%w: %v", ErrCacheRead, err)
	}

	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: bad value %q: %v", ErrCacheRead, raw, err)
	}

	return rate, true, nil
}

// Set сохраняет курс с указанным TTL (0 = без срока)
func (c *Cache) Set(ctx context.Context, tenantID string, day types.Date, rate float64, ttl time.Duration) error {
	value := strconv.FormatFloat(rate, 'f', -1, 64)
	if err := c.client.Set(ctx, key(tenantID, day), value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	return nil
}
