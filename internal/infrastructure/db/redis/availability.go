package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const availabilityTTL = 5 * time.Minute

// AvailabilityCache caches "taken" verdicts for the check-availability
// pre-check. Only taken names are stored: a registered username or email
// never becomes free again, while availability must always be re-checked
// against storage. Key format: taken:<field>:<value>
type AvailabilityCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewAvailabilityCache(client *redis.Client, log zerolog.Logger) *AvailabilityCache {
	return &AvailabilityCache{client: client, log: log}
}

// Get reports whether field/value is cached as taken. Any backend error is
// treated as a miss; the caller falls through to storage.
func (c *AvailabilityCache) Get(ctx context.Context, field, value string) (bool, bool) {
	n, err := c.client.Exists(ctx, c.key(field, value)).Result()
	if err != nil {
		c.log.Warn().Err(err).Str("field", field).Msg("availability cache check failed")
		return false, false
	}
	if n == 0 {
		return false, false
	}
	return true, true
}

// Mark records field/value as taken for availabilityTTL.
func (c *AvailabilityCache) Mark(ctx context.Context, field, value string) {
	if err := c.client.Set(ctx, c.key(field, value), "1", availabilityTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("field", field).Msg("availability cache set failed")
	}
}

func (c *AvailabilityCache) key(field, value string) string {
	return fmt.Sprintf("taken:%s:%s", field, value)
}
