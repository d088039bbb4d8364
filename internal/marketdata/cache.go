package marketdata

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "quote:v1:"

// CachedQuoter fronts another quoter with a short-lived Redis cache so
// polling clients do not hammer the upstream sources. Cache failures fall
// through to the upstream.
type CachedQuoter struct {
	next   Quoter
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedQuoter builds a caching quoter.
func NewCachedQuoter(next Quoter, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedQuoter {
	return &CachedQuoter{next: next, client: client, ttl: ttl, logger: logger}
}

func (q *CachedQuoter) Quote(ctx context.Context, symbol string) (float64, error) {
	key := cacheKeyPrefix + symbol

	cached, err := q.client.Get(ctx, key).Result()
	if err == nil {
		if price, parseErr := strconv.ParseFloat(cached, 64); parseErr == nil {
			return price, nil
		}
	} else if err != redis.Nil {
		q.logger.Warn("quote cache read failed", "symbol", symbol, "error", err)
	}

	price, err := q.next.Quote(ctx, symbol)
	if err != nil {
		return 0, err
	}

	if err := q.client.Set(ctx, key, strconv.FormatFloat(price, 'f', -1, 64), q.ttl).Err(); err != nil {
		q.logger.Warn("quote cache write failed", "symbol", symbol, "error", err)
	}
	return price, nil
}
