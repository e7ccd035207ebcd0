// Package redis provides a read-through cache of settled results keyed by
// idempotency key, in front of the ledger store. It absorbs short-retry
// replays without a store round trip; the store stays the source of truth.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MihneaE/slot-machine-microservices/internal/modules/ledger/domain"
	"github.com/MihneaE/slot-machine-microservices/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// resultTTL covers the short-retry window where duplicate requests arrive;
// anything older falls through to the store's replay path
const resultTTL = 1 * time.Minute

// ResultCache implements domain.ResultCache on Redis
type ResultCache struct {
	rdb *redis.Client
}

// NewResultCache creates a new Redis result cache
func NewResultCache(rdb *redis.Client) *ResultCache {
	return &ResultCache{rdb: rdb}
}

func resultKey(recordID string) string {
	return fmt.Sprintf("settle_result:%s", recordID)
}

// Get returns the cached result for a key. Errors degrade to a miss.
func (c *ResultCache) Get(ctx context.Context, recordID string) (*domain.SettleResult, bool) {
	bs, err := c.rdb.Get(ctx, resultKey(recordID)).Bytes()
	if err != nil || len(bs) == 0 {
		return nil, false
	}

	var res domain.SettleResult
	if err := json.Unmarshal(bs, &res); err != nil {
		return nil, false
	}

	// a hit is by definition a replay of an already committed settlement
	res.Replayed = true
	return &res, true
}

// Set stores a committed result. Failures are logged and swallowed: the
// cache is an optimization, never a correctness dependency.
func (c *ResultCache) Set(ctx context.Context, recordID string, res *domain.SettleResult) {
	b, err := json.Marshal(res)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, resultKey(recordID), b, resultTTL).Err(); err != nil {
		logger.Warn(ctx).Err(err).Str("record_id", recordID).Msg("settle result cache write failed")
	}
}
