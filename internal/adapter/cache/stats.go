package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"loanbook-backend/internal/domain/loan"
)

// StatsCache keeps per-lender portfolio aggregates in redis for a short TTL.
// Each lender has a generation counter; Invalidate bumps it and Set only
// writes when the counter still matches the one the reader saw.
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStatsCache(rdb *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{rdb: rdb, ttl: ttl}
}

func statsKey(lenderID uint64) string {
	return "stats:lender:" + strconv.FormatUint(lenderID, 10)
}

func genKey(lenderID uint64) string {
	return statsKey(lenderID) + ":gen"
}

// KEYS[1] stats, KEYS[2] generation; ARGV: expected generation, payload, ttl ms.
var setIfGen = redis.NewScript(`
if (redis.call('GET', KEYS[2]) or '0') ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// Get reports ok=false on a miss. The generation is returned on hits and misses.
func (c *StatsCache) Get(ctx context.Context, lenderID uint64) (loan.Stats, int64, bool, error) {
	vals, err := c.rdb.MGet(ctx, statsKey(lenderID), genKey(lenderID)).Result()
	if err != nil {
		return loan.Stats{}, 0, false, err
	}
	var gen int64
	if g, ok := vals[1].(string); ok {
		if gen, err = strconv.ParseInt(g, 10, 64); err != nil {
			return loan.Stats{}, 0, false, err
		}
	}
	raw, ok := vals[0].(string)
	if !ok {
		return loan.Stats{}, gen, false, nil
	}
	var s loan.Stats
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		// corrupt entry: treat as a miss and let the caller refill it
		_ = c.rdb.Del(ctx, statsKey(lenderID)).Err()
		return loan.Stats{}, gen, false, nil
	}
	return s, gen, true, nil
}

// Set stores s unless the lender was invalidated after gen was read.
func (c *StatsCache) Set(ctx context.Context, lenderID uint64, gen int64, s loan.Stats) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	keys := []string{statsKey(lenderID), genKey(lenderID)}
	return setIfGen.Run(ctx, c.rdb, keys, strconv.FormatInt(gen, 10), b, c.ttl.Milliseconds()).Err()
}

func (c *StatsCache) Invalidate(ctx context.Context, lenderID uint64) error {
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, genKey(lenderID))
		p.Del(ctx, statsKey(lenderID))
		return nil
	})
	return err
}
