package cache

import (
	"context"
	"cvrp-route-service/internal/domain"
	"cvrp-route-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cvrp:solution:"

// RedisSolutionCache stores heuristic solutions in Redis as JSON arrays of
// routes, keyed by instance fingerprint and algorithm.
type RedisSolutionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSolutionCache(rdb *redis.Client, ttl time.Duration) *RedisSolutionCache {
	return &RedisSolutionCache{rdb: rdb, ttl: ttl}
}

// NewRedisSolutionCacheFromURL parses a redis:// URL and pings the server.
func NewRedisSolutionCacheFromURL(ctx context.Context, url string, ttl time.Duration) (*RedisSolutionCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("solution cache: parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("solution cache: ping redis: %w", err)
	}

	return NewRedisSolutionCache(rdb, ttl), nil
}

func (c *RedisSolutionCache) key(inst *domain.Instance, algorithm string) string {
	return keyPrefix + algorithm + ":" + strconv.FormatUint(Fingerprint(inst), 16)
}

// Fetch the cached solution for inst and algorithm.
func (c *RedisSolutionCache) Get(
	ctx context.Context,
	inst *domain.Instance,
	algorithm string,
) (_ domain.Solution, _ bool, err error) {
	defer obs.Time(ctx, "solution.cache.Get")(&err)

	if c.rdb == nil {
		return nil, false, errors.New("solution cache: redis client is nil")
	}

	data, err := c.rdb.Get(ctx, c.key(inst, algorithm)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get solution cache: %w", err)
	}

	var sol domain.Solution
	if err := json.Unmarshal(data, &sol); err != nil {
		return nil, false, fmt.Errorf("get solution cache: decode: %w", err)
	}

	return sol, true, nil
}

// Store sol for inst and algorithm with the configured TTL.
func (c *RedisSolutionCache) Put(
	ctx context.Context,
	inst *domain.Instance,
	algorithm string,
	sol domain.Solution,
) error {
	if c.rdb == nil {
		return errors.New("solution cache: redis client is nil")
	}

	data, err := json.Marshal(sol)
	if err != nil {
		return fmt.Errorf("put solution cache: encode: %w", err)
	}

	if err := c.rdb.Set(ctx, c.key(inst, algorithm), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("put solution cache: %w", err)
	}

	return nil
}

func (c *RedisSolutionCache) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
