package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:authenticate:"

// slidingWindow trims expired hits, then records this hit only when the
// window still has room. Returns 1 when allowed.
//
// KEYS[1] hit set, ARGV[1] exclusive cutoff score, ARGV[2] now,
// ARGV[3] member, ARGV[4] limit, ARGV[5] ttl in milliseconds
var slidingWindow = redis.NewScript(`
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
if redis.call('ZCARD', KEYS[1]) >= tonumber(ARGV[4]) then
	return 0
end
redis.call('ZADD', KEYS[1], ARGV[2], ARGV[3])
redis.call('PEXPIRE', KEYS[1], ARGV[5])
return 1
`)

// Redis is a sliding-window limiter shared by every replica pointing at the
// same Redis. Each key is a sorted set of hit timestamps in milliseconds.
type Redis struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
	prefix string
	seq    atomic.Uint64
}

// NewRedis creates a Redis-backed limiter
func NewRedis(client *redis.Client, limit int, window time.Duration) *Redis {
	return &Redis{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
		prefix: strconv.FormatInt(time.Now().UnixNano(), 36),
	}
}

// NewRedisFromURL parses a redis:// URL and creates a limiter on it
func NewRedisFromURL(rawURL string, limit int, window time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	return NewRedis(redis.NewClient(opts), limit, window), nil
}

// CheckHealth verifies Redis connectivity
func (r *Redis) CheckHealth(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

// Allow records a hit for key when fewer than limit hits fall within the
// window. The check and the record are one atomic script.
func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	now := r.now()
	cutoff := now.Add(-r.window).UnixMilli()
	member := r.prefix + "-" + strconv.FormatUint(r.seq.Add(1), 10)
	ttl := r.window.Milliseconds()
	if ttl < 1 {
		ttl = 1
	}

	allowed, err := slidingWindow.Run(ctx, r.client, []string{keyPrefix + key},
		"("+strconv.FormatInt(cutoff, 10),
		now.UnixMilli(),
		member,
		r.limit,
		ttl,
	).Int()
	if err != nil {
		return false, fmt.Errorf("recording hit: %w", err)
	}
	return allowed == 1, nil
}

// Close releases the Redis connection pool
func (r *Redis) Close() error {
	return r.client.Close()
}
