package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a token-bucket limiter whose state lives in Redis, so every
// instance of the service draws from the same buckets.
type Redis struct {
	rdb    redis.Scripter
	rate   float64
	burst  int
	prefix string
	now    func() time.Time
}

// tokenBucketScript refills KEYS[1] at ARGV[1] tokens per second up to
// ARGV[2] tokens, using ARGV[3] as the current time in milliseconds, then
// takes one token if it can. Returns 1 when a token was taken.
var tokenBucketScript = redis.NewScript(`
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

local state = redis.call("HMGET", KEYS[1], "tokens", "ts")
local tokens = tonumber(state[1])
local ts = tonumber(state[2])
if tokens == nil or ts == nil then
  tokens = burst
  ts = now
end

local elapsed = math.max(0, now - ts)
tokens = math.min(burst, tokens + elapsed * rate / 1000)

local allowed = 0
if tokens >= 1 then
  tokens = tokens - 1
  allowed = 1
end

redis.call("HSET", KEYS[1], "tokens", tokens, "ts", now)
redis.call("PEXPIRE", KEYS[1], math.ceil(burst / rate * 1000) + 1000)
return allowed
`)

func NewRedis(rdb redis.Scripter, perSecond float64, burst int, prefix string) *Redis {
	if perSecond <= 0 {
		perSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "rl"
	}

	return &Redis{rdb: rdb, rate: perSecond, burst: burst, prefix: prefix, now: time.Now}
}

func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	res, err := tokenBucketScript.Run(ctx, r.rdb, []string{r.prefix + ":" + key}, r.rate, r.burst, r.now().UnixMilli()).Result()
	if err != nil {
		return false, fmt.Errorf("failed to run token bucket script: %w", err)
	}

	switch v := res.(type) {
	case int64:
		return v == 1, nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return false, fmt.Errorf("unexpected token bucket result %q: %w", v, err)
		}
		return n == 1, nil
	default:
		return false, fmt.Errorf("unexpected token bucket result type %T", res)
	}
}
