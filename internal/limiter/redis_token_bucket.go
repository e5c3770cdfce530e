package limiter

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type ILimiter interface {
	Allow(ctx context.Context, key string) bool
}

// RedisClient is the slice of the redis API the bucket needs.
type RedisClient interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisTokenBucket shares one bucket per key across all server instances.
// Fails open: a redis error never blocks a request.
type RedisTokenBucket struct {
	client   RedisClient
	capacity int
	rate     int
}

func NewRedisTokenBucket(client RedisClient, capacity, rate int) *RedisTokenBucket {
	return &RedisTokenBucket{
		client:   client,
		capacity: capacity,
		rate:     rate,
	}
}

const tokenBucketScript = `
	local key = KEYS[1]
	local capacity = tonumber(ARGV[1])
	local rate = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])
	local initTokens = tonumber(ARGV[4])

	local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
	local currentTokens = tonumber(bucket[1])
	local lastRefill = tonumber(bucket[2])

	if currentTokens == nil then
		currentTokens = initTokens
		lastRefill = now
		redis.call('HMSET', key, 'tokens', currentTokens, 'last_refill', lastRefill)
		redis.call('EXPIRE', key, 60)
	end

	local elapsedSeconds = (now - lastRefill) / 1000000000
	local tokensToAdd = elapsedSeconds * rate

	currentTokens = math.min(capacity, currentTokens + tokensToAdd)

	if currentTokens < 1 then
		redis.call('HMSET', key, 'tokens', currentTokens, 'last_refill', now)
		return 0
	end

	currentTokens = currentTokens - 1
	redis.call('HMSET', key, 'tokens', currentTokens, 'last_refill', now)

	return 1
`

func (r *RedisTokenBucket) Allow(ctx context.Context, key string) bool {
	result, err := r.client.Eval(
		ctx,
		tokenBucketScript,
		[]string{"plantshop:ratelimit:" + key},
		r.capacity,
		r.rate,
		time.Now().UnixNano(),
		r.capacity,
	).Int64()

	if err != nil {
		return true
	}

	return result == 1
}

var _ ILimiter = (*RedisTokenBucket)(nil)
