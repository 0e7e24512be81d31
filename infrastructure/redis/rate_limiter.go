package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"buildboard/domain/ports"
	"buildboard/pkg/logger"
)

// INCR + PEXPIRE ใน script เดียว เพื่อไม่ให้ key ค้างไม่มี TTL
const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// RateLimiter fixed-window limiter ที่แชร์ระหว่างทุก instance ผ่าน Redis
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
	script *redis.Script
}

func NewRateLimiter(client *Client, limit int, window time.Duration, prefix string) ports.RateLimiterPort {
	return &RateLimiter{
		client: client.Raw(),
		limit:  limit,
		window: window,
		prefix: prefix,
		script: redis.NewScript(rateLimitScript),
	}
}

// Allow fail-open: Redis มีปัญหาจะไม่บล็อกผู้ใช้
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 || l.window <= 0 || key == "" {
		return true, nil
	}

	redisKey := key
	if l.prefix != "" {
		redisKey = l.prefix + ":" + key
	}
	ttl := l.window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}

	ctx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()

	allowed, err := l.script.Run(ctx, l.client, []string{redisKey}, ttl, l.limit).Int64()
	if err != nil {
		logger.WarnContext(ctx, "Rate limiter unavailable, allowing request", "key", redisKey, "error", err)
		return true, nil
	}
	return allowed == 1, nil
}
