package ports

import "context"

// RateLimiterPort fixed-window limiter ต่อ key
type RateLimiterPort interface {
	Allow(ctx context.Context, key string) (bool, error)
}
