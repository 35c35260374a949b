package middleware

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/taigaio/taiga-mcp/internal/taiga"
)

// RateLimit gates every invocation on a process-wide token bucket.
// When the bucket is empty the invocation waits for refill, bounded by
// the request deadline; exceeding it fails as rate-limited. Read-only
// hints do not bypass the limit.
func RateLimit(rps float64, burst int) Middleware {
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next Handler) Handler {
		return func(ctx context.Context, inv *Invocation) (any, error) {
			if err := limiter.Wait(ctx); err != nil {
				return nil, &taiga.Error{
					Kind:    taiga.KindRateLimited,
					Message: "local rate limit exceeded before deadline",
					Err:     err,
				}
			}
			return next(ctx, inv)
		}
	}
}
