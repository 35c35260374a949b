package middleware

import (
	"context"
	"time"
)

// Timing records the start timestamp before the inner layers run and
// the total duration afterwards. It never fails an invocation.
func Timing() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, inv *Invocation) (any, error) {
			inv.Start = time.Now()
			result, err := next(ctx, inv)
			inv.Duration = time.Since(inv.Start)
			return result, err
		}
	}
}
