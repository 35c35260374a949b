package middleware

import (
	"context"
	"time"
)

// Deadline installs the invocation deadline so that downstream waits,
// rate-limiter blocking and retry sleeps included, are always bounded.
// An earlier deadline already on the context is kept; a budget of zero
// disables the bound.
func Deadline(budget time.Duration) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, inv *Invocation) (any, error) {
			if budget <= 0 {
				return next(ctx, inv)
			}
			if dl, ok := ctx.Deadline(); ok && time.Until(dl) <= budget {
				return next(ctx, inv)
			}
			ctx, cancel := context.WithTimeout(ctx, budget)
			defer cancel()
			return next(ctx, inv)
		}
	}
}
