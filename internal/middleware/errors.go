package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/taigaio/taiga-mcp/internal/taiga"
)

// RetryConfig tunes the transient-retry loop.
type RetryConfig struct {
	MaxRetries int
	Backoff    time.Duration // base interval
	BackoffCap time.Duration
	Production bool // mask internal detail outward
}

// Errors is the outermost middleware: it assigns correlation ids,
// recovers panics, retries transient failures with exponential backoff
// and jitter, and normalises everything that escapes into a
// kind-bearing error safe to surface.
func Errors(logger *slog.Logger, cfg RetryConfig) Middleware {
	if cfg.Backoff <= 0 {
		cfg.Backoff = 500 * time.Millisecond
	}
	if cfg.BackoffCap <= 0 {
		cfg.BackoffCap = 10 * time.Second
	}

	return func(next Handler) Handler {
		return func(ctx context.Context, inv *Invocation) (result any, err error) {
			if inv.CorrelationID == "" {
				inv.CorrelationID = uuid.NewString()
			}

			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic in handler",
						"correlation_id", inv.CorrelationID,
						"target", inv.Name,
						"panic", fmt.Sprint(r))
					err = &taiga.Error{Kind: taiga.KindInternal, Message: "internal error"}
				}
				if err != nil {
					// The log keeps the full detail; only the value
					// returned to the caller is masked.
					logger.Error("invocation failed",
						"correlation_id", inv.CorrelationID,
						"kind", string(inv.Kind),
						"target", inv.Name,
						"error_kind", string(taiga.KindOf(err)),
						"error", err.Error())
					err = sanitize(err, cfg.Production)
				}
			}()

			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = cfg.Backoff
			bo.MaxInterval = cfg.BackoffCap
			bo.MaxElapsedTime = 0 // the request deadline bounds us

			for attempt := 0; ; attempt++ {
				result, err = next(ctx, inv)
				if err == nil {
					return result, nil
				}
				if attempt >= cfg.MaxRetries || !shouldRetry(inv, err) {
					return nil, err
				}

				delay := bo.NextBackOff()
				// An upstream 429 with Retry-After overrides the backoff.
				if ra := taiga.RetryAfterOf(err); ra > 0 {
					delay = ra
				}
				logger.Warn("retrying after transient failure",
					"correlation_id", inv.CorrelationID,
					"target", inv.Name,
					"attempt", attempt+1,
					"delay", delay.String(),
					"error_kind", string(taiga.KindOf(err)))

				select {
				case <-ctx.Done():
					return nil, &taiga.Error{Kind: taiga.KindTimeout, Message: "deadline exceeded during retry", Err: ctx.Err()}
				case <-time.After(delay):
				}
			}
		}
	}
}

// shouldRetry gates retries on the error kind and the operation's
// idempotency: non-idempotent operations are never reissued. A local
// rate-limit denial already exhausted its deadline, so only upstream
// 429s carrying a retry-after are retried.
func shouldRetry(inv *Invocation, err error) bool {
	if !inv.Idempotent && !inv.ReadOnly {
		return false
	}
	switch taiga.KindOf(err) {
	case taiga.KindTransient:
		return true
	case taiga.KindRateLimited:
		return taiga.RetryAfterOf(err) > 0
	}
	return false
}

// sanitize masks detail that must not leak in production: internal
// error messages and upstream payload fragments.
func sanitize(err error, production bool) error {
	if !production {
		return err
	}
	kind := taiga.KindOf(err)
	if kind == taiga.KindInternal {
		return &taiga.Error{Kind: taiga.KindInternal, Message: "internal error"}
	}
	var te *taiga.Error
	if errors.As(err, &te) && te.Detail != "" && kind != taiga.KindInvalidInput {
		return &taiga.Error{Kind: te.Kind, Message: te.Message, RetryAfter: te.RetryAfter}
	}
	return err
}
