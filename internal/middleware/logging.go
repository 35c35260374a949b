package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/taigaio/taiga-mcp/internal/taiga"
)

// sensitiveFields are argument names whose values are never logged.
var sensitiveFields = map[string]bool{
	"password":      true,
	"token":         true,
	"auth_token":    true,
	"refresh":       true,
	"refresh_token": true,
	"secret":        true,
	"api_key":       true,
	"authorization": true,
}

const redacted = "[REDACTED]"

// Logging emits one start and one end record per invocation with the
// correlation id, kind, target name, duration, outcome, and a
// sanitised argument summary. secrets are literal values (configured
// credentials) that must never appear in any record.
func Logging(logger *slog.Logger, secrets []string) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, inv *Invocation) (any, error) {
			logger.Info("invocation start",
				"correlation_id", inv.CorrelationID,
				"kind", string(inv.Kind),
				"target", inv.Name,
				"args", summarizeArgs(inv.Args, secrets))

			result, err := next(ctx, inv)

			outcome := "ok"
			if err != nil {
				outcome = string(taiga.KindOf(err))
			}
			logger.Info("invocation end",
				"correlation_id", inv.CorrelationID,
				"kind", string(inv.Kind),
				"target", inv.Name,
				"outcome", outcome,
				"duration", time.Since(inv.Start).String())

			return result, err
		}
	}
}

// summarizeArgs renders the arguments with sensitive fields redacted,
// configured secret substrings scrubbed, and long values truncated.
func summarizeArgs(args map[string]any, secrets []string) string {
	if len(args) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(args))
	for k, v := range args {
		if sensitiveFields[strings.ToLower(k)] {
			parts = append(parts, k+"="+redacted)
			continue
		}
		s := fmt.Sprint(v)
		for _, secret := range secrets {
			if secret != "" {
				s = strings.ReplaceAll(s, secret, redacted)
			}
		}
		if len(s) > 120 {
			s = s[:117] + "..."
		}
		parts = append(parts, k+"="+s)
	}
	// Map iteration order is random; sort for stable log output.
	sort.Strings(parts)
	return "{" + strings.Join(parts, " ") + "}"
}
