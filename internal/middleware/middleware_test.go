package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/taigaio/taiga-mcp/internal/taiga"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
}

func TestChain_Order(t *testing.T) {
	var order []string
	mk := func(name string) Middleware {
		return func(next Handler) Handler {
			return func(ctx context.Context, inv *Invocation) (any, error) {
				order = append(order, name+"-in")
				v, err := next(ctx, inv)
				order = append(order, name+"-out")
				return v, err
			}
		}
	}

	h := Chain(func(context.Context, *Invocation) (any, error) {
		order = append(order, "handler")
		return nil, nil
	}, mk("a"), mk("b"))

	h(context.Background(), &Invocation{})

	want := []string{"a-in", "b-in", "handler", "b-out", "a-out"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Fatalf("order = %v; want %v", order, want)
	}
}

func TestErrors_CorrelationID(t *testing.T) {
	var seen string
	h := Chain(func(_ context.Context, inv *Invocation) (any, error) {
		seen = inv.CorrelationID
		return nil, nil
	}, Errors(discardLogger(), RetryConfig{}))

	inv := &Invocation{Kind: KindTool, Name: "t"}
	h(context.Background(), inv)
	if seen == "" {
		t.Fatal("correlation id not generated")
	}

	// A pre-set id is propagated, not replaced.
	inv2 := &Invocation{Kind: KindTool, Name: "t", CorrelationID: "fixed"}
	h(context.Background(), inv2)
	if inv2.CorrelationID != "fixed" {
		t.Fatalf("correlation id = %q; want fixed", inv2.CorrelationID)
	}
}

func TestErrors_RetriesIdempotent(t *testing.T) {
	var attempts atomic.Int32
	h := Chain(func(context.Context, *Invocation) (any, error) {
		if attempts.Add(1) <= 2 {
			return nil, &taiga.Error{Kind: taiga.KindTransient, Message: "503"}
		}
		return "ok", nil
	}, Errors(discardLogger(), RetryConfig{MaxRetries: 3, Backoff: time.Millisecond, BackoffCap: 5 * time.Millisecond}))

	v, err := h(context.Background(), &Invocation{Kind: KindTool, Name: "taiga_list_projects", Idempotent: true, ReadOnly: true})
	if err != nil || v != "ok" {
		t.Fatalf("result = %v, %v; want ok, nil", v, err)
	}
	if n := attempts.Load(); n != 3 {
		t.Fatalf("attempts = %d; want 3 (two retries)", n)
	}
}

func TestErrors_NoRetryNonIdempotent(t *testing.T) {
	var attempts atomic.Int32
	h := Chain(func(context.Context, *Invocation) (any, error) {
		attempts.Add(1)
		return nil, &taiga.Error{Kind: taiga.KindTransient, Message: "503"}
	}, Errors(discardLogger(), RetryConfig{MaxRetries: 3, Backoff: time.Millisecond}))

	_, err := h(context.Background(), &Invocation{Kind: KindTool, Name: "taiga_create_project"})
	if taiga.KindOf(err) != taiga.KindTransient {
		t.Fatalf("kind = %v; want transient", taiga.KindOf(err))
	}
	if n := attempts.Load(); n != 1 {
		t.Fatalf("attempts = %d; want 1 (no retry without idempotent hint)", n)
	}
}

func TestErrors_NoRetryPermanentKinds(t *testing.T) {
	for _, kind := range []taiga.Kind{
		taiga.KindInvalidInput, taiga.KindUnauthenticated, taiga.KindPermissionDenied,
		taiga.KindNotFound, taiga.KindConflict, taiga.KindTimeout, taiga.KindInternal,
	} {
		var attempts atomic.Int32
		h := Chain(func(context.Context, *Invocation) (any, error) {
			attempts.Add(1)
			return nil, &taiga.Error{Kind: kind, Message: "x"}
		}, Errors(discardLogger(), RetryConfig{MaxRetries: 3, Backoff: time.Millisecond}))

		h(context.Background(), &Invocation{Idempotent: true})
		if n := attempts.Load(); n != 1 {
			t.Errorf("kind %v: attempts = %d; want 1", kind, n)
		}
	}
}

func TestErrors_RetryAfterHonoured(t *testing.T) {
	var attempts atomic.Int32
	start := time.Now()
	h := Chain(func(context.Context, *Invocation) (any, error) {
		if attempts.Add(1) == 1 {
			return nil, &taiga.Error{Kind: taiga.KindRateLimited, Message: "429", RetryAfter: 50 * time.Millisecond}
		}
		return "ok", nil
	}, Errors(discardLogger(), RetryConfig{MaxRetries: 2, Backoff: time.Millisecond}))

	v, err := h(context.Background(), &Invocation{Idempotent: true})
	if err != nil || v != "ok" {
		t.Fatalf("result = %v, %v", v, err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Fatalf("elapsed = %v; retry-after not honoured", elapsed)
	}
}

func TestErrors_NoRetryLocalRateLimit(t *testing.T) {
	var attempts atomic.Int32
	h := Chain(func(context.Context, *Invocation) (any, error) {
		attempts.Add(1)
		return nil, &taiga.Error{Kind: taiga.KindRateLimited, Message: "local rate limit exceeded before deadline"}
	}, Errors(discardLogger(), RetryConfig{MaxRetries: 3, Backoff: time.Millisecond}))

	_, err := h(context.Background(), &Invocation{Idempotent: true})
	if taiga.KindOf(err) != taiga.KindRateLimited {
		t.Fatalf("kind = %v; want rate_limited", taiga.KindOf(err))
	}
	if n := attempts.Load(); n != 1 {
		t.Fatalf("attempts = %d; want 1 (no retry-after, no retry)", n)
	}
}

func TestErrors_DeadlineStopsRetries(t *testing.T) {
	h := Chain(func(context.Context, *Invocation) (any, error) {
		return nil, &taiga.Error{Kind: taiga.KindTransient, Message: "503"}
	}, Errors(discardLogger(), RetryConfig{MaxRetries: 10, Backoff: 100 * time.Millisecond}))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := h(ctx, &Invocation{Idempotent: true})
	if taiga.KindOf(err) != taiga.KindTimeout {
		t.Fatalf("kind = %v; want timeout", taiga.KindOf(err))
	}
}

func TestErrors_PanicBecomesInternal(t *testing.T) {
	h := Chain(func(context.Context, *Invocation) (any, error) {
		panic("boom")
	}, Errors(discardLogger(), RetryConfig{}))

	_, err := h(context.Background(), &Invocation{})
	if taiga.KindOf(err) != taiga.KindInternal {
		t.Fatalf("kind = %v; want internal", taiga.KindOf(err))
	}
}

func TestErrors_ProductionMasksDetail(t *testing.T) {
	inner := errors.New("sql: connection string user=admin")
	h := Chain(func(context.Context, *Invocation) (any, error) {
		return nil, &taiga.Error{Kind: taiga.KindInternal, Message: "exploded", Detail: "stack", Err: inner}
	}, Errors(discardLogger(), RetryConfig{Production: true}))

	_, err := h(context.Background(), &Invocation{})
	if err == nil {
		t.Fatal("expected error")
	}
	if msg := err.Error(); strings.Contains(msg, "exploded") || strings.Contains(msg, "stack") {
		t.Fatalf("production error leaks detail: %q", msg)
	}
}

func TestErrors_ProductionLogsFullDetail(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := Chain(func(context.Context, *Invocation) (any, error) {
		return nil, &taiga.Error{Kind: taiga.KindInternal, Message: "exploded", Detail: "stack"}
	}, Errors(logger, RetryConfig{Production: true}))

	_, err := h(context.Background(), &Invocation{Kind: KindTool, Name: "t"})
	if strings.Contains(err.Error(), "exploded") {
		t.Fatalf("production error leaks detail: %q", err.Error())
	}
	if out := buf.String(); !strings.Contains(out, "exploded") {
		t.Fatalf("log record lost the unmasked detail: %s", out)
	}
}

func TestDeadline_InstallsBudget(t *testing.T) {
	h := Chain(func(ctx context.Context, _ *Invocation) (any, error) {
		dl, ok := ctx.Deadline()
		if !ok {
			t.Fatal("no deadline on invocation context")
		}
		if until := time.Until(dl); until > time.Second {
			t.Fatalf("deadline %v out; want <= 1s", until)
		}
		return nil, nil
	}, Deadline(time.Second))

	h(context.Background(), &Invocation{})
}

func TestDeadline_KeepsEarlierDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	h := Chain(func(ctx context.Context, _ *Invocation) (any, error) {
		dl, _ := ctx.Deadline()
		if time.Until(dl) > 10*time.Millisecond {
			t.Fatalf("earlier caller deadline replaced: %v out", time.Until(dl))
		}
		return nil, nil
	}, Deadline(time.Hour))

	h(ctx, &Invocation{})
}

func TestDeadline_BoundsRateLimitWait(t *testing.T) {
	h := Chain(func(context.Context, *Invocation) (any, error) {
		return nil, nil
	}, Deadline(50*time.Millisecond), RateLimit(0.001, 1))

	if _, err := h(context.Background(), &Invocation{}); err != nil {
		t.Fatalf("first call must use the burst token: %v", err)
	}

	start := time.Now()
	_, err := h(context.Background(), &Invocation{})
	if taiga.KindOf(err) != taiga.KindRateLimited {
		t.Fatalf("kind = %v; want rate_limited", taiga.KindOf(err))
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("limiter wait unbounded: blocked %v", elapsed)
	}
}

func TestRateLimit_Boundedness(t *testing.T) {
	var done atomic.Int32
	h := Chain(func(context.Context, *Invocation) (any, error) {
		done.Add(1)
		return nil, nil
	}, RateLimit(5, 5))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	var wg sync.WaitGroup
	var denied atomic.Int32
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := h(ctx, &Invocation{}); err != nil {
				if taiga.KindOf(err) != taiga.KindRateLimited {
					t.Errorf("kind = %v; want rate_limited", taiga.KindOf(err))
				}
				denied.Add(1)
			}
		}()
	}
	wg.Wait()

	// burst 5 + ~1/200ms refill: nowhere near 20 completions.
	if n := done.Load(); n > 8 {
		t.Fatalf("completed = %d; bucket not enforced", n)
	}
	if done.Load()+denied.Load() != 20 {
		t.Fatalf("completed %d + denied %d != 20", done.Load(), denied.Load())
	}
}

func TestTiming_SetsDuration(t *testing.T) {
	h := Chain(func(context.Context, *Invocation) (any, error) {
		time.Sleep(10 * time.Millisecond)
		return nil, nil
	}, Timing())

	inv := &Invocation{}
	h(context.Background(), inv)
	if inv.Duration < 10*time.Millisecond {
		t.Fatalf("Duration = %v; want >= 10ms", inv.Duration)
	}
	if inv.Start.IsZero() {
		t.Fatal("Start not recorded")
	}
}

func TestTiming_NeverSwallowsErrors(t *testing.T) {
	want := errors.New("inner")
	h := Chain(func(context.Context, *Invocation) (any, error) {
		return nil, want
	}, Timing())

	if _, err := h(context.Background(), &Invocation{}); !errors.Is(err, want) {
		t.Fatalf("err = %v; want inner", err)
	}
}

func TestLogging_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := Chain(func(context.Context, *Invocation) (any, error) {
		return nil, nil
	}, Timing(), Logging(logger, []string{"hunter2"}))

	inv := &Invocation{
		Kind: KindTool,
		Name: "taiga_auth_login",
		Args: map[string]any{
			"username": "alice",
			"password": "hunter2",
			"note":     "my password is hunter2",
		},
		CorrelationID: "cid-1",
	}
	h(context.Background(), inv)

	out := buf.String()
	if strings.Contains(out, "hunter2") {
		t.Fatalf("secret leaked into logs: %s", out)
	}
	if !strings.Contains(out, "alice") {
		t.Fatalf("non-sensitive arg missing from logs: %s", out)
	}
	if !strings.Contains(out, "cid-1") {
		t.Fatal("correlation id missing from logs")
	}
	if !strings.Contains(out, "invocation start") || !strings.Contains(out, "invocation end") {
		t.Fatal("expected one start and one end record")
	}
}

func TestSummarizeArgs_SensitiveFieldNames(t *testing.T) {
	got := summarizeArgs(map[string]any{
		"auth_token": "tok",
		"project":    7,
	}, nil)
	if strings.Contains(got, "tok") {
		t.Fatalf("token value leaked: %s", got)
	}
	if !strings.Contains(got, "project=7") {
		t.Fatalf("summary = %s", got)
	}
}

func TestSummarizeArgs_Truncation(t *testing.T) {
	long := strings.Repeat("x", 500)
	got := summarizeArgs(map[string]any{"description": long}, nil)
	if len(got) > 200 {
		t.Fatalf("summary not truncated: %d bytes", len(got))
	}
}
