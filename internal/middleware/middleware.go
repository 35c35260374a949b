// Package middleware implements the invocation pipeline wrapping every
// tool call, resource read, and prompt render: deadline installation,
// error handling with retries, rate limiting, timing, and structured
// logging, composed in that order from outermost to innermost.
package middleware

import (
	"context"
	"time"
)

// Kind identifies what is being invoked.
type Kind string

const (
	KindTool     Kind = "tool"
	KindResource Kind = "resource"
	KindPrompt   Kind = "prompt"
)

// Invocation carries per-call state through the chain. It is created
// for one invocation and discarded after the response.
type Invocation struct {
	Kind          Kind
	Name          string
	Args          map[string]any
	CorrelationID string

	// Hints from the registered descriptor, consulted by the retry
	// logic. Resources and prompts are always read-only idempotent.
	Idempotent bool
	ReadOnly   bool

	// Set by the timing middleware.
	Start    time.Time
	Duration time.Duration
}

// Handler executes the innermost operation of an invocation.
type Handler func(ctx context.Context, inv *Invocation) (any, error)

// Middleware wraps a handler with one concern.
type Middleware func(Handler) Handler

// Chain composes middlewares around a handler. The first middleware is
// outermost: Chain(h, a, b) runs a's entry, b's entry, h, b's exit,
// a's exit.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
