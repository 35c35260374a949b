package taiga

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Kind classifies an error for retry and surfacing decisions. The
// middleware stack is the only policy point that acts on kinds.
type Kind string

const (
	KindInvalidInput     Kind = "invalid_input"
	KindUnauthenticated  Kind = "unauthenticated"
	KindPermissionDenied Kind = "permission_denied"
	KindNotFound         Kind = "not_found"
	KindConflict         Kind = "conflict"
	KindRateLimited      Kind = "rate_limited"
	KindTimeout          Kind = "timeout"
	KindTransient        Kind = "transient"
	KindInternal         Kind = "internal"
)

// Error is a kind-bearing error. Message is safe to surface to clients;
// Detail may carry field paths or upstream payload fragments and is
// masked in production mode.
type Error struct {
	Kind       Kind
	Message    string
	Detail     string
	RetryAfter time.Duration // from an upstream 429, zero if absent
	Err        error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an Error with a formatted message.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from an error chain. Unclassified errors are
// treated as internal.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindInternal
}

// Retryable reports whether the error kind may be retried at all.
// Idempotency gating happens separately in the middleware.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindTransient, KindRateLimited:
		return true
	default:
		return false
	}
}

// RetryAfterOf returns the upstream retry-after delay, if any.
func RetryAfterOf(err error) time.Duration {
	var te *Error
	if errors.As(err, &te) {
		return te.RetryAfter
	}
	return 0
}

// errorFromStatus maps an upstream HTTP response to a kind-bearing error.
// Taiga error bodies carry a "_error_message" and, for validation
// failures, a per-field detail object.
func errorFromStatus(status int, body []byte, header http.Header) *Error {
	msg, detail := parseErrorBody(body)

	switch status {
	case http.StatusUnauthorized:
		return &Error{Kind: KindUnauthenticated, Message: orDefault(msg, "authentication required"), Detail: detail}
	case http.StatusForbidden:
		return &Error{Kind: KindPermissionDenied, Message: orDefault(msg, "permission denied"), Detail: detail}
	case http.StatusNotFound:
		return &Error{Kind: KindNotFound, Message: orDefault(msg, "not found"), Detail: detail}
	case http.StatusConflict:
		return &Error{Kind: KindConflict, Message: orDefault(msg, "conflict"), Detail: detail}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &Error{Kind: KindInvalidInput, Message: orDefault(msg, "invalid request"), Detail: detail}
	case http.StatusTooManyRequests:
		return &Error{
			Kind:       KindRateLimited,
			Message:    orDefault(msg, "upstream rate limit exceeded"),
			Detail:     detail,
			RetryAfter: parseRetryAfter(header.Get("Retry-After")),
		}
	default:
		if status >= 500 {
			return &Error{Kind: KindTransient, Message: fmt.Sprintf("upstream error (status %d)", status), Detail: detail}
		}
		return &Error{Kind: KindInternal, Message: fmt.Sprintf("unexpected upstream status %d", status), Detail: detail}
	}
}

// parseErrorBody extracts Taiga's error message and any field-level
// validation detail from a JSON error payload.
func parseErrorBody(body []byte) (msg, detail string) {
	if len(body) == 0 {
		return "", ""
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", ""
	}
	if raw, ok := payload["_error_message"]; ok {
		_ = json.Unmarshal(raw, &msg)
	}
	// Remaining keys are field names with error lists, e.g.
	// {"name": ["This field is required."]}.
	var fields []string
	for k, raw := range payload {
		if strings.HasPrefix(k, "_") {
			continue
		}
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
			fields = append(fields, k+": "+list[0])
		}
	}
	if len(fields) > 0 {
		detail = strings.Join(fields, "; ")
	}
	return msg, detail
}

// parseRetryAfter handles the delay-seconds form of the header. The
// HTTP-date form is rare on API responses and treated as absent.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
