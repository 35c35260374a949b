package taiga

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestKindOf(t *testing.T) {
	err := NewError(KindNotFound, "project %d not found", 42)
	if KindOf(err) != KindNotFound {
		t.Errorf("KindOf = %v; want not_found", KindOf(err))
	}

	wrapped := fmt.Errorf("tool failed: %w", err)
	if KindOf(wrapped) != KindNotFound {
		t.Errorf("KindOf(wrapped) = %v; want not_found", KindOf(wrapped))
	}

	if KindOf(errors.New("plain")) != KindInternal {
		t.Error("unclassified errors should map to internal")
	}
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		kind Kind
		want bool
	}{
		{KindTransient, true},
		{KindRateLimited, true},
		{KindInvalidInput, false},
		{KindUnauthenticated, false},
		{KindPermissionDenied, false},
		{KindNotFound, false},
		{KindConflict, false},
		{KindTimeout, false},
		{KindInternal, false},
	}
	for _, tc := range cases {
		if got := Retryable(&Error{Kind: tc.kind}); got != tc.want {
			t.Errorf("Retryable(%v) = %v; want %v", tc.kind, got, tc.want)
		}
	}
}

func TestErrorFromStatus_Body(t *testing.T) {
	body := []byte(`{"_error_message":"wrong credentials"}`)
	err := errorFromStatus(http.StatusUnauthorized, body, http.Header{})
	if err.Kind != KindUnauthenticated || err.Message != "wrong credentials" {
		t.Errorf("err = %+v", err)
	}
}

func TestErrorFromStatus_FieldDetail(t *testing.T) {
	body := []byte(`{"subject":["This field is required."]}`)
	err := errorFromStatus(http.StatusUnprocessableEntity, body, http.Header{})
	if err.Kind != KindInvalidInput {
		t.Errorf("kind = %v", err.Kind)
	}
	if err.Detail != "subject: This field is required." {
		t.Errorf("detail = %q", err.Detail)
	}
}

func TestErrorFromStatus_RetryAfter(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", "7")
	err := errorFromStatus(http.StatusTooManyRequests, nil, h)
	if err.Kind != KindRateLimited || err.RetryAfter != 7*time.Second {
		t.Errorf("err = %+v", err)
	}

	// Missing header: zero retry-after, normal backoff applies.
	err = errorFromStatus(http.StatusTooManyRequests, nil, http.Header{})
	if err.RetryAfter != 0 {
		t.Errorf("RetryAfter = %v; want 0", err.RetryAfter)
	}
}

func TestParseRetryAfter_Garbage(t *testing.T) {
	for _, v := range []string{"", "abc", "-5", "Wed, 21 Oct 2015 07:28:00 GMT"} {
		if got := parseRetryAfter(v); got != 0 {
			t.Errorf("parseRetryAfter(%q) = %v; want 0", v, got)
		}
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &Error{Kind: KindTransient, Message: "upstream", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should see through Error")
	}
}
