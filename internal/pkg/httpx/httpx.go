// Package httpx carries the retry plumbing shared by the generation and
// speech synthesis clients: transient-error classification, Retry-After
// parsing, and jittered backoff.
package httpx

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// HTTPStatusCoder is implemented by client errors that remember the
// upstream status code.
type HTTPStatusCoder interface {
	HTTPStatusCode() int
}

const jitterFraction = 0.2

// IsRetryableHTTPStatus reports whether a retry can help: request timeouts,
// rate limits, and server-side failures.
func IsRetryableHTTPStatus(code int) bool {
	if code == http.StatusRequestTimeout || code == http.StatusTooManyRequests {
		return true
	}
	return code >= 500 && code <= 599
}

// IsRetryableError classifies an upstream call failure. Context expiry
// counts as retryable so a per-attempt deadline does not abort the whole
// call.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var coder HTTPStatusCoder
	if errors.As(err, &coder) {
		return IsRetryableHTTPStatus(coder.HTTPStatusCode())
	}
	return false
}

// RetryAfterDuration picks the next wait: the upstream Retry-After header
// in seconds when present and parseable, the backoff fallback otherwise,
// capped at max.
func RetryAfterDuration(resp *http.Response, fallback, max time.Duration) time.Duration {
	wait := fallback
	if resp != nil {
		if header := strings.TrimSpace(resp.Header.Get("Retry-After")); header != "" {
			if secs, err := strconv.Atoi(header); err == nil && secs > 0 {
				wait = time.Duration(secs) * time.Second
			}
		}
	}
	if max > 0 && wait > max {
		wait = max
	}
	return wait
}

// JitterSleep spreads base by up to ±20% so concurrent category nodes do
// not retry in lockstep.
func JitterSleep(base time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	delta := jitterFraction * float64(base)
	low := float64(base) - delta
	return time.Duration(low + rand.Float64()*2*delta)
}
