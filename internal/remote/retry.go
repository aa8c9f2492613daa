package remote

import (
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// #region constants

const maxRetries = 2 // max 2 retries = 3 total attempts

// #endregion

// #region policy

// RetryPolicy decides whether a failed call is attempted again.
type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration // wait between attempts
}

// DefaultRetryPolicy retries transient failures twice.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: maxRetries, Backoff: 100 * time.Millisecond}
}

// ShouldRetry reports whether to try again after err. attempts counts every
// call made so far, including the one that returned err.
func (p RetryPolicy) ShouldRetry(err error, attempts int) bool {
	if err == nil || attempts > p.MaxRetries {
		return false
	}
	switch status.Code(err) {
	case codes.Unavailable, codes.ResourceExhausted:
		return true
	}
	return false
}

// #endregion
