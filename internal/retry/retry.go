// Package retry implements a capped exponential backoff policy for
// transient network failures. Pure classification and aggregation code
// never retries; only the listing adapters invoke this.
package retry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

var (
	// ErrExhausted is returned when all attempts have failed.
	ErrExhausted = errors.New("retry attempts exhausted")
	// ErrCancelled is returned when the context is cancelled mid-retry.
	ErrCancelled = errors.New("retry cancelled")
)

// Policy configures backoff behavior.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration
	// MaxDelay caps the exponential backoff.
	MaxDelay time.Duration
	// Multiplier grows the delay between attempts.
	Multiplier float64
	// Retryable decides whether an error is worth retrying.
	Retryable func(error) bool
}

// DefaultPolicy returns the policy used for member-listing calls.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  5,
		InitialDelay: time.Second,
		MaxDelay:     60 * time.Second,
		Multiplier:   2.0,
		Retryable:    IsTransient,
	}
}

// IsTransient reports whether an error looks like a transient network
// or server-side failure.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var transient *TransientError
	return errors.As(err, &transient)
}

// TransientError marks an error as retryable, e.g. an HTTP 5xx.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return e.Err.Error() }
func (e *TransientError) Unwrap() error { return e.Err }

// Transient wraps err so the policy will retry it.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// Do executes fn under the policy, sleeping with exponential backoff
// between attempts. The context is honored both before each attempt and
// during the backoff sleep.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}
	if p.Multiplier <= 1 {
		p.Multiplier = 2.0
	}
	if p.Retryable == nil {
		p.Retryable = IsTransient
	}

	var lastErr error
	delay := p.InitialDelay

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !p.Retryable(lastErr) {
			return lastErr
		}

		if attempt < p.MaxAttempts {
			if delay > p.MaxDelay && p.MaxDelay > 0 {
				delay = p.MaxDelay
			}
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
			case <-time.After(delay):
			}
			delay = time.Duration(float64(delay) * p.Multiplier)
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrExhausted, p.MaxAttempts, lastErr)
}
