// Package retry is the caller-side retry policy for operations that talk to
// the outside world. Components never retry on their own; callers wrap them
// with Do using the configured max_retries and timeout.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sliink/chaincore/internal/model"
)

const (
	defaultInitialInterval = 100 * time.Millisecond
	defaultMaxInterval     = 5 * time.Second
	defaultJitter          = 0.2
)

// Policy bounds how often and how long an operation is attempted
type Policy struct {
	MaxRetries int
	Timeout    time.Duration

	// InitialInterval and MaxInterval bound the exponential delay between
	// attempts. Zero values select 100ms and 5s.
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Jitter          float64
}

// FromConfig builds a policy from the registry configuration
func FromConfig(cfg model.Config) Policy {
	return Policy{
		MaxRetries:      cfg.MaxRetries,
		Timeout:         cfg.Timeout,
		InitialInterval: defaultInitialInterval,
		MaxInterval:     defaultMaxInterval,
		Jitter:          defaultJitter,
	}
}

// backOff builds the delay schedule for one Do call
func (p Policy) backOff(ctx context.Context) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	if b.InitialInterval <= 0 {
		b.InitialInterval = defaultInitialInterval
	}
	b.MaxInterval = p.MaxInterval
	if b.MaxInterval <= 0 {
		b.MaxInterval = defaultMaxInterval
	}
	if b.MaxInterval < b.InitialInterval {
		b.MaxInterval = b.InitialInterval
	}
	b.RandomizationFactor = p.Jitter
	if b.RandomizationFactor < 0 {
		b.RandomizationFactor = 0
	}
	b.Multiplier = 2
	// attempts are bounded by MaxRetries only
	b.MaxElapsedTime = 0
	b.Reset()

	retries := p.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)
}

// Retryable reports whether err is worth another attempt. Caller mistakes and
// lifecycle errors are returned immediately.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var e *model.Error
	if errors.As(err, &e) {
		return e.Code == model.CodeOperationFailed
	}
	return true
}

// Do runs fn until it succeeds, returns a non-retryable error, or MaxRetries
// retries have been spent. Each attempt gets its own Timeout when one is set.
// A cancelled ctx ends the loop with ctx's error.
func Do(ctx context.Context, policy Policy, fn func(ctx context.Context) error) error {
	operation := func() error {
		err := attemptOnce(ctx, policy.Timeout, fn)
		if err != nil && !Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	return backoff.Retry(operation, policy.backOff(ctx))
}

func attemptOnce(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) error) error {
	if timeout <= 0 {
		return fn(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(attemptCtx)
}
