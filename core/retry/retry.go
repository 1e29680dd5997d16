package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrRetriesExhausted is returned when the maximum number of attempts has been reached.
	ErrRetriesExhausted = errors.New("retries exhausted")
)

// Policy is an exponential backoff policy with a bounded number of attempts.
type Policy struct {
	// Attempts is the total number of calls, including the first one.
	Attempts int `mapstructure:"attempts" default:"10"`
	// InitialInterval is the wait before the second attempt.
	InitialInterval time.Duration `mapstructure:"initial_interval" default:"4s"`
	// BackoffFactor multiplies the interval after each failed attempt.
	BackoffFactor float64 `mapstructure:"backoff_factor" default:"2"`
	// MaxInterval caps every single wait.
	MaxInterval time.Duration `mapstructure:"max_interval" default:"10s"`
}

// DefaultPolicy is the download readiness policy: 10 attempts, 4s growing to at most 10s.
func DefaultPolicy() Policy {
	return Policy{
		Attempts:        10,
		InitialInterval: 4 * time.Second,
		BackoffFactor:   2,
		MaxInterval:     10 * time.Second,
	}
}

// Interval returns the wait that follows the given failed attempt (0-based).
func (p Policy) Interval(retryCount int) time.Duration {
	factor := p.BackoffFactor
	if factor <= 0 {
		factor = 1
	}

	interval := float64(p.InitialInterval) * math.Pow(factor, float64(retryCount))

	// Cap the interval at MaxInterval
	if p.MaxInterval > 0 && interval > float64(p.MaxInterval) {
		interval = float64(p.MaxInterval)
	}

	return time.Duration(interval)
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the real Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do calls fn until it succeeds, the attempts are used up, or ctx is canceled.
// fn receives the 1-based attempt number. Errors wrapped with Permanent stop
// the loop immediately. Exhaustion returns ErrRetriesExhausted joined with the last error.
func Do(ctx context.Context, p Policy, sleep Sleeper, fn func(attempt int) error) error {
	if sleep == nil {
		sleep = Sleep
	}
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(attempt)
		if lastErr == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(lastErr, &perm) {
			return perm.err
		}

		if attempt == attempts {
			break
		}

		if err := sleep(ctx, p.Interval(attempt-1)); err != nil {
			return fmt.Errorf("retry canceled after attempt %d: %w", attempt, errors.Join(err, lastErr))
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, attempts, lastErr)
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}
