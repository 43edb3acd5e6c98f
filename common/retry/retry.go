package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Policy describes how many times to attempt an operation and how long to
// wait after each failed attempt.
type Policy struct {
	Attempts int
	Delay    func(attempt int) time.Duration // attempt is 1-based

	// Retryable decides whether an error is worth another attempt. Nil retries every error.
	Retryable func(ctx context.Context, err error) bool
}

// Linear waits base*attempt after each failure: base, 2*base, 3*base...
func Linear(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return base * time.Duration(attempt)
	}
}

// Default is 3 attempts with 500ms, 1s linear backoff between them.
var Default = Policy{Attempts: 3, Delay: Linear(500 * time.Millisecond)}

// Do runs fn until it succeeds, the policy is exhausted, or ctx is done.
// The last error is returned wrapped with the attempt count.
func Do(ctx context.Context, p Policy, name string, fn func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(ctx, err) {
			return err
		}
		if attempt == attempts {
			break
		}

		var wait time.Duration
		if p.Delay != nil {
			wait = p.Delay(attempt)
		}
		slog.WarnContext(ctx, "retrying after failure",
			"operation", name,
			"attempt", attempt,
			"backoff", wait,
			"error", err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return fmt.Errorf("%s after %d attempts: %w", name, attempts, err)
}

// Value is Do for operations that produce a result.
func Value[T any](ctx context.Context, p Policy, name string, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := Do(ctx, p, name, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}
