package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/sapra/internal/service"
)

var (
	// ErrRateLimit marks a 429 from a feed host or the Sheets API.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrMaxRetries wraps the last failure once every attempt is spent.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// RetryableError tells WithRetry whether a failed download or sheet write may
// succeed if repeated.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Permanent marks err as final, such as a missing feed or a malformed URL.
func Permanent(err error) error {
	return &RetryableError{Err: err, Retryable: false}
}

// WithRetry calls fetch until it succeeds or gives up. Plain errors are
// retried; Permanent errors and cancellation end the loop at once. Waits grow
// by opts.Multiplier up to opts.MaxDelay, and a rate limit waits the full
// MaxDelay. Unset options fall back to service.DefaultRetryOptions.
func WithRetry(ctx context.Context, fetch func() error, opts service.RetryOptions) error {
	opts = retryDefaults(opts)
	wait := opts.InitialDelay

	for attempt := 1; ; attempt++ {
		err := fetch()
		if err == nil {
			return nil
		}
		if !shouldRetry(err) {
			return err
		}
		if attempt >= opts.MaxAttempts {
			return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetries, opts.MaxAttempts, err)
		}

		if errors.Is(err, ErrRateLimit) {
			wait = opts.MaxDelay
		}

		slog.Warn("Request failed, retrying",
			"attempt", attempt,
			"max_attempts", opts.MaxAttempts,
			"wait", wait,
			"error", err)

		if err := sleep(ctx, wait); err != nil {
			return err
		}
		wait = min(time.Duration(float64(wait)*opts.Multiplier), opts.MaxDelay)
	}
}

// retryDefaults fills unset fields from service.DefaultRetryOptions. The first
// wait never exceeds MaxDelay.
func retryDefaults(opts service.RetryOptions) service.RetryOptions {
	def := service.DefaultRetryOptions()
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = def.MaxAttempts
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = def.InitialDelay
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = def.MaxDelay
	}
	if opts.Multiplier <= 0 {
		opts.Multiplier = def.Multiplier
	}
	opts.InitialDelay = min(opts.InitialDelay, opts.MaxDelay)
	return opts
}

func shouldRetry(err error) bool {
	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}
	return !errors.Is(err, context.Canceled)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
