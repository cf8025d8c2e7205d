// Package service defines the contracts shared between the dashboard's
// components.
package service

import "time"

// Progress receives feed loading progress. Implementations must be safe for
// concurrent use; one Done call arrives per completed feed.
type Progress interface {
	Start(total int)
	Done(feed string, err error)
	Finish()
}

// NopProgress discards progress updates.
type NopProgress struct{}

// Start implements Progress.
func (NopProgress) Start(int) {}

// Done implements Progress.
func (NopProgress) Done(string, error) {}

// Finish implements Progress.
func (NopProgress) Finish() {}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultRetryOptions returns the retry policy used for feed downloads.
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxAttempts:  3,
		InitialDelay: 250 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
	}
}
