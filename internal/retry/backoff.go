package retry

import (
	"math"
	"math/rand"
	"time"
)

// ExponentialBackoff doubles (by default) the delay on every retry, capped at
// a maximum and spread by a jitter factor.
type ExponentialBackoff struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
	maxAttempts  int

	// jitter of 0.1 means +/- 10%
	jitter     float64
	jitterFunc func() float64
}

// BackoffOption is a functional option for configuring ExponentialBackoff.
type BackoffOption func(*ExponentialBackoff)

func WithInitialDelay(d time.Duration) BackoffOption {
	return func(b *ExponentialBackoff) { b.initialDelay = d }
}

func WithMaxDelay(d time.Duration) BackoffOption {
	return func(b *ExponentialBackoff) { b.maxDelay = d }
}

func WithMultiplier(m float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.multiplier = m }
}

// WithJitter sets the jitter factor, clamped to [0, 1].
func WithJitter(j float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.jitter = math.Max(0, math.Min(1, j)) }
}

// WithJitterFunc replaces the random source; it must return values in [0, 1).
func WithJitterFunc(f func() float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.jitterFunc = f }
}

// NewExponentialBackoff creates a strategy tuned for short filesystem
// contention: 50ms, 100ms, 200ms... capped at 2s, with 10% jitter.
func NewExponentialBackoff(maxAttempts int, opts ...BackoffOption) *ExponentialBackoff {
	b := &ExponentialBackoff{
		initialDelay: 50 * time.Millisecond,
		maxDelay:     2 * time.Second,
		multiplier:   2.0,
		maxAttempts:  maxAttempts,
		jitter:       0.1,
		jitterFunc:   rand.Float64,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NextDelay implements BackoffStrategy.
func (b *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	delay := float64(b.initialDelay) * math.Pow(b.multiplier, float64(attempt))
	delay = math.Min(delay, float64(b.maxDelay))

	if b.jitter > 0 && b.jitterFunc != nil {
		offset := (b.jitterFunc() - 0.5) * 2 // [-1, 1)
		delay *= 1 + b.jitter*offset
	}
	return time.Duration(delay)
}

// MaxAttempts implements BackoffStrategy.
func (b *ExponentialBackoff) MaxAttempts() int {
	return b.maxAttempts
}

// NoRetry never retries.
type NoRetry struct{}

func (NoRetry) NextDelay(int) time.Duration { return 0 }
func (NoRetry) MaxAttempts() int            { return 0 }
