package app

import (
	"math/rand"
	"time"
)

// Default backoff configuration values.
const (
	DefaultBackoffInitial = time.Second
	DefaultBackoffMax     = time.Minute
)

// backoff computes growing delays after consecutive failures.
// It never sleeps itself; the poller folds the delay into its wait.
type backoff struct {
	initial time.Duration
	max     time.Duration
	current time.Duration
	jitter  func() float64
}

func newBackoff(initial, max time.Duration) *backoff {
	return &backoff{
		initial: initial,
		max:     max,
		current: initial,
		jitter:  rand.Float64,
	}
}

// Next returns the current delay with ±20% jitter and doubles the base,
// capped at max.
func (b *backoff) Next() time.Duration {
	j := float64(b.current) * 0.2 * (b.jitter()*2 - 1)
	d := time.Duration(float64(b.current) + j)

	b.current *= 2
	if b.current > b.max {
		b.current = b.max
	}
	return d
}

// Reset goes back to the initial delay.
func (b *backoff) Reset() {
	b.current = b.initial
}

// Current returns the base delay Next will jitter.
func (b *backoff) Current() time.Duration {
	return b.current
}
