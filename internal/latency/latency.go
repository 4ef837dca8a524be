package latency

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	DefaultMin    = 300 * time.Millisecond
	DefaultSpread = 500 * time.Millisecond
)

// ErrInvalidRange is returned by NewUniform for negative bounds.
var ErrInvalidRange = errors.New("latency range must be non-negative")

// Source yields the duration of the next simulated round trip.
type Source interface {
	Next() time.Duration
}

// Uniform draws durations uniformly from [base, base+spread).
type Uniform struct {
	base   time.Duration
	spread time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewUniform returns a uniform source. A nil rng uses the global generator.
func NewUniform(base, spread time.Duration, rng *rand.Rand) (*Uniform, error) {
	if base < 0 || spread < 0 {
		return nil, ErrInvalidRange
	}
	return &Uniform{base: base, spread: spread, rng: rng}, nil
}

func (u *Uniform) Next() time.Duration {
	if u.spread == 0 {
		return u.base
	}
	var f float64
	if u.rng == nil {
		f = rand.Float64()
	} else {
		u.mu.Lock()
		f = u.rng.Float64()
		u.mu.Unlock()
	}
	return u.base + time.Duration(f*float64(u.spread))
}

// Fixed always yields the same duration.
type Fixed time.Duration

func (f Fixed) Next() time.Duration {
	return time.Duration(f)
}

// Wait blocks for d or until ctx is done, whichever comes first. A non-positive d
// returns immediately unless ctx is already done.
func Wait(ctx context.Context, d time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
