package series

import (
	"github.com/moznion/go-optional"
	"github.com/quantgrid/ta-engine/pkg/errors"
)

// Wilder is an incremental Wilder smoothed average: seeded with the
// arithmetic mean of the first period values, then folded as
// avg = (prev*(period-1) + value) / period. It backs ATR, ADX and the
// Wilder RSI variant.
type Wilder struct {
	period int
	count  int
	sum    float64
	prev   optional.Option[float64]
}

// NewWilder creates an incremental Wilder smoothing accumulator.
func NewWilder(period int) (*Wilder, error) {
	if period < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	return &Wilder{
		period: period,
		prev:   optional.None[float64](),
	}, nil
}

// Push feeds one value. The first period-1 pushes return None, the push at
// index period-1 returns the seed mean, later pushes apply the recurrence.
func (w *Wilder) Push(value float64) optional.Option[float64] {
	if w.prev.IsSome() {
		next := (w.prev.Unwrap()*float64(w.period-1) + value) / float64(w.period)
		w.prev = optional.Some(next)

		return w.prev
	}

	w.sum += value
	w.count++

	if w.count < w.period {
		return optional.None[float64]()
	}

	w.prev = optional.Some(w.sum / float64(w.period))

	return w.prev
}

// Value returns the current smoothed value, or None during the seed phase.
func (w *Wilder) Value() optional.Option[float64] {
	return w.prev
}

// Reset discards all accumulated state.
func (w *Wilder) Reset() {
	w.count = 0
	w.sum = 0
	w.prev = optional.None[float64]()
}
