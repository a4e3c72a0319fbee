package series

import (
	"github.com/moznion/go-optional"
	"github.com/quantgrid/ta-engine/pkg/errors"
)

// EMA is an incremental exponential moving average. The seed is the SMA of
// the first period values; every later value folds into the recurrence
// ema = value*k + prev*(1-k) with k = 2/(period+1).
type EMA struct {
	period int
	k      float64
	seed   *Window
	prev   optional.Option[float64]
}

// NewEMA creates an incremental EMA calculator.
func NewEMA(period int) (*EMA, error) {
	if period < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	return &EMA{
		period: period,
		k:      2 / float64(period+1),
		seed:   NewWindow(period),
		prev:   optional.None[float64](),
	}, nil
}

// Period returns the configured period.
func (e *EMA) Period() int {
	return e.period
}

// WarmUp returns the number of leading pushes that yield no value.
func (e *EMA) WarmUp() int {
	return e.period - 1
}

// Push feeds one value. The first period-1 pushes return None, the push at
// index period-1 returns the SMA seed, and every push after that applies
// the smoothing recurrence.
func (e *EMA) Push(value float64) optional.Option[float64] {
	if e.prev.IsSome() {
		next := value*e.k + e.prev.Unwrap()*(1-e.k)
		e.prev = optional.Some(next)

		return e.prev
	}

	e.seed.Push(value)

	if !e.seed.Full() {
		return optional.None[float64]()
	}

	e.prev = optional.Some(e.seed.Mean())

	return e.prev
}

// Reset discards all accumulated state.
func (e *EMA) Reset() {
	e.seed.Reset()
	e.prev = optional.None[float64]()
}

// EMAValues computes the exponential moving average of values over period
// as a batch. The result has length len(values)-period+1; result[0] is the
// SMA seed at input index period-1.
func EMAValues(values []float64, period int) ([]float64, error) {
	if period < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	if period > len(values) {
		return nil, errors.NewInsufficientDataErrorf(period, len(values), "", "insufficient data points for EMA: required %d, got %d", period, len(values))
	}

	ema, err := NewEMA(period)
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(values)-period+1)

	for _, v := range values {
		if value := ema.Push(v); value.IsSome() {
			out = append(out, value.Unwrap())
		}
	}

	return out, nil
}
