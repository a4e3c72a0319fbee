package series

import (
	"github.com/moznion/go-optional"
	"github.com/quantgrid/ta-engine/pkg/errors"
)

// SMA is an incremental simple moving average. The first period-1 pushes
// return None; every push after that returns the mean of the trailing
// period values.
type SMA struct {
	period int
	window *Window
}

// NewSMA creates an incremental SMA calculator.
func NewSMA(period int) (*SMA, error) {
	if period < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	return &SMA{
		period: period,
		window: NewWindow(period),
	}, nil
}

// Period returns the configured period.
func (s *SMA) Period() int {
	return s.period
}

// WarmUp returns the number of leading pushes that yield no value.
func (s *SMA) WarmUp() int {
	return s.period - 1
}

// Push feeds one value and returns the current average once the trailing
// window is full.
func (s *SMA) Push(value float64) optional.Option[float64] {
	s.window.Push(value)

	if !s.window.Full() {
		return optional.None[float64]()
	}

	return optional.Some(s.window.Mean())
}

// Reset discards all accumulated state.
func (s *SMA) Reset() {
	s.window.Reset()
}

// SMAValues computes the simple moving average of values over period as a
// batch. The result has length len(values)-period+1; result[0] corresponds
// to input index period-1.
func SMAValues(values []float64, period int) ([]float64, error) {
	if period < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	if period > len(values) {
		return nil, errors.NewInsufficientDataErrorf(period, len(values), "", "insufficient data points for SMA: required %d, got %d", period, len(values))
	}

	sma, err := NewSMA(period)
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(values)-period+1)

	for _, v := range values {
		if value := sma.Push(v); value.IsSome() {
			out = append(out, value.Unwrap())
		}
	}

	return out, nil
}
