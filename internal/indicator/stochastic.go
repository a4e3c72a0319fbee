package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/quantgrid/ta-engine/internal/series"
	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/quantgrid/ta-engine/pkg/errors"
)

// Stochastic represents the stochastic oscillator: %K is the position of
// the close inside the trailing high-low range, %D is an SMA of %K. A zero
// trading range pins %K to 50.
type Stochastic struct {
	period         int
	signalPeriod   int
	lowerThreshold float64
	upperThreshold float64

	highs *series.Window
	lows  *series.Window
	d     *series.SMA
}

// NewStochastic creates a new stochastic oscillator.
func NewStochastic(period, signalPeriod int, lower, upper float64) (*Stochastic, error) {
	if period < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "stochastic period must be a positive integer, got %d", period)
	}

	if signalPeriod < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "stochastic signal period must be a positive integer, got %d", signalPeriod)
	}

	if lower >= upper {
		return nil, errors.Newf(errors.ErrCodeInvalidThreshold, "stochastic lower threshold %.2f must be below upper threshold %.2f", lower, upper)
	}

	d, err := series.NewSMA(signalPeriod)
	if err != nil {
		return nil, err
	}

	return &Stochastic{
		period:         period,
		signalPeriod:   signalPeriod,
		lowerThreshold: lower,
		upperThreshold: upper,
		highs:          series.NewWindow(period),
		lows:           series.NewWindow(period),
		d:              d,
	}, nil
}

// Name returns the name of the indicator.
func (s *Stochastic) Name() types.IndicatorType {
	return types.IndicatorTypeStochastic
}

// Fields returns the value columns the indicator produces.
func (s *Stochastic) Fields() []types.Field {
	return []types.Field{types.FieldStochasticK, types.FieldStochasticD}
}

// WarmUp returns the warm-up of %K; %D follows signalPeriod-1 bars later.
func (s *Stochastic) WarmUp() int {
	return s.period - 1
}

// Update consumes the next bar.
func (s *Stochastic) Update(bar types.Bar) (Point, error) {
	high, low, close, ok := bar.HLC()
	if !ok {
		return Point{}, errors.Newf(errors.ErrCodeMissingField, "stochastic requires bar high and low, missing at %s", bar.Time)
	}

	s.highs.Push(high)
	s.lows.Push(low)

	if !s.highs.Full() {
		return NonePoint(s.Fields()), nil
	}

	highestHigh := s.highs.Max()
	lowestLow := s.lows.Min()

	// A zero range has no defined position; 50 is the documented fallback.
	k := 50.0
	if highestHigh != lowestLow {
		k = 100 * (close - lowestLow) / (highestHigh - lowestLow)
	}

	dValue := s.d.Push(k)

	signal := types.SignalTypeNeutral
	if k > s.upperThreshold {
		signal = types.SignalTypeOverbought
	} else if k < s.lowerThreshold {
		signal = types.SignalTypeOversold
	}

	return Point{
		Values: map[types.Field]optional.Option[float64]{
			types.FieldStochasticK: optional.Some(k),
			types.FieldStochasticD: dValue,
		},
		Signal: signal,
	}, nil
}

// Reset discards all accumulated state.
func (s *Stochastic) Reset() {
	s.highs.Reset()
	s.lows.Reset()
	s.d.Reset()
}
