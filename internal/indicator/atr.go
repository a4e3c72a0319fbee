package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/quantgrid/ta-engine/internal/series"
	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/quantgrid/ta-engine/pkg/errors"
)

// ATR represents the Average True Range, a Wilder-smoothed average of the
// true range. It measures volatility magnitude only and always reports a
// neutral signal.
type ATR struct {
	period int

	prevClose optional.Option[float64]
	smoothed  *series.Wilder
}

// NewATR creates a new ATR indicator.
func NewATR(period int) (*ATR, error) {
	if period < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "ATR period must be a positive integer, got %d", period)
	}

	smoothed, err := series.NewWilder(period)
	if err != nil {
		return nil, err
	}

	return &ATR{
		period:    period,
		prevClose: optional.None[float64](),
		smoothed:  smoothed,
	}, nil
}

// Name returns the name of the indicator.
func (a *ATR) Name() types.IndicatorType {
	return types.IndicatorTypeATR
}

// Fields returns the value columns the indicator produces.
func (a *ATR) Fields() []types.Field {
	return []types.Field{types.FieldATR}
}

// WarmUp returns the number of leading bars with no value. True range
// needs a previous close, so the first value appears after period changes.
func (a *ATR) WarmUp() int {
	return a.period
}

// Update consumes the next bar.
func (a *ATR) Update(bar types.Bar) (Point, error) {
	high, low, close, ok := bar.HLC()
	if !ok {
		return Point{}, errors.Newf(errors.ErrCodeMissingField, "ATR requires bar high and low, missing at %s", bar.Time)
	}

	if a.prevClose.IsNone() {
		a.prevClose = optional.Some(close)

		return NonePoint(a.Fields()), nil
	}

	tr := trueRange(high, low, a.prevClose.Unwrap())
	a.prevClose = optional.Some(close)

	value := a.smoothed.Push(tr)
	if value.IsNone() {
		return NonePoint(a.Fields()), nil
	}

	return Point{
		Values: map[types.Field]optional.Option[float64]{
			types.FieldATR: value,
		},
		Signal: types.SignalTypeNeutral,
	}, nil
}

// Reset discards all accumulated state.
func (a *ATR) Reset() {
	a.prevClose = optional.None[float64]()
	a.smoothed.Reset()
}
