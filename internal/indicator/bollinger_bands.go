package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/quantgrid/ta-engine/internal/series"
	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/quantgrid/ta-engine/pkg/errors"
)

// BollingerBands represents the Bollinger Bands indicator: an SMA middle
// band with upper and lower bands a configurable number of standard
// deviations away. A flat window has zero deviation, so all three bands
// collapse onto the middle one.
type BollingerBands struct {
	period     int
	multiplier float64

	window *series.Window
}

// NewBollingerBands creates a new Bollinger Bands indicator.
func NewBollingerBands(period int, multiplier float64) (*BollingerBands, error) {
	if period < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "Bollinger Bands period must be a positive integer, got %d", period)
	}

	if multiplier <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidMultiplier, "Bollinger Bands multiplier must be positive, got %f", multiplier)
	}

	return &BollingerBands{
		period:     period,
		multiplier: multiplier,
		window:     series.NewWindow(period),
	}, nil
}

// Name returns the name of the indicator.
func (bb *BollingerBands) Name() types.IndicatorType {
	return types.IndicatorTypeBollingerBands
}

// Fields returns the value columns the indicator produces.
func (bb *BollingerBands) Fields() []types.Field {
	return []types.Field{types.FieldBollingerUpper, types.FieldBollingerMiddle, types.FieldBollingerLower}
}

// WarmUp returns the number of leading bars with no value.
func (bb *BollingerBands) WarmUp() int {
	return bb.period - 1
}

// Update consumes the next bar.
func (bb *BollingerBands) Update(bar types.Bar) (Point, error) {
	bb.window.Push(bar.Close)

	if !bb.window.Full() {
		return NonePoint(bb.Fields()), nil
	}

	middle := bb.window.Mean()
	stdDev := bb.window.StdDev()
	upper := middle + bb.multiplier*stdDev
	lower := middle - bb.multiplier*stdDev

	signal := types.SignalTypeNeutral
	if bar.Close > upper {
		signal = types.SignalTypeSell
	} else if bar.Close < lower {
		signal = types.SignalTypeBuy
	}

	return Point{
		Values: map[types.Field]optional.Option[float64]{
			types.FieldBollingerUpper:  optional.Some(upper),
			types.FieldBollingerMiddle: optional.Some(middle),
			types.FieldBollingerLower:  optional.Some(lower),
		},
		Signal: signal,
	}, nil
}

// Reset discards all accumulated state.
func (bb *BollingerBands) Reset() {
	bb.window.Reset()
}
