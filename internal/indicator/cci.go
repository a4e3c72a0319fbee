package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/quantgrid/ta-engine/internal/series"
	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/quantgrid/ta-engine/pkg/errors"
)

// cciScale is the conventional 0.015 normalization constant.
const cciScale = 0.015

// CCI represents the Commodity Channel Index: the deviation of the typical
// price from its moving average, normalized by mean absolute deviation.
// A window with zero deviation (flat prices) yields 0.
type CCI struct {
	period         int
	lowerThreshold float64
	upperThreshold float64

	window *series.Window
}

// NewCCI creates a new CCI indicator.
func NewCCI(period int, lower, upper float64) (*CCI, error) {
	if period < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "CCI period must be a positive integer, got %d", period)
	}

	if lower >= upper {
		return nil, errors.Newf(errors.ErrCodeInvalidThreshold, "CCI lower threshold %.2f must be below upper threshold %.2f", lower, upper)
	}

	return &CCI{
		period:         period,
		lowerThreshold: lower,
		upperThreshold: upper,
		window:         series.NewWindow(period),
	}, nil
}

// Name returns the name of the indicator.
func (c *CCI) Name() types.IndicatorType {
	return types.IndicatorTypeCCI
}

// Fields returns the value columns the indicator produces.
func (c *CCI) Fields() []types.Field {
	return []types.Field{types.FieldCCI}
}

// WarmUp returns the number of leading bars with no value.
func (c *CCI) WarmUp() int {
	return c.period - 1
}

// Update consumes the next bar.
func (c *CCI) Update(bar types.Bar) (Point, error) {
	typical, ok := bar.TypicalPrice()
	if !ok {
		return Point{}, errors.Newf(errors.ErrCodeMissingField, "CCI requires bar high and low, missing at %s", bar.Time)
	}

	c.window.Push(typical)

	if !c.window.Full() {
		return NonePoint(c.Fields()), nil
	}

	value := 0.0
	if mad := c.window.MeanAbsDev(); mad != 0 {
		value = (typical - c.window.Mean()) / (cciScale * mad)
	}

	signal := types.SignalTypeNeutral
	if value > c.upperThreshold {
		signal = types.SignalTypeOverbought
	} else if value < c.lowerThreshold {
		signal = types.SignalTypeOversold
	}

	return Point{
		Values: map[types.Field]optional.Option[float64]{
			types.FieldCCI: optional.Some(value),
		},
		Signal: signal,
	}, nil
}

// Reset discards all accumulated state.
func (c *CCI) Reset() {
	c.window.Reset()
}
