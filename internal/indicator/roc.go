package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/quantgrid/ta-engine/internal/series"
	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/quantgrid/ta-engine/pkg/errors"
)

// ROC represents the Rate of Change: the percent change of the close
// versus the close period bars earlier.
type ROC struct {
	period int

	closes *series.Window
}

// NewROC creates a new rate-of-change indicator.
func NewROC(period int) (*ROC, error) {
	if period < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "ROC period must be a positive integer, got %d", period)
	}

	return &ROC{
		period: period,
		// period+1 closes span exactly period changes
		closes: series.NewWindow(period + 1),
	}, nil
}

// Name returns the name of the indicator.
func (r *ROC) Name() types.IndicatorType {
	return types.IndicatorTypeROC
}

// Fields returns the value columns the indicator produces.
func (r *ROC) Fields() []types.Field {
	return []types.Field{types.FieldROC}
}

// WarmUp returns the number of leading bars with no value.
func (r *ROC) WarmUp() int {
	return r.period
}

// Update consumes the next bar.
func (r *ROC) Update(bar types.Bar) (Point, error) {
	r.closes.Push(bar.Close)

	if !r.closes.Full() {
		return NonePoint(r.Fields()), nil
	}

	reference := r.closes.Oldest()
	if reference == 0 {
		// Percent change from a zero price is undefined.
		return NonePoint(r.Fields()), nil
	}

	value := 100 * (bar.Close - reference) / reference

	signal := types.SignalTypeNeutral
	if value > 0 {
		signal = types.SignalTypeBuy
	} else if value < 0 {
		signal = types.SignalTypeSell
	}

	return Point{
		Values: map[types.Field]optional.Option[float64]{
			types.FieldROC: optional.Some(value),
		},
		Signal: signal,
	}, nil
}

// Reset discards all accumulated state.
func (r *ROC) Reset() {
	r.closes.Reset()
}
