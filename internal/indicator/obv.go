package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/quantgrid/ta-engine/pkg/errors"
)

// OBV represents On-Balance Volume: a running total that adds the bar's
// volume when the close rises, subtracts it when the close falls and is
// unchanged on a flat close. It has no warm-up; the total is defined from
// the first bar.
type OBV struct {
	prevClose optional.Option[float64]
	prevTotal optional.Option[float64]
	total     float64
}

// NewOBV creates a new OBV indicator.
func NewOBV() *OBV {
	return &OBV{
		prevClose: optional.None[float64](),
		prevTotal: optional.None[float64](),
	}
}

// Name returns the name of the indicator.
func (o *OBV) Name() types.IndicatorType {
	return types.IndicatorTypeOBV
}

// Fields returns the value columns the indicator produces.
func (o *OBV) Fields() []types.Field {
	return []types.Field{types.FieldOBV}
}

// WarmUp returns the number of leading bars with no value.
func (o *OBV) WarmUp() int {
	return 0
}

// Update consumes the next bar.
func (o *OBV) Update(bar types.Bar) (Point, error) {
	if bar.Volume.IsNone() {
		return Point{}, errors.Newf(errors.ErrCodeMissingField, "OBV requires bar volume, missing at %s", bar.Time)
	}

	volume := bar.Volume.Unwrap()

	if o.prevClose.IsSome() {
		if bar.Close > o.prevClose.Unwrap() {
			o.total += volume
		} else if bar.Close < o.prevClose.Unwrap() {
			o.total -= volume
		}
	}

	signal := types.SignalTypeNeutral

	if o.prevTotal.IsSome() {
		if o.total > o.prevTotal.Unwrap() {
			signal = types.SignalTypeBuy
		} else if o.total < o.prevTotal.Unwrap() {
			signal = types.SignalTypeSell
		}
	}

	o.prevClose = optional.Some(bar.Close)
	o.prevTotal = optional.Some(o.total)

	return Point{
		Values: map[types.Field]optional.Option[float64]{
			types.FieldOBV: optional.Some(o.total),
		},
		Signal: signal,
	}, nil
}

// Reset discards all accumulated state.
func (o *OBV) Reset() {
	o.prevClose = optional.None[float64]()
	o.prevTotal = optional.None[float64]()
	o.total = 0
}
