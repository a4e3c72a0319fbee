package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/quantgrid/ta-engine/pkg/errors"
)

// VWAP represents the Volume-Weighted Average Price: cumulative typical
// price times volume divided by cumulative volume. It carries no
// directional signal rule and always reports neutral.
type VWAP struct {
	cumulativeTPV    float64
	cumulativeVolume float64
}

// NewVWAP creates a new VWAP indicator.
func NewVWAP() *VWAP {
	return &VWAP{}
}

// Name returns the name of the indicator.
func (v *VWAP) Name() types.IndicatorType {
	return types.IndicatorTypeVWAP
}

// Fields returns the value columns the indicator produces.
func (v *VWAP) Fields() []types.Field {
	return []types.Field{types.FieldVWAP}
}

// WarmUp returns the number of leading bars with no value.
func (v *VWAP) WarmUp() int {
	return 0
}

// Update consumes the next bar.
func (v *VWAP) Update(bar types.Bar) (Point, error) {
	typical, ok := bar.TypicalPrice()
	if !ok {
		return Point{}, errors.Newf(errors.ErrCodeMissingField, "VWAP requires bar high and low, missing at %s", bar.Time)
	}

	if bar.Volume.IsNone() {
		return Point{}, errors.Newf(errors.ErrCodeMissingField, "VWAP requires bar volume, missing at %s", bar.Time)
	}

	volume := bar.Volume.Unwrap()
	v.cumulativeTPV += typical * volume
	v.cumulativeVolume += volume

	// A series with no traded volume yet has no average price.
	value := optional.None[float64]()
	if v.cumulativeVolume > 0 {
		value = optional.Some(v.cumulativeTPV / v.cumulativeVolume)
	}

	return Point{
		Values: map[types.Field]optional.Option[float64]{
			types.FieldVWAP: value,
		},
		Signal: types.SignalTypeNeutral,
	}, nil
}

// Reset discards all accumulated state.
func (v *VWAP) Reset() {
	v.cumulativeTPV = 0
	v.cumulativeVolume = 0
}
