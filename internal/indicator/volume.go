package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/quantgrid/ta-engine/internal/series"
	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/quantgrid/ta-engine/pkg/errors"
)

// Volume represents the volume moving-average indicator. A bar whose
// volume exceeds spikeMultiplier times the average is a spike; a spike on
// a rising close is a buy and on a falling close a sell.
type Volume struct {
	period          int
	spikeMultiplier float64

	volumeMA  *series.SMA
	prevClose optional.Option[float64]
}

// NewVolume creates a new volume indicator.
func NewVolume(period int, spikeMultiplier float64) (*Volume, error) {
	if period < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "volume period must be a positive integer, got %d", period)
	}

	if spikeMultiplier <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidMultiplier, "volume spike multiplier must be positive, got %f", spikeMultiplier)
	}

	volumeMA, err := series.NewSMA(period)
	if err != nil {
		return nil, err
	}

	return &Volume{
		period:          period,
		spikeMultiplier: spikeMultiplier,
		volumeMA:        volumeMA,
		prevClose:       optional.None[float64](),
	}, nil
}

// Name returns the name of the indicator.
func (v *Volume) Name() types.IndicatorType {
	return types.IndicatorTypeVolume
}

// Fields returns the value columns the indicator produces.
func (v *Volume) Fields() []types.Field {
	return []types.Field{types.FieldVolumeMA}
}

// WarmUp returns the number of leading bars with no value.
func (v *Volume) WarmUp() int {
	return v.period - 1
}

// Update consumes the next bar.
func (v *Volume) Update(bar types.Bar) (Point, error) {
	if bar.Volume.IsNone() {
		return Point{}, errors.Newf(errors.ErrCodeMissingField, "volume indicator requires bar volume, missing at %s", bar.Time)
	}

	volume := bar.Volume.Unwrap()
	maValue := v.volumeMA.Push(volume)

	prevClose := v.prevClose
	v.prevClose = optional.Some(bar.Close)

	if maValue.IsNone() {
		return NonePoint(v.Fields()), nil
	}

	signal := types.SignalTypeNeutral

	if volume > v.spikeMultiplier*maValue.Unwrap() && prevClose.IsSome() {
		if bar.Close > prevClose.Unwrap() {
			signal = types.SignalTypeBuy
		} else if bar.Close < prevClose.Unwrap() {
			signal = types.SignalTypeSell
		}
	}

	return Point{
		Values: map[types.Field]optional.Option[float64]{
			types.FieldVolumeMA: maValue,
		},
		Signal: signal,
	}, nil
}

// Reset discards all accumulated state.
func (v *Volume) Reset() {
	v.volumeMA.Reset()
	v.prevClose = optional.None[float64]()
}
