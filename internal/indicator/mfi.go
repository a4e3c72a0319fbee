package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/quantgrid/ta-engine/internal/series"
	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/quantgrid/ta-engine/pkg/errors"
)

// MFI represents the Money Flow Index, a volume-weighted RSI analogue
// built on typical price times volume. Zero negative flow saturates to
// 100; a window with no flow at all reports the neutral 50.
type MFI struct {
	period         int
	lowerThreshold float64
	upperThreshold float64

	prevTypical  optional.Option[float64]
	positiveFlow *series.Window
	negativeFlow *series.Window
}

// NewMFI creates a new Money Flow Index indicator.
func NewMFI(period int, lower, upper float64) (*MFI, error) {
	if period < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "MFI period must be a positive integer, got %d", period)
	}

	if lower >= upper {
		return nil, errors.Newf(errors.ErrCodeInvalidThreshold, "MFI lower threshold %.2f must be below upper threshold %.2f", lower, upper)
	}

	return &MFI{
		period:         period,
		lowerThreshold: lower,
		upperThreshold: upper,
		prevTypical:    optional.None[float64](),
		positiveFlow:   series.NewWindow(period),
		negativeFlow:   series.NewWindow(period),
	}, nil
}

// Name returns the name of the indicator.
func (m *MFI) Name() types.IndicatorType {
	return types.IndicatorTypeMFI
}

// Fields returns the value columns the indicator produces.
func (m *MFI) Fields() []types.Field {
	return []types.Field{types.FieldMFI}
}

// WarmUp returns the number of leading bars with no value. Money flow
// direction needs a previous typical price, so period+1 bars.
func (m *MFI) WarmUp() int {
	return m.period
}

// Update consumes the next bar.
func (m *MFI) Update(bar types.Bar) (Point, error) {
	typical, ok := bar.TypicalPrice()
	if !ok {
		return Point{}, errors.Newf(errors.ErrCodeMissingField, "MFI requires bar high and low, missing at %s", bar.Time)
	}

	if bar.Volume.IsNone() {
		return Point{}, errors.Newf(errors.ErrCodeMissingField, "MFI requires bar volume, missing at %s", bar.Time)
	}

	if m.prevTypical.IsNone() {
		m.prevTypical = optional.Some(typical)

		return NonePoint(m.Fields()), nil
	}

	flow := typical * bar.Volume.Unwrap()

	positive, negative := 0.0, 0.0
	if typical > m.prevTypical.Unwrap() {
		positive = flow
	} else if typical < m.prevTypical.Unwrap() {
		negative = flow
	}

	m.prevTypical = optional.Some(typical)
	m.positiveFlow.Push(positive)
	m.negativeFlow.Push(negative)

	if !m.positiveFlow.Full() {
		return NonePoint(m.Fields()), nil
	}

	value := mfiValue(m.positiveFlow.Sum(), m.negativeFlow.Sum())

	signal := types.SignalTypeNeutral
	if value > m.upperThreshold {
		signal = types.SignalTypeOverbought
	} else if value < m.lowerThreshold {
		signal = types.SignalTypeOversold
	}

	return Point{
		Values: map[types.Field]optional.Option[float64]{
			types.FieldMFI: optional.Some(value),
		},
		Signal: signal,
	}, nil
}

// Reset discards all accumulated state.
func (m *MFI) Reset() {
	m.prevTypical = optional.None[float64]()
	m.positiveFlow.Reset()
	m.negativeFlow.Reset()
}

// mfiValue computes MFI from windowed positive and negative money flow,
// with saturation instead of division by zero.
func mfiValue(positive, negative float64) float64 {
	if negative == 0 {
		if positive == 0 {
			return 50
		}

		return 100
	}

	ratio := positive / negative

	return 100 - (100 / (1 + ratio))
}
