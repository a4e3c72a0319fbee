package indicator

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/quantgrid/ta-engine/internal/series"
	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/quantgrid/ta-engine/pkg/errors"
)

// ADX represents the Average Directional Index, a trend-strength measure
// built from Wilder-smoothed directional movement and true range. Values
// above the threshold mark a strong trend, everything else a weak one.
type ADX struct {
	period    int
	threshold float64

	prevHigh  optional.Option[float64]
	prevLow   optional.Option[float64]
	prevClose optional.Option[float64]

	smoothedTR      *series.Wilder
	smoothedPlusDM  *series.Wilder
	smoothedMinusDM *series.Wilder
	prevADX         optional.Option[float64]
}

// NewADX creates a new ADX indicator.
func NewADX(period int, threshold float64) (*ADX, error) {
	if period < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "ADX period must be a positive integer, got %d", period)
	}

	if threshold <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidThreshold, "ADX threshold must be positive, got %f", threshold)
	}

	smoothedTR, err := series.NewWilder(period)
	if err != nil {
		return nil, err
	}

	smoothedPlusDM, err := series.NewWilder(period)
	if err != nil {
		return nil, err
	}

	smoothedMinusDM, err := series.NewWilder(period)
	if err != nil {
		return nil, err
	}

	return &ADX{
		period:          period,
		threshold:       threshold,
		prevHigh:        optional.None[float64](),
		prevLow:         optional.None[float64](),
		prevClose:       optional.None[float64](),
		smoothedTR:      smoothedTR,
		smoothedPlusDM:  smoothedPlusDM,
		smoothedMinusDM: smoothedMinusDM,
		prevADX:         optional.None[float64](),
	}, nil
}

// Name returns the name of the indicator.
func (a *ADX) Name() types.IndicatorType {
	return types.IndicatorTypeADX
}

// Fields returns the value columns the indicator produces.
func (a *ADX) Fields() []types.Field {
	return []types.Field{types.FieldADX}
}

// WarmUp returns the number of leading bars with no value. Directional
// movement needs a previous bar, so the first value appears after period
// bar-to-bar changes.
func (a *ADX) WarmUp() int {
	return a.period
}

// Update consumes the next bar.
func (a *ADX) Update(bar types.Bar) (Point, error) {
	high, low, close, ok := bar.HLC()
	if !ok {
		return Point{}, errors.Newf(errors.ErrCodeMissingField, "ADX requires bar high and low, missing at %s", bar.Time)
	}

	if a.prevHigh.IsNone() {
		a.prevHigh = optional.Some(high)
		a.prevLow = optional.Some(low)
		a.prevClose = optional.Some(close)

		return NonePoint(a.Fields()), nil
	}

	upMove := high - a.prevHigh.Unwrap()
	downMove := a.prevLow.Unwrap() - low

	plusDM, minusDM := 0.0, 0.0
	if upMove > downMove && upMove > 0 {
		plusDM = upMove
	}

	if downMove > upMove && downMove > 0 {
		minusDM = downMove
	}

	tr := trueRange(high, low, a.prevClose.Unwrap())

	a.prevHigh = optional.Some(high)
	a.prevLow = optional.Some(low)
	a.prevClose = optional.Some(close)

	trValue := a.smoothedTR.Push(tr)
	plusValue := a.smoothedPlusDM.Push(plusDM)
	minusValue := a.smoothedMinusDM.Push(minusDM)

	if trValue.IsNone() || plusValue.IsNone() || minusValue.IsNone() {
		return NonePoint(a.Fields()), nil
	}

	// Flat markets smooth to a zero true range; directional movement is
	// defined as zero there rather than NaN.
	plusDI, minusDI := 0.0, 0.0
	if trValue.Unwrap() != 0 {
		plusDI = 100 * plusValue.Unwrap() / trValue.Unwrap()
		minusDI = 100 * minusValue.Unwrap() / trValue.Unwrap()
	}

	dx := 0.0
	if plusDI+minusDI != 0 {
		dx = 100 * math.Abs(plusDI-minusDI) / (plusDI + minusDI)
	}

	adx := dx
	if a.prevADX.IsSome() {
		adx = (a.prevADX.Unwrap()*float64(a.period-1) + dx) / float64(a.period)
	}

	a.prevADX = optional.Some(adx)

	signal := types.SignalTypeWeak
	if adx > a.threshold {
		signal = types.SignalTypeStrong
	}

	return Point{
		Values: map[types.Field]optional.Option[float64]{
			types.FieldADX: optional.Some(adx),
		},
		Signal: signal,
	}, nil
}

// Reset discards all accumulated state.
func (a *ADX) Reset() {
	a.prevHigh = optional.None[float64]()
	a.prevLow = optional.None[float64]()
	a.prevClose = optional.None[float64]()
	a.smoothedTR.Reset()
	a.smoothedPlusDM.Reset()
	a.smoothedMinusDM.Reset()
	a.prevADX = optional.None[float64]()
}

// trueRange is max(high-low, |high-prevClose|, |low-prevClose|).
func trueRange(high, low, prevClose float64) float64 {
	tr := high - low
	if hc := math.Abs(high - prevClose); hc > tr {
		tr = hc
	}

	if lc := math.Abs(low - prevClose); lc > tr {
		tr = lc
	}

	return tr
}
