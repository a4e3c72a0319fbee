package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/quantgrid/ta-engine/internal/series"
	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/quantgrid/ta-engine/pkg/errors"
)

// RSIMethod selects how average gains and losses are smoothed.
type RSIMethod string

const (
	// RSIMethodSimple is a plain trailing-window average of gains and
	// losses. This matches the numbers most charting front ends produce.
	RSIMethodSimple RSIMethod = "simple"
	// RSIMethodWilder applies Wilder's recursive smoothing, consistent
	// with the ATR and ADX implementations.
	RSIMethodWilder RSIMethod = "wilder"
)

// RSI represents the Relative Strength Index indicator.
type RSI struct {
	period         int
	lowerThreshold float64
	upperThreshold float64
	method         RSIMethod

	prevClose  optional.Option[float64]
	gainWindow *series.Window
	lossWindow *series.Window
	avgGain    *series.Wilder
	avgLoss    *series.Wilder
}

// NewRSI creates a new RSI indicator. period must be positive; lower and
// upper are the oversold/overbought thresholds.
func NewRSI(period int, lower, upper float64, method RSIMethod) (*RSI, error) {
	if period < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "RSI period must be a positive integer, got %d", period)
	}

	if lower >= upper {
		return nil, errors.Newf(errors.ErrCodeInvalidThreshold, "RSI lower threshold %.2f must be below upper threshold %.2f", lower, upper)
	}

	if method == "" {
		method = RSIMethodSimple
	}

	if method != RSIMethodSimple && method != RSIMethodWilder {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unknown RSI method %q", method)
	}

	avgGain, err := series.NewWilder(period)
	if err != nil {
		return nil, err
	}

	avgLoss, err := series.NewWilder(period)
	if err != nil {
		return nil, err
	}

	return &RSI{
		period:         period,
		lowerThreshold: lower,
		upperThreshold: upper,
		method:         method,
		prevClose:      optional.None[float64](),
		gainWindow:     series.NewWindow(period),
		lossWindow:     series.NewWindow(period),
		avgGain:        avgGain,
		avgLoss:        avgLoss,
	}, nil
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Fields returns the value columns the indicator produces.
func (r *RSI) Fields() []types.Field {
	return []types.Field{types.FieldRSI}
}

// WarmUp returns the number of leading bars with no value. RSI needs
// period price changes, so period+1 bars.
func (r *RSI) WarmUp() int {
	return r.period
}

// Update consumes the next bar.
func (r *RSI) Update(bar types.Bar) (Point, error) {
	if r.prevClose.IsNone() {
		r.prevClose = optional.Some(bar.Close)

		return NonePoint(r.Fields()), nil
	}

	change := bar.Close - r.prevClose.Unwrap()
	r.prevClose = optional.Some(bar.Close)

	gain, loss := 0.0, 0.0
	if change > 0 {
		gain = change
	} else {
		loss = -change
	}

	var avgGain, avgLoss optional.Option[float64]

	switch r.method {
	case RSIMethodWilder:
		avgGain = r.avgGain.Push(gain)
		avgLoss = r.avgLoss.Push(loss)
	default:
		r.gainWindow.Push(gain)
		r.lossWindow.Push(loss)

		if r.gainWindow.Full() {
			avgGain = optional.Some(r.gainWindow.Mean())
			avgLoss = optional.Some(r.lossWindow.Mean())
		}
	}

	if avgGain.IsNone() || avgLoss.IsNone() {
		return NonePoint(r.Fields()), nil
	}

	value := rsiValue(avgGain.Unwrap(), avgLoss.Unwrap())

	signal := types.SignalTypeNeutral
	if value > r.upperThreshold {
		signal = types.SignalTypeOverbought
	} else if value < r.lowerThreshold {
		signal = types.SignalTypeOversold
	}

	return Point{
		Values: map[types.Field]optional.Option[float64]{
			types.FieldRSI: optional.Some(value),
		},
		Signal: signal,
	}, nil
}

// Reset discards all accumulated state.
func (r *RSI) Reset() {
	r.prevClose = optional.None[float64]()
	r.gainWindow.Reset()
	r.lossWindow.Reset()
	r.avgGain.Reset()
	r.avgLoss.Reset()
}

// rsiValue computes RSI from average gain and loss. A zero average loss
// saturates to 100 instead of dividing by zero.
func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss

	return 100 - (100 / (1 + rs))
}
