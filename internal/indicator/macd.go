package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/quantgrid/ta-engine/internal/series"
	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/quantgrid/ta-engine/pkg/errors"
)

// MACD represents the Moving Average Convergence Divergence indicator.
// It produces three columns: the MACD line (fast EMA minus slow EMA), the
// signal line (EMA of the MACD line) and the histogram (their difference).
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int

	fast          *series.EMA
	slow          *series.EMA
	signal        *series.EMA
	prevHistogram optional.Option[float64]
}

// NewMACD creates a new MACD indicator.
func NewMACD(fastPeriod, slowPeriod, signalPeriod int) (*MACD, error) {
	if fastPeriod < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "MACD fast period must be a positive integer, got %d", fastPeriod)
	}

	if slowPeriod < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "MACD slow period must be a positive integer, got %d", slowPeriod)
	}

	if signalPeriod < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "MACD signal period must be a positive integer, got %d", signalPeriod)
	}

	if fastPeriod >= slowPeriod {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "MACD fast period %d must be shorter than slow period %d", fastPeriod, slowPeriod)
	}

	fast, err := series.NewEMA(fastPeriod)
	if err != nil {
		return nil, err
	}

	slow, err := series.NewEMA(slowPeriod)
	if err != nil {
		return nil, err
	}

	signal, err := series.NewEMA(signalPeriod)
	if err != nil {
		return nil, err
	}

	return &MACD{
		fastPeriod:    fastPeriod,
		slowPeriod:    slowPeriod,
		signalPeriod:  signalPeriod,
		fast:          fast,
		slow:          slow,
		signal:        signal,
		prevHistogram: optional.None[float64](),
	}, nil
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Fields returns the value columns the indicator produces.
func (m *MACD) Fields() []types.Field {
	return []types.Field{types.FieldMACD, types.FieldMACDSignal, types.FieldMACDHistogram}
}

// WarmUp returns the warm-up of the signal line and histogram, the slowest
// columns: slow EMA warm-up plus signal EMA warm-up. The MACD line itself
// appears signalPeriod-1 bars earlier.
func (m *MACD) WarmUp() int {
	return m.slowPeriod + m.signalPeriod - 2
}

// Update consumes the next bar.
func (m *MACD) Update(bar types.Bar) (Point, error) {
	fastValue := m.fast.Push(bar.Close)
	slowValue := m.slow.Push(bar.Close)

	if fastValue.IsNone() || slowValue.IsNone() {
		return NonePoint(m.Fields()), nil
	}

	macdValue := fastValue.Unwrap() - slowValue.Unwrap()

	signalValue := m.signal.Push(macdValue)
	if signalValue.IsNone() {
		return Point{
			Values: map[types.Field]optional.Option[float64]{
				types.FieldMACD:          optional.Some(macdValue),
				types.FieldMACDSignal:    optional.None[float64](),
				types.FieldMACDHistogram: optional.None[float64](),
			},
			Signal: types.SignalTypeNeutral,
		}, nil
	}

	histogram := macdValue - signalValue.Unwrap()

	signal := types.SignalTypeNeutral

	if m.prevHistogram.IsSome() {
		prev := m.prevHistogram.Unwrap()
		if prev <= 0 && histogram > 0 {
			signal = types.SignalTypeBuy
		} else if prev >= 0 && histogram < 0 {
			signal = types.SignalTypeSell
		}
	}

	m.prevHistogram = optional.Some(histogram)

	return Point{
		Values: map[types.Field]optional.Option[float64]{
			types.FieldMACD:          optional.Some(macdValue),
			types.FieldMACDSignal:    signalValue,
			types.FieldMACDHistogram: optional.Some(histogram),
		},
		Signal: signal,
	}, nil
}

// Reset discards all accumulated state.
func (m *MACD) Reset() {
	m.fast.Reset()
	m.slow.Reset()
	m.signal.Reset()
	m.prevHistogram = optional.None[float64]()
}
