package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/quantgrid/ta-engine/internal/series"
	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/quantgrid/ta-engine/pkg/errors"
)

// MACrossover represents the moving-average crossover indicator: a short
// and a long SMA over the close price. A buy is emitted on the bar where
// the short average crosses above the long one, a sell on the bar where it
// crosses below.
type MACrossover struct {
	shortPeriod int
	longPeriod  int

	short     *series.SMA
	long      *series.SMA
	prevShort optional.Option[float64]
	prevLong  optional.Option[float64]
}

// NewMACrossover creates a new moving-average crossover indicator.
func NewMACrossover(shortPeriod, longPeriod int) (*MACrossover, error) {
	if shortPeriod < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "crossover short period must be a positive integer, got %d", shortPeriod)
	}

	if longPeriod < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "crossover long period must be a positive integer, got %d", longPeriod)
	}

	if shortPeriod >= longPeriod {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "crossover short period %d must be shorter than long period %d", shortPeriod, longPeriod)
	}

	short, err := series.NewSMA(shortPeriod)
	if err != nil {
		return nil, err
	}

	long, err := series.NewSMA(longPeriod)
	if err != nil {
		return nil, err
	}

	return &MACrossover{
		shortPeriod: shortPeriod,
		longPeriod:  longPeriod,
		short:       short,
		long:        long,
		prevShort:   optional.None[float64](),
		prevLong:    optional.None[float64](),
	}, nil
}

// Name returns the name of the indicator.
func (c *MACrossover) Name() types.IndicatorType {
	return types.IndicatorTypeMACrossover
}

// Fields returns the value columns the indicator produces.
func (c *MACrossover) Fields() []types.Field {
	return []types.Field{types.FieldShortMA, types.FieldLongMA}
}

// WarmUp returns the warm-up of the long average; the short average column
// appears earlier.
func (c *MACrossover) WarmUp() int {
	return c.longPeriod - 1
}

// Update consumes the next bar.
func (c *MACrossover) Update(bar types.Bar) (Point, error) {
	shortValue := c.short.Push(bar.Close)
	longValue := c.long.Push(bar.Close)

	signal := types.SignalTypeNeutral

	if shortValue.IsSome() && longValue.IsSome() &&
		c.prevShort.IsSome() && c.prevLong.IsSome() {
		short, long := shortValue.Unwrap(), longValue.Unwrap()
		prevShort, prevLong := c.prevShort.Unwrap(), c.prevLong.Unwrap()

		if prevShort <= prevLong && short > long {
			signal = types.SignalTypeBuy
		} else if prevShort >= prevLong && short < long {
			signal = types.SignalTypeSell
		}
	}

	c.prevShort = shortValue
	c.prevLong = longValue

	return Point{
		Values: map[types.Field]optional.Option[float64]{
			types.FieldShortMA: shortValue,
			types.FieldLongMA:  longValue,
		},
		Signal: signal,
	}, nil
}

// Reset discards all accumulated state.
func (c *MACrossover) Reset() {
	c.short.Reset()
	c.long.Reset()
	c.prevShort = optional.None[float64]()
	c.prevLong = optional.None[float64]()
}
