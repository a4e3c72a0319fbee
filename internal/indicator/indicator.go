package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/quantgrid/ta-engine/internal/types"
)

// Point is the output of one indicator for a single bar: one value per
// field the indicator produces (None during warm-up) and the discrete
// signal derived from those values.
type Point struct {
	Values map[types.Field]optional.Option[float64]
	Signal types.SignalType
}

// NonePoint returns a Point with every field absent and a neutral signal.
func NonePoint(fields []types.Field) Point {
	values := make(map[types.Field]optional.Option[float64], len(fields))
	for _, f := range fields {
		values[f] = optional.None[float64]()
	}

	return Point{
		Values: values,
		Signal: types.SignalTypeNeutral,
	}
}

// Indicator interface defines methods that any technical indicator must implement.
// Indicators are incremental: Update consumes bars one at a time in
// timestamp order and carries minimal running state (rolling windows,
// previous smoothed values). Batch computation over a full history is a
// loop over Update after Reset.
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Fields returns the value columns the indicator produces
	Fields() []types.Field
	// WarmUp returns the number of leading bars with no value
	WarmUp() int
	// Update consumes the next bar and returns the indicator's point for it.
	// It returns an error only for unusable input (a required field such as
	// volume or high/low missing from the bar); insufficient history is the
	// warm-up state, reported as absent values, never as an error.
	Update(bar types.Bar) (Point, error)
	// Reset discards all accumulated state
	Reset()
}
