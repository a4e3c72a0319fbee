package indicator

import (
	"fmt"
	"time"

	"github.com/moznion/go-optional"
	"github.com/quantgrid/ta-engine/internal/types"
)

// barsFromCloses builds a bar series from close prices only, one minute
// apart. High/low/volume are left absent.
func barsFromCloses(closes []float64) []types.Bar {
	start := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)
	bars := make([]types.Bar, 0, len(closes))

	for i, close := range closes {
		bars = append(bars, types.Bar{
			Id:     fmt.Sprintf("bar-%d", i),
			Symbol: "TEST",
			Time:   start.Add(time.Duration(i) * time.Minute),
			Open:   close,
			Close:  close,
			High:   optional.None[float64](),
			Low:    optional.None[float64](),
			Volume: optional.None[float64](),
		})
	}

	return bars
}

// ohlcv is one row of a full test series.
type ohlcv struct {
	high, low, close, volume float64
}

// barsFromOHLCV builds a bar series with all optional fields present.
func barsFromOHLCV(rows []ohlcv) []types.Bar {
	start := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)
	bars := make([]types.Bar, 0, len(rows))

	for i, row := range rows {
		bars = append(bars, types.Bar{
			Id:     fmt.Sprintf("bar-%d", i),
			Symbol: "TEST",
			Time:   start.Add(time.Duration(i) * time.Minute),
			Open:   row.close,
			Close:  row.close,
			High:   optional.Some(row.high),
			Low:    optional.Some(row.low),
			Volume: optional.Some(row.volume),
		})
	}

	return bars
}

// runAll feeds every bar through the indicator and returns all points.
func runAll(ind Indicator, bars []types.Bar) ([]Point, error) {
	points := make([]Point, 0, len(bars))

	for _, bar := range bars {
		point, err := ind.Update(bar)
		if err != nil {
			return nil, err
		}

		points = append(points, point)
	}

	return points, nil
}
