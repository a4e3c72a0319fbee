package marketdata

import (
	"time"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/quantgrid/ta-engine/pkg/errors"
)

// Interval is a bar aggregation window, in the compact exchange notation
// ("1m", "15m", "1h", "1d", "1w").
type Interval string

const (
	Interval1m  Interval = "1m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval1h  Interval = "1h"
	Interval4h  Interval = "4h"
	Interval1d  Interval = "1d"
	Interval1w  Interval = "1w"
)

var intervalDurations = map[Interval]time.Duration{
	Interval1m:  time.Minute,
	Interval5m:  5 * time.Minute,
	Interval15m: 15 * time.Minute,
	Interval30m: 30 * time.Minute,
	Interval1h:  time.Hour,
	Interval4h:  4 * time.Hour,
	Interval1d:  24 * time.Hour,
	Interval1w:  7 * 24 * time.Hour,
}

// Duration returns the wall-clock length of one bar at this interval.
func (i Interval) Duration() (time.Duration, error) {
	d, ok := intervalDurations[i]
	if !ok {
		return 0, errors.Newf(errors.ErrCodeInvalidInterval, "unknown interval %q", i)
	}

	return d, nil
}

// Valid reports whether the interval is one of the supported windows.
func (i Interval) Valid() bool {
	_, ok := intervalDurations[i]
	return ok
}

// polygonTimespan maps an interval onto Polygon's multiplier+timespan pair.
func polygonTimespan(interval Interval) (int, models.Timespan, error) {
	switch interval {
	case Interval1m:
		return 1, models.Minute, nil
	case Interval5m:
		return 5, models.Minute, nil
	case Interval15m:
		return 15, models.Minute, nil
	case Interval30m:
		return 30, models.Minute, nil
	case Interval1h:
		return 1, models.Hour, nil
	case Interval4h:
		return 4, models.Hour, nil
	case Interval1d:
		return 1, models.Day, nil
	case Interval1w:
		return 1, models.Week, nil
	default:
		return 0, "", errors.Newf(errors.ErrCodeInvalidInterval, "unsupported interval for Polygon: %q", interval)
	}
}
