package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/quantgrid/ta-engine/pkg/errors"
)

// PolygonProvider fetches aggregate bars from the Polygon REST API.
type PolygonProvider struct {
	client *polygon.Client
}

func NewPolygonProvider(apiKey string) (*PolygonProvider, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidProvider, "polygon provider requires an API key")
	}

	return &PolygonProvider{
		client: polygon.New(apiKey),
	}, nil
}

func (p *PolygonProvider) FetchBars(ctx context.Context, symbol string, start, end time.Time, interval Interval, onProgress OnFetchProgress) ([]types.Bar, error) {
	multiplier, timespan, err := polygonTimespan(interval)
	if err != nil {
		return nil, err
	}

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: multiplier,
		Timespan:   timespan,
		From:       models.Millis(start),
		To:         models.Millis(end),
	}.WithLimit(50000)

	startMillis := start.UnixMilli()
	endMillis := end.UnixMilli()

	var bars []types.Bar

	iter := p.client.ListAggs(ctx, params)
	for iter.Next() {
		agg := iter.Item()
		barTime := time.Time(agg.Timestamp)

		bars = append(bars, types.Bar{
			Id:     uuid.New().String(),
			Symbol: symbol,
			Time:   barTime,
			Open:   agg.Open,
			Close:  agg.Close,
			High:   optional.Some(agg.High),
			Low:    optional.Some(agg.Low),
			Volume: optional.Some(agg.Volume),
		})

		if onProgress != nil && len(bars)%1000 == 0 {
			onProgress(float64(barTime.UnixMilli()-startMillis), float64(endMillis-startMillis),
				fmt.Sprintf("Downloading %s aggregates from Polygon", symbol))
		}
	}

	if iter.Err() != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, iter.Err(), "failed to list %s aggregates from Polygon", symbol)
	}

	if onProgress != nil {
		onProgress(float64(endMillis-startMillis), float64(endMillis-startMillis),
			fmt.Sprintf("Downloaded %d %s aggregates from Polygon", len(bars), symbol))
	}

	return bars, nil
}
