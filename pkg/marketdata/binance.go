package marketdata

import (
	"context"
	"fmt"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/quantgrid/ta-engine/pkg/errors"
	"github.com/shopspring/decimal"
)

// Binance caps klines responses at this many rows per request.
const binancePageLimit = 500

// BinanceProvider fetches klines from Binance's public REST API.
type BinanceProvider struct {
	client *binance.Client
}

func NewBinanceProvider() *BinanceProvider {
	return &BinanceProvider{
		client: binance.NewClient("", ""),
	}
}

// FetchBars pages through the klines endpoint until the requested range is
// covered. Binance timestamps are in milliseconds; the open time of each
// kline becomes the bar timestamp.
func (p *BinanceProvider) FetchBars(ctx context.Context, symbol string, start, end time.Time, interval Interval, onProgress OnFetchProgress) ([]types.Bar, error) {
	if !interval.Valid() {
		return nil, errors.Newf(errors.ErrCodeInvalidInterval, "unsupported interval for Binance: %q", interval)
	}

	startMillis := start.UnixMilli()
	endMillis := end.UnixMilli()
	currentStart := startMillis

	var bars []types.Bar

	for {
		klines, err := p.client.NewKlinesService().
			Symbol(symbol).
			Interval(string(interval)).
			StartTime(currentStart).
			EndTime(endMillis).
			Limit(binancePageLimit).
			Do(ctx)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to fetch %s klines from Binance", symbol)
		}

		if onProgress != nil {
			onProgress(float64(currentStart-startMillis), float64(endMillis-startMillis),
				fmt.Sprintf("Downloading %s klines from Binance", symbol))
		}

		for _, kline := range klines {
			bar, err := barFromKline(symbol, kline)
			if err != nil {
				return nil, err
			}

			bars = append(bars, bar)
		}

		// Last page: Binance returns fewer rows than the page limit.
		if len(klines) < binancePageLimit {
			break
		}

		// Resume just past the close of the last kline to avoid duplicates.
		currentStart = klines[len(klines)-1].CloseTime + 1
		if currentStart >= endMillis {
			break
		}
	}

	if onProgress != nil {
		onProgress(float64(endMillis-startMillis), float64(endMillis-startMillis),
			fmt.Sprintf("Downloaded %d %s klines from Binance", len(bars), symbol))
	}

	return bars, nil
}

// barFromKline converts one Binance kline into a Bar. Binance serializes
// prices as decimal strings; they are parsed exactly before the float
// conversion so malformed payloads fail loudly instead of becoming zeros.
func barFromKline(symbol string, kline *binance.Kline) (types.Bar, error) {
	open, err := parsePrice(kline.Open)
	if err != nil {
		return types.Bar{}, err
	}

	high, err := parsePrice(kline.High)
	if err != nil {
		return types.Bar{}, err
	}

	low, err := parsePrice(kline.Low)
	if err != nil {
		return types.Bar{}, err
	}

	closePrice, err := parsePrice(kline.Close)
	if err != nil {
		return types.Bar{}, err
	}

	volume, err := parsePrice(kline.Volume)
	if err != nil {
		return types.Bar{}, err
	}

	return types.Bar{
		Id:     uuid.New().String(),
		Symbol: symbol,
		Time:   time.UnixMilli(kline.OpenTime),
		Open:   open,
		Close:  closePrice,
		High:   optional.Some(high),
		Low:    optional.Some(low),
		Volume: optional.Some(volume),
	}, nil
}

func parsePrice(value string) (float64, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "failed to parse Binance price %q", value)
	}

	return d.InexactFloat64(), nil
}
