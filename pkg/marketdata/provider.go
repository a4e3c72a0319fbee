package marketdata

import (
	"context"
	"time"

	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/quantgrid/ta-engine/pkg/errors"
)

// ProviderType identifies a market data source.
type ProviderType string

const (
	ProviderPolygon ProviderType = "polygon"
	ProviderBinance ProviderType = "binance"
)

// OnFetchProgress reports download progress. current and total are in
// provider-specific units (typically milliseconds of the requested range).
type OnFetchProgress = func(current float64, total float64, message string)

// Provider fetches historical bars from a market data source.
type Provider interface {
	// FetchBars returns the bars for symbol in [start, end), oldest first,
	// aggregated at the given interval. Cancel the context to abort a
	// long-running download.
	FetchBars(ctx context.Context, symbol string, start, end time.Time, interval Interval, onProgress OnFetchProgress) ([]types.Bar, error)
}

// NewProvider creates a provider by type. Polygon requires an API key;
// Binance uses its public endpoints and ignores the key.
func NewProvider(providerType ProviderType, apiKey string) (Provider, error) {
	switch providerType {
	case ProviderBinance:
		return NewBinanceProvider(), nil
	case ProviderPolygon:
		return NewPolygonProvider(apiKey)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", providerType)
	}
}
