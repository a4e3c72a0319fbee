package marketdata

import (
	"testing"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/quantgrid/ta-engine/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type BinanceTestSuite struct {
	suite.Suite
}

func TestBinanceSuite(t *testing.T) {
	suite.Run(t, new(BinanceTestSuite))
}

func (suite *BinanceTestSuite) TestBarFromKline() {
	openTime := time.Date(2024, 5, 6, 14, 30, 0, 0, time.UTC)
	kline := &binance.Kline{
		OpenTime:  openTime.UnixMilli(),
		CloseTime: openTime.Add(time.Minute).UnixMilli() - 1,
		Open:      "65000.10",
		High:      "65250.00",
		Low:       "64980.55",
		Close:     "65120.75",
		Volume:    "12.3456",
	}

	bar, err := barFromKline("BTCUSDT", kline)
	suite.Require().NoError(err)

	suite.NotEmpty(bar.Id)
	suite.Equal("BTCUSDT", bar.Symbol)
	suite.True(bar.Time.Equal(openTime))
	suite.InDelta(65000.10, bar.Open, 1e-9)
	suite.InDelta(65120.75, bar.Close, 1e-9)
	suite.Require().True(bar.High.IsSome())
	suite.InDelta(65250.00, bar.High.Unwrap(), 1e-9)
	suite.Require().True(bar.Low.IsSome())
	suite.InDelta(64980.55, bar.Low.Unwrap(), 1e-9)
	suite.Require().True(bar.Volume.IsSome())
	suite.InDelta(12.3456, bar.Volume.Unwrap(), 1e-9)
}

func (suite *BinanceTestSuite) TestBarFromKlineRejectsMalformedPrice() {
	kline := &binance.Kline{
		OpenTime: time.Now().UnixMilli(),
		Open:     "not-a-number",
		High:     "1",
		Low:      "1",
		Close:    "1",
		Volume:   "1",
	}

	_, err := barFromKline("BTCUSDT", kline)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataParseFailed))
}

func (suite *BinanceTestSuite) TestProviderFactory() {
	provider, err := NewProvider(ProviderBinance, "")
	suite.NoError(err)
	suite.IsType(&BinanceProvider{}, provider)

	provider, err = NewProvider(ProviderPolygon, "test-key")
	suite.NoError(err)
	suite.IsType(&PolygonProvider{}, provider)

	_, err = NewProvider(ProviderPolygon, "")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidProvider))

	_, err = NewProvider("alpaca", "key")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidProvider))
}
