package marketdata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/quantgrid/ta-engine/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type CSVTestSuite struct {
	suite.Suite
}

func TestCSVSuite(t *testing.T) {
	suite.Run(t, new(CSVTestSuite))
}

func (suite *CSVTestSuite) sampleBars() []types.Bar {
	start := time.Date(2024, 5, 6, 14, 30, 0, 0, time.UTC)

	return []types.Bar{
		{
			Id:     "bar-0",
			Symbol: "AAPL",
			Time:   start,
			Open:   187.5,
			Close:  188.25,
			High:   optional.Some(188.9),
			Low:    optional.Some(187.1),
			Volume: optional.Some(1_250_000.0),
		},
		{
			Id:     "bar-1",
			Symbol: "AAPL",
			Time:   start.Add(time.Minute),
			Open:   188.25,
			Close:  188.0,
			High:   optional.None[float64](),
			Low:    optional.None[float64](),
			Volume: optional.None[float64](),
		},
	}
}

func (suite *CSVTestSuite) TestWriteReadRoundTrip() {
	path := filepath.Join(suite.T().TempDir(), "bars.csv")
	bars := suite.sampleBars()

	suite.Require().NoError(WriteBars(path, bars))

	got, err := ReadBars(path)
	suite.Require().NoError(err)
	suite.Equal(bars, got)
}

func (suite *CSVTestSuite) TestReadFillsMissingIds() {
	path := filepath.Join(suite.T().TempDir(), "bars.csv")
	content := strings.Join([]string{
		"id,symbol,time,open,high,low,close,volume",
		",AAPL,2024-05-06T14:30:00Z,187.5,188.9,187.1,188.25,1250000",
	}, "\n") + "\n"
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o644))

	bars, err := ReadBars(path)
	suite.Require().NoError(err)
	suite.Require().Len(bars, 1)
	suite.NotEmpty(bars[0].Id)
	suite.Equal("AAPL", bars[0].Symbol)
}

func (suite *CSVTestSuite) TestReadRejectsBadTimestamp() {
	path := filepath.Join(suite.T().TempDir(), "bars.csv")
	content := strings.Join([]string{
		"id,symbol,time,open,high,low,close,volume",
		"bar-0,AAPL,05/06/2024,187.5,188.9,187.1,188.25,1250000",
	}, "\n") + "\n"
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o644))

	_, err := ReadBars(path)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataParseFailed))
}

func (suite *CSVTestSuite) TestReadMissingFile() {
	_, err := ReadBars(filepath.Join(suite.T().TempDir(), "absent.csv"))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDataNotFound))
}

func (suite *CSVTestSuite) TestReadEmptyFile() {
	path := filepath.Join(suite.T().TempDir(), "bars.csv")
	suite.Require().NoError(os.WriteFile(path, nil, 0o644))

	_, err := ReadBars(path)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataParseFailed))
}

func (suite *CSVTestSuite) TestWriteEnriched() {
	path := filepath.Join(suite.T().TempDir(), "enriched.csv")
	bars := suite.sampleBars()

	enriched := []types.EnrichedBar{
		{Bar: bars[0]},
		{Bar: bars[1]},
	}
	enriched[1].RSI = optional.Some(61.53)
	enriched[1].OBV = optional.Some(-1_250_000.0)

	suite.Require().NoError(WriteEnriched(path, enriched))

	data, err := os.ReadFile(path)
	suite.Require().NoError(err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	suite.Require().Len(lines, 3)

	suite.True(strings.HasPrefix(lines[0], "id,symbol,time,open,high,low,close,volume,rsi,macd"))

	// Warm-up row: every indicator cell empty.
	suite.True(strings.HasSuffix(lines[1], strings.Repeat(",", 19)))

	suite.Contains(lines[2], "61.53")
	suite.Contains(lines[2], "-1250000")
}
