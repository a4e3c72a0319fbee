package indicator

import (
	"testing"

	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/stretchr/testify/suite"
)

type ATRTestSuite struct {
	suite.Suite
}

func TestATRSuite(t *testing.T) {
	suite.Run(t, new(ATRTestSuite))
}

func (suite *ATRTestSuite) TestInvalidConfig() {
	_, err := NewATR(0)
	suite.Error(err)
}

func (suite *ATRTestSuite) TestMissingHighLowIsAnError() {
	atr, err := NewATR(3)
	suite.NoError(err)

	_, err = runAll(atr, barsFromCloses([]float64{100}))
	suite.Error(err)
}

func (suite *ATRTestSuite) TestSeedIsMeanTrueRange() {
	atr, err := NewATR(3)
	suite.NoError(err)
	suite.Equal(3, atr.WarmUp())

	rows := []ohlcv{
		{12, 8, 10, 100},  // no TR yet
		{13, 9, 11, 100},  // TR = max(4, |13-10|, |9-10|) = 4
		{15, 11, 14, 100}, // TR = max(4, |15-11|, |11-11|) = 4
		{20, 14, 16, 100}, // TR = max(6, |20-14|, |14-14|) = 6
	}

	points, err := runAll(atr, barsFromOHLCV(rows))
	suite.NoError(err)

	suite.True(points[0].Values[types.FieldATR].IsNone())
	suite.True(points[1].Values[types.FieldATR].IsNone())
	suite.True(points[2].Values[types.FieldATR].IsNone())
	suite.InDelta((4.0+4.0+6.0)/3.0, points[3].Values[types.FieldATR].Unwrap(), 1e-9)
}

func (suite *ATRTestSuite) TestWilderRecurrence() {
	atr, err := NewATR(3)
	suite.NoError(err)

	rows := []ohlcv{
		{12, 8, 10, 100},
		{13, 9, 11, 100},
		{15, 11, 14, 100},
		{20, 14, 16, 100},
		{17, 15, 16, 100}, // TR = max(2, |17-16|, |15-16|) = 2
	}

	points, err := runAll(atr, barsFromOHLCV(rows))
	suite.NoError(err)

	seed := (4.0 + 4.0 + 6.0) / 3.0
	expected := (seed*2 + 2.0) / 3.0
	suite.InDelta(expected, points[4].Values[types.FieldATR].Unwrap(), 1e-9)
}

func (suite *ATRTestSuite) TestGapsWidenTrueRange() {
	atr, err := NewATR(1)
	suite.NoError(err)

	rows := []ohlcv{
		{101, 99, 100, 100},
		{112, 110, 111, 100}, // gap up: TR = |112-100| = 12
	}

	points, err := runAll(atr, barsFromOHLCV(rows))
	suite.NoError(err)
	suite.InDelta(12.0, points[1].Values[types.FieldATR].Unwrap(), 1e-9)
}

func (suite *ATRTestSuite) TestAlwaysNeutral() {
	atr, err := NewATR(2)
	suite.NoError(err)

	rows := []ohlcv{
		{101, 99, 100, 100},
		{105, 95, 104, 100},
		{120, 80, 90, 100},
	}

	points, err := runAll(atr, barsFromOHLCV(rows))
	suite.NoError(err)

	for _, p := range points {
		suite.Equal(types.SignalTypeNeutral, p.Signal)
	}
}
