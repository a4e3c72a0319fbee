package indicator

import (
	"testing"

	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/stretchr/testify/suite"
)

type OBVTestSuite struct {
	suite.Suite
}

func TestOBVSuite(t *testing.T) {
	suite.Run(t, new(OBVTestSuite))
}

func (suite *OBVTestSuite) TestMissingVolumeIsAnError() {
	obv := NewOBV()

	_, err := runAll(obv, barsFromCloses([]float64{100}))
	suite.Error(err)
}

func (suite *OBVTestSuite) TestRunningTotal() {
	obv := NewOBV()
	suite.Equal(0, obv.WarmUp())

	rows := []ohlcv{
		{101, 99, 100, 1000},
		{102, 100, 101, 500},  // up: +500
		{102, 100, 100, 300},  // down: -300
		{102, 100, 100, 700},  // flat: unchanged
		{103, 101, 102, 1000}, // up: +1000
	}

	points, err := runAll(obv, barsFromOHLCV(rows))
	suite.NoError(err)

	suite.InDelta(0.0, points[0].Values[types.FieldOBV].Unwrap(), 1e-9)
	suite.InDelta(500.0, points[1].Values[types.FieldOBV].Unwrap(), 1e-9)
	suite.InDelta(200.0, points[2].Values[types.FieldOBV].Unwrap(), 1e-9)
	suite.InDelta(200.0, points[3].Values[types.FieldOBV].Unwrap(), 1e-9)
	suite.InDelta(1200.0, points[4].Values[types.FieldOBV].Unwrap(), 1e-9)
}

func (suite *OBVTestSuite) TestSignals() {
	obv := NewOBV()

	rows := []ohlcv{
		{101, 99, 100, 1000},
		{102, 100, 101, 500},
		{102, 100, 100, 300},
		{102, 100, 100, 700},
	}

	points, err := runAll(obv, barsFromOHLCV(rows))
	suite.NoError(err)

	suite.Equal(types.SignalTypeNeutral, points[0].Signal)
	suite.Equal(types.SignalTypeBuy, points[1].Signal)
	suite.Equal(types.SignalTypeSell, points[2].Signal)
	suite.Equal(types.SignalTypeNeutral, points[3].Signal)
}

type VWAPTestSuite struct {
	suite.Suite
}

func TestVWAPSuite(t *testing.T) {
	suite.Run(t, new(VWAPTestSuite))
}

func (suite *VWAPTestSuite) TestMissingFieldsAreErrors() {
	vwap := NewVWAP()

	_, err := runAll(vwap, barsFromCloses([]float64{100}))
	suite.Error(err)
}

func (suite *VWAPTestSuite) TestCumulativeAverage() {
	vwap := NewVWAP()
	suite.Equal(0, vwap.WarmUp())

	rows := []ohlcv{
		{12, 8, 10, 100}, // typical 10
		{22, 18, 20, 300},
	}

	points, err := runAll(vwap, barsFromOHLCV(rows))
	suite.NoError(err)

	suite.InDelta(10.0, points[0].Values[types.FieldVWAP].Unwrap(), 1e-9)
	// (10*100 + 20*300) / 400
	suite.InDelta(17.5, points[1].Values[types.FieldVWAP].Unwrap(), 1e-9)
	suite.Equal(types.SignalTypeNeutral, points[0].Signal)
	suite.Equal(types.SignalTypeNeutral, points[1].Signal)
}

func (suite *VWAPTestSuite) TestZeroVolumeHasNoValue() {
	vwap := NewVWAP()

	rows := []ohlcv{
		{12, 8, 10, 0},
	}

	points, err := runAll(vwap, barsFromOHLCV(rows))
	suite.NoError(err)
	suite.True(points[0].Values[types.FieldVWAP].IsNone())
}
