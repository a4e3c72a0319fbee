package indicator

import (
	"testing"

	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/stretchr/testify/suite"
)

type ROCTestSuite struct {
	suite.Suite
}

func TestROCSuite(t *testing.T) {
	suite.Run(t, new(ROCTestSuite))
}

func (suite *ROCTestSuite) TestInvalidConfig() {
	_, err := NewROC(0)
	suite.Error(err)
}

func (suite *ROCTestSuite) TestWarmUp() {
	roc, err := NewROC(3)
	suite.NoError(err)
	suite.Equal(3, roc.WarmUp())

	points, err := runAll(roc, barsFromCloses([]float64{100, 101, 102}))
	suite.NoError(err)

	for _, p := range points {
		suite.True(p.Values[types.FieldROC].IsNone())
	}
}

func (suite *ROCTestSuite) TestPercentChange() {
	roc, err := NewROC(3)
	suite.NoError(err)

	points, err := runAll(roc, barsFromCloses([]float64{100, 101, 102, 110, 90.9}))
	suite.NoError(err)

	// 110 vs 100, three bars earlier
	suite.InDelta(10.0, points[3].Values[types.FieldROC].Unwrap(), 1e-9)
	suite.Equal(types.SignalTypeBuy, points[3].Signal)

	// 90.9 vs 101
	suite.InDelta(100*(90.9-101)/101, points[4].Values[types.FieldROC].Unwrap(), 1e-9)
	suite.Equal(types.SignalTypeSell, points[4].Signal)
}

func (suite *ROCTestSuite) TestFlatIsNeutral() {
	roc, err := NewROC(2)
	suite.NoError(err)

	points, err := runAll(roc, barsFromCloses([]float64{100, 100, 100, 100}))
	suite.NoError(err)

	suite.InDelta(0.0, points[3].Values[types.FieldROC].Unwrap(), 1e-9)
	suite.Equal(types.SignalTypeNeutral, points[3].Signal)
}

func (suite *ROCTestSuite) TestZeroReferenceHasNoValue() {
	roc, err := NewROC(1)
	suite.NoError(err)

	points, err := runAll(roc, barsFromCloses([]float64{0, 10}))
	suite.NoError(err)
	suite.True(points[1].Values[types.FieldROC].IsNone())
}

type MFITestSuite struct {
	suite.Suite
}

func TestMFISuite(t *testing.T) {
	suite.Run(t, new(MFITestSuite))
}

func (suite *MFITestSuite) TestInvalidConfig() {
	_, err := NewMFI(0, 20, 80)
	suite.Error(err)

	_, err = NewMFI(14, 80, 20)
	suite.Error(err)
}

func (suite *MFITestSuite) TestMissingFieldsAreErrors() {
	mfi, err := NewMFI(3, 20, 80)
	suite.NoError(err)

	_, err = runAll(mfi, barsFromCloses([]float64{100}))
	suite.Error(err)
}

func (suite *MFITestSuite) TestStrictInflowSaturatesAt100() {
	mfi, err := NewMFI(3, 20, 80)
	suite.NoError(err)
	suite.Equal(3, mfi.WarmUp())

	rows := []ohlcv{
		{11, 9, 10, 100},
		{12, 10, 11, 100},
		{13, 11, 12, 100},
		{14, 12, 13, 100},
	}

	points, err := runAll(mfi, barsFromOHLCV(rows))
	suite.NoError(err)

	suite.True(points[2].Values[types.FieldMFI].IsNone())
	suite.InDelta(100.0, points[3].Values[types.FieldMFI].Unwrap(), 1e-9)
	suite.Equal(types.SignalTypeOverbought, points[3].Signal)
}

func (suite *MFITestSuite) TestStrictOutflowIsZero() {
	mfi, err := NewMFI(3, 20, 80)
	suite.NoError(err)

	rows := []ohlcv{
		{14, 12, 13, 100},
		{13, 11, 12, 100},
		{12, 10, 11, 100},
		{11, 9, 10, 100},
	}

	points, err := runAll(mfi, barsFromOHLCV(rows))
	suite.NoError(err)
	suite.InDelta(0.0, points[3].Values[types.FieldMFI].Unwrap(), 1e-9)
	suite.Equal(types.SignalTypeOversold, points[3].Signal)
}

func (suite *MFITestSuite) TestFlatFlowFallsBackTo50() {
	mfi, err := NewMFI(3, 20, 80)
	suite.NoError(err)

	rows := []ohlcv{
		{11, 9, 10, 100},
		{11, 9, 10, 100},
		{11, 9, 10, 100},
		{11, 9, 10, 100},
	}

	points, err := runAll(mfi, barsFromOHLCV(rows))
	suite.NoError(err)
	suite.InDelta(50.0, points[3].Values[types.FieldMFI].Unwrap(), 1e-9)
	suite.Equal(types.SignalTypeNeutral, points[3].Signal)
}

func (suite *MFITestSuite) TestBounds() {
	mfi, err := NewMFI(3, 20, 80)
	suite.NoError(err)

	rows := []ohlcv{
		{11, 9, 10, 500},
		{13, 11, 12, 700},
		{12, 10, 11, 300},
		{14, 12, 13, 900},
		{13, 11, 12, 400},
		{15, 13, 14, 800},
	}

	points, err := runAll(mfi, barsFromOHLCV(rows))
	suite.NoError(err)

	for _, p := range points {
		if value := p.Values[types.FieldMFI]; value.IsSome() {
			suite.GreaterOrEqual(value.Unwrap(), 0.0)
			suite.LessOrEqual(value.Unwrap(), 100.0)
		}
	}
}
