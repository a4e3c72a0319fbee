package indicator

import (
	"testing"

	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/stretchr/testify/suite"
)

type BollingerBandsTestSuite struct {
	suite.Suite
}

func TestBollingerBandsSuite(t *testing.T) {
	suite.Run(t, new(BollingerBandsTestSuite))
}

func (suite *BollingerBandsTestSuite) TestInvalidConfig() {
	_, err := NewBollingerBands(0, 2)
	suite.Error(err)

	_, err = NewBollingerBands(20, 0)
	suite.Error(err)

	_, err = NewBollingerBands(20, -1.5)
	suite.Error(err)
}

func (suite *BollingerBandsTestSuite) TestWarmUp() {
	bb, err := NewBollingerBands(20, 2)
	suite.NoError(err)
	suite.Equal(19, bb.WarmUp())

	closes := make([]float64, 19)
	for i := range closes {
		closes[i] = 100
	}

	points, err := runAll(bb, barsFromCloses(closes))
	suite.NoError(err)

	for _, p := range points {
		suite.True(p.Values[types.FieldBollingerMiddle].IsNone())
	}
}

func (suite *BollingerBandsTestSuite) TestExactlyOneValueAtPeriodLength() {
	bb, err := NewBollingerBands(20, 2)
	suite.NoError(err)

	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	points, err := runAll(bb, barsFromCloses(closes))
	suite.NoError(err)

	for i, p := range points {
		if i < 19 {
			suite.True(p.Values[types.FieldBollingerMiddle].IsNone())
		} else {
			suite.True(p.Values[types.FieldBollingerMiddle].IsSome())
		}
	}
}

func (suite *BollingerBandsTestSuite) TestFlatSeriesBandsCollapse() {
	bb, err := NewBollingerBands(20, 2)
	suite.NoError(err)

	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 321.5
	}

	points, err := runAll(bb, barsFromCloses(closes))
	suite.NoError(err)

	for i, p := range points {
		if i < 19 {
			continue
		}

		upper := p.Values[types.FieldBollingerUpper].Unwrap()
		middle := p.Values[types.FieldBollingerMiddle].Unwrap()
		lower := p.Values[types.FieldBollingerLower].Unwrap()

		suite.InDelta(321.5, middle, 1e-9)
		suite.InDelta(middle, upper, 1e-9)
		suite.InDelta(middle, lower, 1e-9)
	}
}

func (suite *BollingerBandsTestSuite) TestBandOrdering() {
	bb, err := NewBollingerBands(5, 2)
	suite.NoError(err)

	closes := []float64{10, 12, 9, 14, 11, 8, 15, 13, 7, 16}

	points, err := runAll(bb, barsFromCloses(closes))
	suite.NoError(err)

	for _, p := range points {
		if p.Values[types.FieldBollingerMiddle].IsNone() {
			continue
		}

		upper := p.Values[types.FieldBollingerUpper].Unwrap()
		middle := p.Values[types.FieldBollingerMiddle].Unwrap()
		lower := p.Values[types.FieldBollingerLower].Unwrap()

		suite.GreaterOrEqual(upper, middle)
		suite.GreaterOrEqual(middle, lower)
	}
}

func (suite *BollingerBandsTestSuite) TestBreakoutSignals() {
	bb, err := NewBollingerBands(4, 1)
	suite.NoError(err)

	// Stable prices, then a spike far above the upper band.
	closes := []float64{100, 100, 100, 100, 100, 150}

	points, err := runAll(bb, barsFromCloses(closes))
	suite.NoError(err)

	suite.Equal(types.SignalTypeNeutral, points[4].Signal)
	suite.Equal(types.SignalTypeSell, points[5].Signal)

	bb.Reset()

	closes = []float64{100, 100, 100, 100, 100, 50}

	points, err = runAll(bb, barsFromCloses(closes))
	suite.NoError(err)
	suite.Equal(types.SignalTypeBuy, points[5].Signal)
}
