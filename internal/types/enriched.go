package types

import (
	"github.com/moznion/go-optional"
)

// EnrichedBar is a Bar together with every indicator value computed for its
// index. Fields are None during the owning indicator's warm-up, or for the
// whole series when the indicator could not run (bad configuration, missing
// input field). A None here is never interchangeable with a computed zero.
type EnrichedBar struct {
	Bar

	RSI             optional.Option[float64]
	MACD            optional.Option[float64]
	MACDSignal      optional.Option[float64]
	MACDHistogram   optional.Option[float64]
	BollingerUpper  optional.Option[float64]
	BollingerMiddle optional.Option[float64]
	BollingerLower  optional.Option[float64]
	ShortMA         optional.Option[float64]
	LongMA          optional.Option[float64]
	VolumeMA        optional.Option[float64]
	ADX             optional.Option[float64]
	OBV             optional.Option[float64]
	VWAP            optional.Option[float64]
	ATR             optional.Option[float64]
	CCI             optional.Option[float64]
	StochasticK     optional.Option[float64]
	StochasticD     optional.Option[float64]
	ROC             optional.Option[float64]
	MFI             optional.Option[float64]
}

// Set assigns a field value by name. Unknown fields are ignored.
func (e *EnrichedBar) Set(field Field, value optional.Option[float64]) {
	switch field {
	case FieldRSI:
		e.RSI = value
	case FieldMACD:
		e.MACD = value
	case FieldMACDSignal:
		e.MACDSignal = value
	case FieldMACDHistogram:
		e.MACDHistogram = value
	case FieldBollingerUpper:
		e.BollingerUpper = value
	case FieldBollingerMiddle:
		e.BollingerMiddle = value
	case FieldBollingerLower:
		e.BollingerLower = value
	case FieldShortMA:
		e.ShortMA = value
	case FieldLongMA:
		e.LongMA = value
	case FieldVolumeMA:
		e.VolumeMA = value
	case FieldADX:
		e.ADX = value
	case FieldOBV:
		e.OBV = value
	case FieldVWAP:
		e.VWAP = value
	case FieldATR:
		e.ATR = value
	case FieldCCI:
		e.CCI = value
	case FieldStochasticK:
		e.StochasticK = value
	case FieldStochasticD:
		e.StochasticD = value
	case FieldROC:
		e.ROC = value
	case FieldMFI:
		e.MFI = value
	}
}

// Get returns a field value by name. Unknown fields return None.
func (e *EnrichedBar) Get(field Field) optional.Option[float64] {
	switch field {
	case FieldRSI:
		return e.RSI
	case FieldMACD:
		return e.MACD
	case FieldMACDSignal:
		return e.MACDSignal
	case FieldMACDHistogram:
		return e.MACDHistogram
	case FieldBollingerUpper:
		return e.BollingerUpper
	case FieldBollingerMiddle:
		return e.BollingerMiddle
	case FieldBollingerLower:
		return e.BollingerLower
	case FieldShortMA:
		return e.ShortMA
	case FieldLongMA:
		return e.LongMA
	case FieldVolumeMA:
		return e.VolumeMA
	case FieldADX:
		return e.ADX
	case FieldOBV:
		return e.OBV
	case FieldVWAP:
		return e.VWAP
	case FieldATR:
		return e.ATR
	case FieldCCI:
		return e.CCI
	case FieldStochasticK:
		return e.StochasticK
	case FieldStochasticD:
		return e.StochasticD
	case FieldROC:
		return e.ROC
	case FieldMFI:
		return e.MFI
	default:
		return optional.None[float64]()
	}
}
