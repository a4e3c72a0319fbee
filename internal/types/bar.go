package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// Bar is a single price bar as delivered by a market data provider.
// High, Low and Volume are optional: some providers (and some CSV exports)
// only carry closing prices, and indicators that need the missing fields
// must report that instead of computing on zeros.
type Bar struct {
	// Id is the unique identifier of the bar
	Id string
	// Symbol is the ticker the bar belongs to
	Symbol string
	// Time is the bar's timestamp
	Time time.Time
	// Open is the opening price
	Open float64
	// Close is the closing price
	Close float64
	// High is the highest price of the bar, if known
	High optional.Option[float64]
	// Low is the lowest price of the bar, if known
	Low optional.Option[float64]
	// Volume is the traded volume of the bar, if known
	Volume optional.Option[float64]
}

// HLC returns the high, low and close of the bar. ok is false when either
// high or low is absent.
func (b Bar) HLC() (high, low, close float64, ok bool) {
	if b.High.IsNone() || b.Low.IsNone() {
		return 0, 0, 0, false
	}

	return b.High.Unwrap(), b.Low.Unwrap(), b.Close, true
}

// TypicalPrice returns (high + low + close) / 3. ok is false when high or
// low is absent.
func (b Bar) TypicalPrice() (float64, bool) {
	high, low, close, ok := b.HLC()
	if !ok {
		return 0, false
	}

	return (high + low + close) / 3, true
}
