package types

import "time"

type SignalType string

const (
	// SignalTypeBuy is a bullish signal
	SignalTypeBuy SignalType = "buy"
	// SignalTypeSell is a bearish signal
	SignalTypeSell SignalType = "sell"
	// SignalTypeNeutral means no actionable condition, including warm-up
	SignalTypeNeutral SignalType = "neutral"
	// SignalTypeOverbought is emitted by oscillators above their upper threshold
	SignalTypeOverbought SignalType = "overbought"
	// SignalTypeOversold is emitted by oscillators below their lower threshold
	SignalTypeOversold SignalType = "oversold"
	// SignalTypeStrong marks a strong trend (ADX)
	SignalTypeStrong SignalType = "strong"
	// SignalTypeWeak marks a weak trend (ADX)
	SignalTypeWeak SignalType = "weak"
)

// Signal is a single discrete trading signal emitted by an indicator for
// one bar.
type Signal struct {
	// Time is the time of the bar the signal belongs to
	Time time.Time
	// Type is the type of the signal
	Type SignalType
	// Reason is a human readable reason for the signal
	Reason string
	// Symbol is the symbol of the signal
	Symbol string
	// Indicator is the indicator that generated the signal
	Indicator IndicatorType
}
