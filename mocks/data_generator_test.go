package mocks

import (
	"testing"
)

func TestDataGenerator_Generate(t *testing.T) {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.Count = 100

	bars := gen.Generate(config)

	if len(bars) != 100 {
		t.Errorf("expected 100 bars, got %d", len(bars))
	}

	// Verify bars are in chronological order
	for i := 1; i < len(bars); i++ {
		if !bars[i].Time.After(bars[i-1].Time) {
			t.Errorf("bars not in chronological order at index %d", i)
		}
	}

	// Verify symbol and time intervals
	for i, bar := range bars {
		if bar.Symbol != config.Symbol {
			t.Errorf("expected symbol %s at index %d, got %s", config.Symbol, i, bar.Symbol)
		}
	}

	for i := 1; i < len(bars); i++ {
		actualInterval := bars[i].Time.Sub(bars[i-1].Time)
		if actualInterval != config.Interval {
			t.Errorf("unexpected interval at index %d: expected %v, got %v",
				i, config.Interval, actualInterval)
		}
	}

	// Verify OHLC values are positive and High >= Low
	for i, bar := range bars {
		high, low, closePrice, ok := bar.HLC()
		if !ok {
			t.Fatalf("missing high/low at index %d", i)
		}

		if bar.Open <= 0 || high <= 0 || low <= 0 || closePrice <= 0 {
			t.Errorf("invalid OHLC values at index %d: O=%f H=%f L=%f C=%f",
				i, bar.Open, high, low, closePrice)
		}

		if high < low {
			t.Errorf("High < Low at index %d: H=%f L=%f", i, high, low)
		}

		if volume := bar.Volume.TakeOr(-1); volume < 0 {
			t.Errorf("missing or negative volume at index %d", i)
		}
	}
}

func TestDataGenerator_Reproducibility(t *testing.T) {
	// Same seed should produce same results
	config := DefaultConfig()
	config.Count = 50

	first := NewDataGenerator(7).Generate(config)
	second := NewDataGenerator(7).Generate(config)

	if len(first) != len(second) {
		t.Fatalf("length mismatch: %d vs %d", len(first), len(second))
	}

	for i := range first {
		if first[i].Close != second[i].Close {
			t.Errorf("close mismatch at index %d: %f vs %f", i, first[i].Close, second[i].Close)
		}
	}
}

func TestDataGenerator_Trend(t *testing.T) {
	config := DefaultConfig()
	config.Count = 2000
	config.Volatility = 0.0005
	config.Trend = 5.0 // strong upward drift

	bars := NewDataGenerator(42).Generate(config)

	last := bars[len(bars)-1].Close
	if last <= config.InitialPrice {
		t.Errorf("expected upward drift, start=%f end=%f", config.InitialPrice, last)
	}
}

func TestDataGenerator_MultiSymbol(t *testing.T) {
	config := DefaultConfig()
	config.Count = 10

	symbols := []string{"AAA", "BBB", "CCC"}
	bars := NewDataGenerator(1).GenerateMultiSymbol(symbols, config)

	if len(bars) != len(symbols)*config.Count {
		t.Fatalf("expected %d bars, got %d", len(symbols)*config.Count, len(bars))
	}

	counts := make(map[string]int)
	for _, bar := range bars {
		counts[bar.Symbol]++
	}

	for _, symbol := range symbols {
		if counts[symbol] != config.Count {
			t.Errorf("expected %d bars for %s, got %d", config.Count, symbol, counts[symbol])
		}
	}
}
