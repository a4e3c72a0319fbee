package engine

import (
	"fmt"
	"sort"

	"github.com/quantgrid/ta-engine/internal/indicator"
	"github.com/quantgrid/ta-engine/internal/logger"
	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/quantgrid/ta-engine/pkg/errors"
	"go.uber.org/zap"
)

// Analysis is the result of running every configured indicator over a bar
// sequence. Enriched and every signal sequence have exactly the same length
// as the input; values that could not be computed yet are explicitly absent.
type Analysis struct {
	// Enriched carries the input bars merged with every indicator column.
	Enriched []types.EnrichedBar
	// Signals maps each indicator to its per-bar signal sequence.
	Signals map[types.IndicatorType][]types.SignalType
	// Events lists every non-neutral signal in bar order, ties broken by
	// indicator name.
	Events []types.Signal
	// Failures records indicators that could not run, keyed by indicator.
	// A failed indicator contributes no columns and no signal sequence;
	// the rest of the analysis is unaffected.
	Failures map[types.IndicatorType]error
}

// Engine computes technical indicators and their signals over bar
// sequences. It is stateless across Analyze calls; each call builds a
// fresh set of indicator instances from the configuration.
type Engine struct {
	config Config
	logger *logger.Logger
}

// NewEngine creates an engine with the given configuration. The
// configuration is not checked here: each indicator's section is
// validated when the indicator is built, so a bad section disables only
// that indicator and surfaces in Analysis.Failures.
func NewEngine(config Config, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Engine{
		config: config,
		logger: log,
	}
}

// buildIndicators constructs one instance of every configured indicator,
// in a fixed order. Each indicator's config section is validated on its
// own and failures are collected per indicator, so one bad section does
// not abort the others. Every healthy instance is registered; the
// registry is returned alongside the ordered slice.
func (e *Engine) buildIndicators(failures map[types.IndicatorType]error) ([]indicator.Indicator, indicator.Registry) {
	registry := indicator.NewRegistry()
	indicators := make([]indicator.Indicator, 0, 13)

	build := func(name types.IndicatorType, section any, construct func() (indicator.Indicator, error)) {
		err := validateSection(name, section)

		var ind indicator.Indicator
		if err == nil {
			ind, err = construct()
		}
		if err == nil {
			err = registry.Register(ind)
		}

		if err != nil {
			e.logger.Warn("skipping indicator",
				zap.String("indicator", string(name)),
				zap.Error(err))
			failures[name] = err

			return
		}

		indicators = append(indicators, ind)
	}

	build(types.IndicatorTypeRSI, e.config.RSI, func() (indicator.Indicator, error) {
		return indicator.NewRSI(e.config.RSI.Period, e.config.RSI.Lower, e.config.RSI.Upper, e.config.RSI.Method)
	})
	build(types.IndicatorTypeMACD, e.config.MACD, func() (indicator.Indicator, error) {
		return indicator.NewMACD(e.config.MACD.FastPeriod, e.config.MACD.SlowPeriod, e.config.MACD.SignalPeriod)
	})
	build(types.IndicatorTypeBollingerBands, e.config.Bollinger, func() (indicator.Indicator, error) {
		return indicator.NewBollingerBands(e.config.Bollinger.Period, e.config.Bollinger.Multiplier)
	})
	build(types.IndicatorTypeMACrossover, e.config.Crossover, func() (indicator.Indicator, error) {
		return indicator.NewMACrossover(e.config.Crossover.ShortPeriod, e.config.Crossover.LongPeriod)
	})
	build(types.IndicatorTypeVolume, e.config.Volume, func() (indicator.Indicator, error) {
		return indicator.NewVolume(e.config.Volume.Period, e.config.Volume.SpikeMultiplier)
	})
	build(types.IndicatorTypeADX, e.config.ADX, func() (indicator.Indicator, error) {
		return indicator.NewADX(e.config.ADX.Period, e.config.ADX.Threshold)
	})
	build(types.IndicatorTypeOBV, nil, func() (indicator.Indicator, error) {
		return indicator.NewOBV(), nil
	})
	build(types.IndicatorTypeVWAP, nil, func() (indicator.Indicator, error) {
		return indicator.NewVWAP(), nil
	})
	build(types.IndicatorTypeATR, e.config.ATR, func() (indicator.Indicator, error) {
		return indicator.NewATR(e.config.ATR.Period)
	})
	build(types.IndicatorTypeCCI, e.config.CCI, func() (indicator.Indicator, error) {
		return indicator.NewCCI(e.config.CCI.Period, e.config.CCI.Lower, e.config.CCI.Upper)
	})
	build(types.IndicatorTypeStochastic, e.config.Stochastic, func() (indicator.Indicator, error) {
		return indicator.NewStochastic(e.config.Stochastic.Period, e.config.Stochastic.SignalPeriod, e.config.Stochastic.Lower, e.config.Stochastic.Upper)
	})
	build(types.IndicatorTypeROC, e.config.ROC, func() (indicator.Indicator, error) {
		return indicator.NewROC(e.config.ROC.Period)
	})
	build(types.IndicatorTypeMFI, e.config.MFI, func() (indicator.Indicator, error) {
		return indicator.NewMFI(e.config.MFI.Period, e.config.MFI.Lower, e.config.MFI.Upper)
	})

	return indicators, registry
}

// Indicators builds the configured indicator set and returns it as a
// registry, together with the per-indicator build failures. Useful for
// listing what a configuration yields without running an analysis.
func (e *Engine) Indicators() (indicator.Registry, map[types.IndicatorType]error) {
	failures := make(map[types.IndicatorType]error)
	_, registry := e.buildIndicators(failures)

	return registry, failures
}

// computeSeries feeds every bar through one indicator and collects its
// per-bar points. An error at any bar aborts the whole series.
func computeSeries(ind indicator.Indicator, bars []types.Bar) ([]indicator.Point, error) {
	points := make([]indicator.Point, 0, len(bars))
	for i, bar := range bars {
		point, err := ind.Update(bar)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeIndicatorCalculation, err,
				"indicator %s failed at bar %d", ind.Name(), i)
		}
		points = append(points, point)
	}

	return points, nil
}

// Analyze runs every configured indicator over the bar sequence and merges
// the results into one enriched record per bar. Bars must be in
// non-decreasing timestamp order. The call is deterministic: the same
// bars and configuration always produce the same output.
//
// An indicator that fails on any bar (for example because the bar lacks a
// field it needs) is dropped as a whole and reported in Analysis.Failures;
// its columns stay absent and it gets no signal sequence. The other
// indicators are unaffected.
func (e *Engine) Analyze(bars []types.Bar) (*Analysis, error) {
	if err := validateOrder(bars); err != nil {
		return nil, err
	}

	failures := make(map[types.IndicatorType]error)
	indicators, _ := e.buildIndicators(failures)

	analysis := &Analysis{
		Enriched: make([]types.EnrichedBar, len(bars)),
		Signals:  make(map[types.IndicatorType][]types.SignalType),
		Failures: failures,
	}
	for i, bar := range bars {
		analysis.Enriched[i] = types.EnrichedBar{Bar: bar}
	}

	for _, ind := range indicators {
		name := ind.Name()

		points, err := computeSeries(ind, bars)
		if err != nil {
			e.logger.Warn("indicator failed",
				zap.String("indicator", string(name)),
				zap.Error(err))
			failures[name] = err
			continue
		}

		signals := make([]types.SignalType, len(points))
		for i, point := range points {
			for field, value := range point.Values {
				analysis.Enriched[i].Set(field, value)
			}

			signals[i] = point.Signal
			if point.Signal != types.SignalTypeNeutral {
				analysis.Events = append(analysis.Events, types.Signal{
					Time:      bars[i].Time,
					Type:      point.Signal,
					Reason:    fmt.Sprintf("%s emitted %s", name, point.Signal),
					Symbol:    bars[i].Symbol,
					Indicator: name,
				})
			}
		}
		analysis.Signals[name] = signals
	}

	sort.SliceStable(analysis.Events, func(i, j int) bool {
		a, b := analysis.Events[i], analysis.Events[j]
		if !a.Time.Equal(b.Time) {
			return a.Time.Before(b.Time)
		}

		return a.Indicator < b.Indicator
	})

	return analysis, nil
}

// validateOrder rejects bar sequences whose timestamps go backwards.
// Equal consecutive timestamps are allowed.
func validateOrder(bars []types.Bar) error {
	for i := 1; i < len(bars); i++ {
		if bars[i].Time.Before(bars[i-1].Time) {
			return errors.Newf(errors.ErrCodeUnorderedBars,
				"bars out of order: bar %d (%s) precedes bar %d (%s)",
				i, bars[i].Time, i-1, bars[i-1].Time)
		}
	}

	return nil
}
