package marketdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/quantgrid/ta-engine/pkg/errors"
)

var barHeader = []string{"id", "symbol", "time", "open", "high", "low", "close", "volume"}

var enrichedHeader = append(append([]string{}, barHeader...),
	"rsi",
	"macd", "macd_signal", "macd_histogram",
	"bb_upper", "bb_middle", "bb_lower",
	"ma_short", "ma_long",
	"volume_ma",
	"adx", "obv", "vwap", "atr", "cci",
	"stoch_k", "stoch_d",
	"roc", "mfi",
)

// ReadBars parses a bar CSV file. The expected layout is the one WriteBars
// produces: a header row, RFC 3339 timestamps, and empty cells for absent
// high/low/volume. Missing ids are filled in.
func ReadBars(path string) ([]types.Bar, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataNotFound, err, "failed to open bar file %s", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(barHeader)

	// Header row.
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, errors.Newf(errors.ErrCodeMarketDataParseFailed, "bar file %s is empty", path)
		}

		return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "failed to read bar file %s", path)
	}

	var bars []types.Bar

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "failed to read bar file %s", path)
		}

		bar, err := barFromRecord(record)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "bad record at %s:%d", path, line)
		}

		bars = append(bars, bar)
	}

	return bars, nil
}

func barFromRecord(record []string) (types.Bar, error) {
	barTime, err := time.Parse(time.RFC3339, record[2])
	if err != nil {
		return types.Bar{}, fmt.Errorf("invalid timestamp %q: %w", record[2], err)
	}

	open, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return types.Bar{}, fmt.Errorf("invalid open %q: %w", record[3], err)
	}

	closePrice, err := strconv.ParseFloat(record[6], 64)
	if err != nil {
		return types.Bar{}, fmt.Errorf("invalid close %q: %w", record[6], err)
	}

	high, err := optionalFloat(record[4])
	if err != nil {
		return types.Bar{}, fmt.Errorf("invalid high %q: %w", record[4], err)
	}

	low, err := optionalFloat(record[5])
	if err != nil {
		return types.Bar{}, fmt.Errorf("invalid low %q: %w", record[5], err)
	}

	volume, err := optionalFloat(record[7])
	if err != nil {
		return types.Bar{}, fmt.Errorf("invalid volume %q: %w", record[7], err)
	}

	id := record[0]
	if id == "" {
		id = uuid.New().String()
	}

	return types.Bar{
		Id:     id,
		Symbol: record[1],
		Time:   barTime,
		Open:   open,
		Close:  closePrice,
		High:   high,
		Low:    low,
		Volume: volume,
	}, nil
}

// WriteBars writes bars as CSV, one row per bar, absent fields as empty
// cells.
func WriteBars(path string, bars []types.Bar) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to create bar file %s", path)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(barHeader); err != nil {
		return errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to write bar file %s", path)
	}

	for _, bar := range bars {
		record := []string{
			bar.Id,
			bar.Symbol,
			bar.Time.UTC().Format(time.RFC3339),
			formatFloat(bar.Open),
			formatOptional(bar.High),
			formatOptional(bar.Low),
			formatFloat(bar.Close),
			formatOptional(bar.Volume),
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to write bar file %s", path)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to write bar file %s", path)
	}

	return nil
}

// WriteEnriched writes enriched bars as CSV: the bar columns followed by
// one column per indicator field, warm-up and failed cells left empty.
func WriteEnriched(path string, enriched []types.EnrichedBar) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to create output file %s", path)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(enrichedHeader); err != nil {
		return errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to write output file %s", path)
	}

	fields := []types.Field{
		types.FieldRSI,
		types.FieldMACD, types.FieldMACDSignal, types.FieldMACDHistogram,
		types.FieldBollingerUpper, types.FieldBollingerMiddle, types.FieldBollingerLower,
		types.FieldShortMA, types.FieldLongMA,
		types.FieldVolumeMA,
		types.FieldADX, types.FieldOBV, types.FieldVWAP, types.FieldATR, types.FieldCCI,
		types.FieldStochasticK, types.FieldStochasticD,
		types.FieldROC, types.FieldMFI,
	}

	for i := range enriched {
		row := &enriched[i]
		record := make([]string, 0, len(enrichedHeader))
		record = append(record,
			row.Id,
			row.Symbol,
			row.Time.UTC().Format(time.RFC3339),
			formatFloat(row.Open),
			formatOptional(row.High),
			formatOptional(row.Low),
			formatFloat(row.Close),
			formatOptional(row.Volume),
		)

		for _, field := range fields {
			record = append(record, formatOptional(row.Get(field)))
		}

		if err := writer.Write(record); err != nil {
			return errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to write output file %s", path)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to write output file %s", path)
	}

	return nil
}

func optionalFloat(cell string) (optional.Option[float64], error) {
	if cell == "" {
		return optional.None[float64](), nil
	}

	value, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return optional.None[float64](), err
	}

	return optional.Some(value), nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func formatOptional(value optional.Option[float64]) string {
	if value.IsNone() {
		return ""
	}

	return formatFloat(value.Unwrap())
}
