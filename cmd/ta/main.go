package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/quantgrid/ta-engine/internal/engine"
	"github.com/quantgrid/ta-engine/internal/logger"
	"github.com/quantgrid/ta-engine/internal/version"
	"github.com/quantgrid/ta-engine/pkg/marketdata"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// analyzeAction reads a bar CSV, runs every configured indicator over it,
// and writes the enriched series next to a per-indicator summary.
func analyzeAction(ctx context.Context, cmd *cli.Command) error {
	inputPath := cmd.String("input")
	outputPath := cmd.String("output")
	configPath := cmd.String("config")

	config := engine.DefaultConfig()

	if configPath != "" {
		loaded, err := engine.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		config = loaded
	}

	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	taEngine := engine.NewEngine(config, appLogger)

	bars, err := marketdata.ReadBars(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read bars: %w", err)
	}

	analysis, err := taEngine.Analyze(bars)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if err := marketdata.WriteEnriched(outputPath, analysis.Enriched); err != nil {
		return fmt.Errorf("failed to write enriched output: %w", err)
	}

	appLogger.Info("analysis complete",
		zap.Int("bars", len(bars)),
		zap.Int("indicators", len(analysis.Signals)),
		zap.Int("failed", len(analysis.Failures)),
		zap.String("output", outputPath))

	for name, signals := range analysis.Signals {
		if len(signals) == 0 {
			continue
		}

		fmt.Printf("%-22s %s\n", name, signals[len(signals)-1])
	}

	for name, failure := range analysis.Failures {
		fmt.Printf("%-22s failed: %v\n", name, failure)
	}

	return nil
}

// listAction prints the indicators a configuration yields, with their
// warm-up and output fields, and any sections that failed validation.
func listAction(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config := engine.DefaultConfig()

	if configPath != "" {
		loaded, err := engine.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		config = loaded
	}

	registry, failures := engine.NewEngine(config, nil).Indicators()

	names := registry.List()
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	for _, name := range names {
		ind, err := registry.Get(name)
		if err != nil {
			return fmt.Errorf("failed to look up indicator: %w", err)
		}

		fields := make([]string, 0, len(ind.Fields()))
		for _, field := range ind.Fields() {
			fields = append(fields, string(field))
		}

		fmt.Printf("%-22s warm-up %-4d %s\n", name, ind.WarmUp(), strings.Join(fields, ", "))
	}

	for name, failure := range failures {
		fmt.Printf("%-22s failed: %v\n", name, failure)
	}

	return nil
}

// downloadAction fetches historical bars from a provider and writes them
// as a bar CSV usable by analyze.
func downloadAction(ctx context.Context, cmd *cli.Command) error {
	symbol := cmd.String("symbol")
	start := cmd.Timestamp("start")
	end := cmd.Timestamp("end")
	interval := marketdata.Interval(cmd.String("interval"))
	providerType := marketdata.ProviderType(cmd.String("provider"))
	outputPath := cmd.String("output")

	provider, err := marketdata.NewProvider(providerType, os.Getenv("POLYGON_API_KEY"))
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", symbol)),
		progressbar.OptionShowCount())

	onProgress := func(current float64, total float64, message string) {
		if total > 0 {
			bar.Set(int(100 * current / total))
		}
	}

	bars, err := provider.FetchBars(ctx, symbol, start, end, interval, onProgress)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	bar.Finish()

	if err := marketdata.WriteBars(outputPath, bars); err != nil {
		return fmt.Errorf("failed to write bars: %w", err)
	}

	fmt.Printf("\nDownloaded %d bars for %s to %s\n", len(bars), symbol, outputPath)

	return nil
}

// schemaAction writes the engine config JSON schema and, when absent, a
// sample YAML config pointing at it.
func schemaAction(ctx context.Context, cmd *cli.Command) error {
	outputDir := cmd.String("output")

	config := engine.DefaultConfig()

	schemaJSON, err := config.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	schemaName := "ta-engine-config.json"
	schemaPath := filepath.Join(outputDir, schemaName)

	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0o644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}

	samplePath := filepath.Join(outputDir, "ta-engine-config.yaml")
	if _, err := os.Stat(samplePath); os.IsNotExist(err) {
		yamlBytes, err := yaml.Marshal(config)
		if err != nil {
			return fmt.Errorf("failed to marshal sample config: %w", err)
		}

		yamlBytes = append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), yamlBytes...)
		if err := os.WriteFile(samplePath, yamlBytes, 0o644); err != nil {
			return fmt.Errorf("failed to write sample config: %w", err)
		}

		fmt.Printf("Sample config generated at %s\n", samplePath)
	}

	fmt.Printf("Schema generated at %s\n", schemaPath)

	return nil
}

func main() {
	dateConfig := cli.TimestampConfig{
		Layouts: []string{"2006-01-02"},
	}

	cmd := &cli.Command{
		Name:    "ta",
		Usage:   "Compute technical indicators and signals over bar data",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "Run indicators over a bar CSV and write the enriched series",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Path to the bar CSV",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path for the enriched CSV",
						Value:   "enriched.csv",
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to a YAML config; defaults apply when omitted",
					},
				},
				Action: analyzeAction,
			},
			{
				Name:  "list",
				Usage: "List the indicators a configuration yields",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to a YAML config; defaults apply when omitted",
					},
				},
				Action: listAction,
			},
			{
				Name:  "download",
				Usage: "Download historical bars from a market data provider",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "symbol",
						Aliases:  []string{"t"},
						Usage:    "Ticker or trading pair symbol",
						Required: true,
					},
					&cli.TimestampFlag{
						Name:     "start",
						Aliases:  []string{"s"},
						Usage:    "Start date in `YYYY-MM-DD` format",
						Config:   dateConfig,
						Required: true,
					},
					&cli.TimestampFlag{
						Name:    "end",
						Aliases: []string{"e"},
						Usage:   "End date in `YYYY-MM-DD` format. Defaults to today.",
						Value:   time.Now(),
						Config:  dateConfig,
					},
					&cli.StringFlag{
						Name:  "interval",
						Usage: "Bar interval (1m, 5m, 15m, 30m, 1h, 4h, 1d, 1w)",
						Value: string(marketdata.Interval1d),
					},
					&cli.StringFlag{
						Name:    "provider",
						Aliases: []string{"p"},
						Usage:   fmt.Sprintf("Data provider (%s, %s)", marketdata.ProviderPolygon, marketdata.ProviderBinance),
						Value:   string(marketdata.ProviderPolygon),
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path for the bar CSV",
						Value:   "bars.csv",
					},
				},
				Action: downloadAction,
			},
			{
				Name:  "schema",
				Usage: "Generate the JSON schema and a sample YAML config",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
						Value:   "config",
					},
				},
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
