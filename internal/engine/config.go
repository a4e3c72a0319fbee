package engine

import (
	"encoding/json"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/quantgrid/ta-engine/internal/indicator"
	"github.com/quantgrid/ta-engine/internal/types"
	"github.com/quantgrid/ta-engine/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the parameters of every indicator the engine computes.
// Configuration lives with the caller and is passed into every Analyze
// call; the engine keeps no state between calls.
type Config struct {
	RSI        RSIConfig        `yaml:"rsi" json:"rsi"`
	MACD       MACDConfig       `yaml:"macd" json:"macd"`
	Bollinger  BollingerConfig  `yaml:"bollinger_bands" json:"bollinger_bands"`
	Crossover  CrossoverConfig  `yaml:"ma_crossover" json:"ma_crossover"`
	Volume     VolumeConfig     `yaml:"volume" json:"volume"`
	ADX        ADXConfig        `yaml:"adx" json:"adx"`
	ATR        ATRConfig        `yaml:"atr" json:"atr"`
	CCI        CCIConfig        `yaml:"cci" json:"cci"`
	Stochastic StochasticConfig `yaml:"stochastic" json:"stochastic"`
	ROC        ROCConfig        `yaml:"roc" json:"roc"`
	MFI        MFIConfig        `yaml:"mfi" json:"mfi"`
}

// RSIConfig configures the RSI indicator.
type RSIConfig struct {
	Period int                 `yaml:"period" json:"period" validate:"min=1"`
	Lower  float64             `yaml:"lower" json:"lower" validate:"min=0,max=100"`
	Upper  float64             `yaml:"upper" json:"upper" validate:"min=0,max=100,gtfield=Lower"`
	Method indicator.RSIMethod `yaml:"method" json:"method" validate:"oneof=simple wilder"`
}

// MACDConfig configures the MACD indicator.
type MACDConfig struct {
	FastPeriod   int `yaml:"fast_period" json:"fast_period" validate:"min=1"`
	SlowPeriod   int `yaml:"slow_period" json:"slow_period" validate:"min=1,gtfield=FastPeriod"`
	SignalPeriod int `yaml:"signal_period" json:"signal_period" validate:"min=1"`
}

// BollingerConfig configures the Bollinger Bands indicator.
type BollingerConfig struct {
	Period     int     `yaml:"period" json:"period" validate:"min=1"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier" validate:"gt=0"`
}

// CrossoverConfig configures the moving-average crossover indicator.
type CrossoverConfig struct {
	ShortPeriod int `yaml:"short_period" json:"short_period" validate:"min=1"`
	LongPeriod  int `yaml:"long_period" json:"long_period" validate:"min=1,gtfield=ShortPeriod"`
}

// VolumeConfig configures the volume moving-average indicator.
type VolumeConfig struct {
	Period          int     `yaml:"period" json:"period" validate:"min=1"`
	SpikeMultiplier float64 `yaml:"spike_multiplier" json:"spike_multiplier" validate:"gt=0"`
}

// ADXConfig configures the ADX indicator.
type ADXConfig struct {
	Period    int     `yaml:"period" json:"period" validate:"min=1"`
	Threshold float64 `yaml:"threshold" json:"threshold" validate:"gt=0"`
}

// ATRConfig configures the ATR indicator.
type ATRConfig struct {
	Period int `yaml:"period" json:"period" validate:"min=1"`
}

// CCIConfig configures the CCI indicator.
type CCIConfig struct {
	Period int     `yaml:"period" json:"period" validate:"min=1"`
	Lower  float64 `yaml:"lower" json:"lower"`
	Upper  float64 `yaml:"upper" json:"upper" validate:"gtfield=Lower"`
}

// StochasticConfig configures the stochastic oscillator.
type StochasticConfig struct {
	Period       int     `yaml:"period" json:"period" validate:"min=1"`
	SignalPeriod int     `yaml:"signal_period" json:"signal_period" validate:"min=1"`
	Lower        float64 `yaml:"lower" json:"lower" validate:"min=0,max=100"`
	Upper        float64 `yaml:"upper" json:"upper" validate:"min=0,max=100,gtfield=Lower"`
}

// ROCConfig configures the rate-of-change indicator.
type ROCConfig struct {
	Period int `yaml:"period" json:"period" validate:"min=1"`
}

// MFIConfig configures the Money Flow Index indicator.
type MFIConfig struct {
	Period int     `yaml:"period" json:"period" validate:"min=1"`
	Lower  float64 `yaml:"lower" json:"lower" validate:"min=0,max=100"`
	Upper  float64 `yaml:"upper" json:"upper" validate:"min=0,max=100,gtfield=Lower"`
}

// DefaultConfig returns the documented default parameters for every
// indicator.
func DefaultConfig() Config {
	return Config{
		RSI: RSIConfig{
			Period: 14,
			Lower:  30,
			Upper:  70,
			Method: indicator.RSIMethodSimple,
		},
		MACD: MACDConfig{
			FastPeriod:   12,
			SlowPeriod:   26,
			SignalPeriod: 9,
		},
		Bollinger: BollingerConfig{
			Period:     20,
			Multiplier: 2,
		},
		Crossover: CrossoverConfig{
			ShortPeriod: 50,
			LongPeriod:  200,
		},
		Volume: VolumeConfig{
			Period:          20,
			SpikeMultiplier: 1.5,
		},
		ADX: ADXConfig{
			Period:    14,
			Threshold: 25,
		},
		ATR: ATRConfig{
			Period: 14,
		},
		CCI: CCIConfig{
			Period: 20,
			Lower:  -100,
			Upper:  100,
		},
		Stochastic: StochasticConfig{
			Period:       14,
			SignalPeriod: 3,
			Lower:        20,
			Upper:        80,
		},
		ROC: ROCConfig{
			Period: 12,
		},
		MFI: MFIConfig{
			Period: 14,
			Lower:  20,
			Upper:  80,
		},
	}
}

// ParseConfig parses a YAML document into a Config. Omitted indicator
// sections fall back to their defaults; the merged result is validated as
// a whole.
func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse engine config", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read engine config %s", path)
	}

	return ParseConfig(data)
}

// GenerateSchema reflects a JSON schema for the config, for editor
// completion of config files.
func (c *Config) GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(c)
}

// GenerateSchemaJSON renders the config schema as indented JSON.
func (c *Config) GenerateSchemaJSON() (string, error) {
	schemaBytes, err := json.MarshalIndent(c.GenerateSchema(), "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

var validate = validator.New()

// Validate checks every indicator section against its constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid engine config", err)
	}

	return nil
}

// validateSection checks one indicator's config section in isolation, so a
// bad section fails only that indicator. A nil section (indicators without
// parameters) always passes.
func validateSection(name types.IndicatorType, section any) error {
	if section == nil {
		return nil
	}

	if err := validate.Struct(section); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid %s config", name)
	}

	return nil
}
