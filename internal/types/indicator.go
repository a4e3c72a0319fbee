package types

type IndicatorType string

const (
	IndicatorTypeRSI            IndicatorType = "rsi"
	IndicatorTypeMACD           IndicatorType = "macd"
	IndicatorTypeBollingerBands IndicatorType = "bollinger_bands"
	IndicatorTypeMACrossover    IndicatorType = "ma_crossover"
	IndicatorTypeVolume         IndicatorType = "volume"
	IndicatorTypeADX            IndicatorType = "adx"
	IndicatorTypeOBV            IndicatorType = "obv"
	IndicatorTypeVWAP           IndicatorType = "vwap"
	IndicatorTypeATR            IndicatorType = "atr"
	IndicatorTypeCCI            IndicatorType = "cci"
	IndicatorTypeStochastic     IndicatorType = "stochastic_oscillator"
	IndicatorTypeROC            IndicatorType = "roc"
	IndicatorTypeMFI            IndicatorType = "mfi"
)

// Field identifies one numeric column produced by an indicator. A single
// indicator may produce several fields (MACD produces three).
type Field string

const (
	FieldRSI             Field = "rsi"
	FieldMACD            Field = "macd"
	FieldMACDSignal      Field = "macd_signal"
	FieldMACDHistogram   Field = "macd_histogram"
	FieldBollingerUpper  Field = "bb_upper"
	FieldBollingerMiddle Field = "bb_middle"
	FieldBollingerLower  Field = "bb_lower"
	FieldShortMA         Field = "ma_short"
	FieldLongMA          Field = "ma_long"
	FieldVolumeMA        Field = "volume_ma"
	FieldADX             Field = "adx"
	FieldOBV             Field = "obv"
	FieldVWAP            Field = "vwap"
	FieldATR             Field = "atr"
	FieldCCI             Field = "cci"
	FieldStochasticK     Field = "stoch_k"
	FieldStochasticD     Field = "stoch_d"
	FieldROC             Field = "roc"
	FieldMFI             Field = "mfi"
)
