package model

// IndicatorKind identifies one of the indicators a snapshot requires.
type IndicatorKind int

const (
	IndicatorRSI IndicatorKind = iota
	IndicatorMACD
	IndicatorBollinger
	IndicatorEMAShort
	IndicatorEMALong
)

// AllIndicators lists every indicator a snapshot is built from, in evaluation order.
var AllIndicators = []IndicatorKind{
	IndicatorRSI,
	IndicatorMACD,
	IndicatorBollinger,
	IndicatorEMAShort,
	IndicatorEMALong,
}

func (k IndicatorKind) String() string {
	switch k {
	case IndicatorRSI:
		return "rsi"
	case IndicatorMACD:
		return "macd"
	case IndicatorBollinger:
		return "bollinger"
	case IndicatorEMAShort:
		return "ema_short"
	case IndicatorEMALong:
		return "ema_long"
	}
	return "unknown"
}

// RSIResult is a relative strength index reading.
type RSIResult struct {
	Value     float64 `json:"value"`
	Period    int     `json:"period"`
	Timeframe string  `json:"timeframe"`
}

// MACDResult holds the last MACD line, signal line and histogram values.
// Histogram is always MACD - Signal.
type MACDResult struct {
	MACD         float64 `json:"macd"`
	Signal       float64 `json:"signal"`
	Histogram    float64 `json:"histogram"`
	FastPeriod   int     `json:"fast_period"`
	SlowPeriod   int     `json:"slow_period"`
	SignalPeriod int     `json:"signal_period"`
	Timeframe    string  `json:"timeframe"`
}

// BollingerResult holds the bands over the most recent window. Upper >= Middle >= Lower.
type BollingerResult struct {
	Upper      float64 `json:"upper"`
	Middle     float64 `json:"middle"`
	Lower      float64 `json:"lower"`
	Period     int     `json:"period"`
	Multiplier float64 `json:"multiplier"`
}

// Spread returns the distance between the upper and lower band.
func (b BollingerResult) Spread() float64 {
	return b.Upper - b.Lower
}

// Volatility classifies a Bollinger spread.
type Volatility int

const (
	VolatilityLow Volatility = iota
	VolatilityNormal
	VolatilityHigh
)

func (v Volatility) String() string {
	switch v {
	case VolatilityLow:
		return "low"
	case VolatilityNormal:
		return "normal"
	case VolatilityHigh:
		return "high"
	}
	return "unknown"
}

// MarshalText encodes the stable identifier.
func (v Volatility) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Trend is the direction implied by the short/long EMA pair.
type Trend int

const (
	TrendNeutral Trend = iota
	TrendBullish
	TrendBearish
)

func (t Trend) String() string {
	switch t {
	case TrendNeutral:
		return "neutral"
	case TrendBullish:
		return "bullish"
	case TrendBearish:
		return "bearish"
	}
	return "unknown"
}

// MarshalText encodes the stable identifier.
func (t Trend) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// EMATrend compares the short (50) and long (200) exponential moving averages.
type EMATrend struct {
	EMA50  float64 `json:"ema50"`
	EMA200 float64 `json:"ema200"`
	Trend  Trend   `json:"trend"`
}

// NewEMATrend derives the trend from the two averages.
func NewEMATrend(ema50, ema200 float64) EMATrend {
	t := TrendNeutral
	switch {
	case ema50 > ema200:
		t = TrendBullish
	case ema50 < ema200:
		t = TrendBearish
	}
	return EMATrend{EMA50: ema50, EMA200: ema200, Trend: t}
}
