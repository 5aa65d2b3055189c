// Package analyzer turns one candle batch into an IndicatorSnapshot.
package analyzer

import (
	"time"

	"MarketPhase/internal/calculator"
	"MarketPhase/internal/model"
	"MarketPhase/internal/strategy"
)

// Periods configures the indicator lookbacks.
type Periods struct {
	RSI                 int     `yaml:"rsi_period"`
	MACDFast            int     `yaml:"macd_fast"`
	MACDSlow            int     `yaml:"macd_slow"`
	MACDSignal          int     `yaml:"macd_signal"`
	BollingerPeriod     int     `yaml:"bollinger_period"`
	BollingerMultiplier float64 `yaml:"bollinger_multiplier"`
	EMAShort            int     `yaml:"ema_short"`
	EMALong             int     `yaml:"ema_long"`
}

// DefaultPeriods returns RSI 14, MACD 12/26/9, Bollinger 20/2, EMA 50/200.
func DefaultPeriods() Periods {
	return Periods{
		RSI:                 14,
		MACDFast:            12,
		MACDSlow:            26,
		MACDSignal:          9,
		BollingerPeriod:     20,
		BollingerMultiplier: 2,
		EMAShort:            50,
		EMALong:             200,
	}
}

// VolatilityThresholds classify the Bollinger spread in absolute price units.
type VolatilityThresholds struct {
	High float64 `yaml:"volatility_high"`
	Low  float64 `yaml:"volatility_low"`
}

// DefaultVolatilityThresholds returns high 20000 / low 10000.
func DefaultVolatilityThresholds() VolatilityThresholds {
	return VolatilityThresholds{High: 20000, Low: 10000}
}

// Classify maps a spread to a volatility band: above High is high, below Low is low.
func (v VolatilityThresholds) Classify(spread float64) model.Volatility {
	switch {
	case spread > v.High:
		return model.VolatilityHigh
	case spread < v.Low:
		return model.VolatilityLow
	default:
		return model.VolatilityNormal
	}
}

// Analyzer computes snapshots. It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	Periods    Periods
	Volatility VolatilityThresholds
	Timeframe  string
	Now        func() time.Time
}

// New creates an Analyzer with the default periods and thresholds.
func New() *Analyzer {
	return &Analyzer{
		Periods:    DefaultPeriods(),
		Volatility: DefaultVolatilityThresholds(),
		Timeframe:  "1d",
		Now:        time.Now,
	}
}

// Requirements returns the minimum number of closes each indicator needs.
func (a *Analyzer) Requirements() map[model.IndicatorKind]int {
	p := a.Periods
	return map[model.IndicatorKind]int{
		model.IndicatorRSI:       p.RSI + 1,
		model.IndicatorMACD:      max(p.MACDFast, p.MACDSlow) + p.MACDSignal,
		model.IndicatorBollinger: p.BollingerPeriod,
		model.IndicatorEMAShort:  p.EMAShort,
		model.IndicatorEMALong:   p.EMALong,
	}
}

// MinCandles returns the batch size needed for a complete snapshot.
func (a *Analyzer) MinCandles() int {
	need := 0
	for _, n := range a.Requirements() {
		need = max(need, n)
	}
	return need
}

// ComputeSnapshot computes every indicator over the closes of candles and scores them.
// If any indicator cannot be computed it returns an *InsufficientDataError and no snapshot.
func (a *Analyzer) ComputeSnapshot(candles []model.Candle) (*model.IndicatorSnapshot, error) {
	return a.ComputeSymbolSnapshot("", candles)
}

// ComputeSymbolSnapshot is ComputeSnapshot with the instrument symbol recorded on the snapshot.
func (a *Analyzer) ComputeSymbolSnapshot(symbol string, candles []model.Candle) (*model.IndicatorSnapshot, error) {
	p := a.Periods
	closes := model.Closes(candles)

	var missing []model.IndicatorKind

	rsi, ok := calculator.CalculateRSI(closes, p.RSI)
	if !ok {
		missing = append(missing, model.IndicatorRSI)
	}
	macd, ok := calculator.CalculateMACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
	if !ok {
		missing = append(missing, model.IndicatorMACD)
	}
	bands, ok := calculator.CalculateBollinger(closes, p.BollingerPeriod, p.BollingerMultiplier)
	if !ok {
		missing = append(missing, model.IndicatorBollinger)
	}
	emaShort, ok := calculator.CalculateEMA(closes, p.EMAShort)
	if !ok {
		missing = append(missing, model.IndicatorEMAShort)
	}
	emaLong, ok := calculator.CalculateEMA(closes, p.EMALong)
	if !ok {
		missing = append(missing, model.IndicatorEMALong)
	}

	if len(missing) > 0 {
		return nil, &InsufficientDataError{Missing: missing, Have: len(closes), Need: a.MinCandles()}
	}

	price := closes[len(closes)-1]
	bollinger := model.BollingerResult{
		Upper:      bands.Upper,
		Middle:     bands.Middle,
		Lower:      bands.Lower,
		Period:     p.BollingerPeriod,
		Multiplier: p.BollingerMultiplier,
	}

	snap := &model.IndicatorSnapshot{
		Symbol:       symbol,
		Interval:     a.Timeframe,
		CurrentPrice: price,
		Timestamp:    a.now(),
		RSI:          model.RSIResult{Value: rsi, Period: p.RSI, Timeframe: a.Timeframe},
		MACD: model.MACDResult{
			MACD:         macd.MACD,
			Signal:       macd.Signal,
			Histogram:    macd.Histogram,
			FastPeriod:   p.MACDFast,
			SlowPeriod:   p.MACDSlow,
			SignalPeriod: p.MACDSignal,
			Timeframe:    a.Timeframe,
		},
		Bollinger:  bollinger,
		EMA:        model.NewEMATrend(emaShort, emaLong),
		Volatility: a.Volatility.Classify(bollinger.Spread()),
		Score: strategy.Evaluate(strategy.Inputs{
			RSI:       rsi,
			Histogram: macd.Histogram,
			EMA50:     emaShort,
			EMA200:    emaLong,
			Price:     price,
		}),
	}
	return snap, nil
}

func (a *Analyzer) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}
