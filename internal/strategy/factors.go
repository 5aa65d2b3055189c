package strategy

import "MarketPhase/internal/model"

// Inputs are the readings the scorer combines.
type Inputs struct {
	RSI       float64
	Histogram float64
	EMA50     float64
	EMA200    float64
	Price     float64
}

// factor is one additive rule of the score.
type factor struct {
	Name   string
	Weight int
	Eval   func(in Inputs) (pass bool, tag model.SignalTag, tagged bool)
}

const (
	rsiHealthyLow  = 40.0
	rsiHealthyHigh = 70.0
)

// Factors is evaluated in order; emitted tags follow the same order.
var Factors = []factor{
	{Name: "rsi", Weight: 20, Eval: scoreRSI},
	{Name: "macd", Weight: 25, Eval: scoreMACD},
	{Name: "ema_cross", Weight: 30, Eval: scoreEMACross},
	{Name: "price_ema50", Weight: 15, Eval: scorePriceAboveEMA50},
	{Name: "price_ema200", Weight: 10, Eval: scorePriceAboveEMA200},
}

// scoreRSI passes inside the 40..70 band (inclusive).
func scoreRSI(in Inputs) (bool, model.SignalTag, bool) {
	switch {
	case in.RSI > rsiHealthyHigh:
		return false, model.TagRSIOverbought, true
	case in.RSI < rsiHealthyLow:
		return false, model.TagRSIWeak, true
	default:
		return true, model.TagRSIHealthy, true
	}
}

func scoreMACD(in Inputs) (bool, model.SignalTag, bool) {
	if in.Histogram > 0 {
		return true, model.TagMACDPositive, true
	}
	return false, model.TagMACDNegative, true
}

// scoreEMACross: EMA50 above EMA200 is a golden cross, anything else a death cross.
func scoreEMACross(in Inputs) (bool, model.SignalTag, bool) {
	if in.EMA50 > in.EMA200 {
		return true, model.TagGoldenCross, true
	}
	return false, model.TagDeathCross, true
}

func scorePriceAboveEMA50(in Inputs) (bool, model.SignalTag, bool) {
	if in.Price > in.EMA50 {
		return true, model.TagPriceAboveEMAShort, true
	}
	return false, 0, false
}

func scorePriceAboveEMA200(in Inputs) (bool, model.SignalTag, bool) {
	if in.Price > in.EMA200 {
		return true, model.TagPriceAboveEMALong, true
	}
	return false, 0, false
}
