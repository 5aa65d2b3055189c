package model

import "time"

// IndicatorSnapshot is the full set of indicators computed from one candle batch.
// It is built once and never modified.
type IndicatorSnapshot struct {
	Symbol       string          `json:"symbol"`
	Interval     string          `json:"interval"`
	CurrentPrice float64         `json:"current_price"`
	Timestamp    time.Time       `json:"timestamp"`
	RSI          RSIResult       `json:"rsi"`
	MACD         MACDResult      `json:"macd"`
	Bollinger    BollingerResult `json:"bollinger"`
	EMA          EMATrend        `json:"ema"`
	Volatility   Volatility      `json:"volatility"`
	Score        BullMarketScore `json:"score"`
}

// Newer reports whether s was computed after other. A nil other is always older.
func (s *IndicatorSnapshot) Newer(other *IndicatorSnapshot) bool {
	if other == nil {
		return true
	}
	return s.Timestamp.After(other.Timestamp)
}
