package model

import "time"

// Candle represents a single OHLCV bar. Timestamp is the bar open time in epoch milliseconds.
type Candle struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// Time returns the bar open time.
func (c Candle) Time() time.Time {
	return time.UnixMilli(c.Timestamp)
}

// Closes extracts the closing prices of the given candles, oldest first.
func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}
