package calculator

import "gonum.org/v1/gonum/stat"

// CalculateSMA computes the simple moving average of the last `period` prices.
// The second return value is false when period is not positive or there are fewer than period prices.
func CalculateSMA(prices []float64, period int) (float64, bool) {
	if period <= 0 || len(prices) < period {
		return 0, false
	}
	return stat.Mean(prices[len(prices)-period:], nil), true
}
