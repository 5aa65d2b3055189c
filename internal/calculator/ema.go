package calculator

// emaMultiplier returns the smoothing constant k = 2/(period+1).
func emaMultiplier(period int) float64 {
	return 2.0 / float64(period+1)
}

// emaStep applies one EMA recurrence step.
func emaStep(prev, price, k float64) float64 {
	return price*k + prev*(1-k)
}

// CalculateEMA computes the exponential moving average of prices, seeded with
// the simple average of the first `period` prices. Only the final value is returned.
func CalculateEMA(prices []float64, period int) (float64, bool) {
	if period <= 0 || len(prices) < period {
		return 0, false
	}
	ema, _ := CalculateSMA(prices[:period], period)
	k := emaMultiplier(period)
	for _, p := range prices[period:] {
		ema = emaStep(ema, p, k)
	}
	return ema, true
}
