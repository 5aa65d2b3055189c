package calculator

// MACD is the last point of the MACD line, its signal line and the histogram.
type MACD struct {
	MACD      float64
	Signal    float64
	Histogram float64
}

// CalculateMACD computes MACD(fast, slow, signal) over closes.
//
// Both EMAs are seeded with the simple average of their own first N closes and are
// then stepped together from index max(fast, slow); every step contributes one point
// of the MACD line. The signal line is the EMA of that line.
// Requires at least max(fast, slow)+signal closes.
func CalculateMACD(closes []float64, fast, slow, signal int) (MACD, bool) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return MACD{}, false
	}
	start := max(fast, slow)
	if len(closes) < start+signal {
		return MACD{}, false
	}

	fastEMA, _ := CalculateSMA(closes[:fast], fast)
	slowEMA, _ := CalculateSMA(closes[:slow], slow)
	fastK := emaMultiplier(fast)
	slowK := emaMultiplier(slow)

	line := make([]float64, 0, len(closes)-start)
	for i := start; i < len(closes); i++ {
		fastEMA = emaStep(fastEMA, closes[i], fastK)
		slowEMA = emaStep(slowEMA, closes[i], slowK)
		line = append(line, fastEMA-slowEMA)
	}

	sig, ok := CalculateEMA(line, signal)
	if !ok {
		return MACD{}, false
	}
	last := line[len(line)-1]
	return MACD{
		MACD:      last,
		Signal:    sig,
		Histogram: last - sig,
	}, true
}
