package calculator

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Bands is a Bollinger Bands reading.
type Bands struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// CalculateBollinger computes Bollinger Bands over the last `period` closes using the
// population standard deviation (divisor = period).
func CalculateBollinger(closes []float64, period int, multiplier float64) (Bands, bool) {
	if period <= 0 || len(closes) < period {
		return Bands{}, false
	}
	window := closes[len(closes)-period:]
	middle := stat.Mean(window, nil)
	// second central moment: mean of squared deviations, never negative
	std := math.Sqrt(stat.MomentAbout(2, window, middle, nil))
	return Bands{
		Upper:  middle + multiplier*std,
		Middle: middle,
		Lower:  middle - multiplier*std,
	}, true
}
