package calculator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomWalk(seed int64, n int, start float64) []float64 {
	r := rand.New(rand.NewSource(seed))
	prices := make([]float64, n)
	p := start
	for i := range prices {
		p += (r.Float64() - 0.5) * start * 0.04
		if p <= 0 {
			p = start * 0.01
		}
		prices[i] = p
	}
	return prices
}

func TestCalculateSMA(t *testing.T) {
	sma, ok := CalculateSMA([]float64{1, 2, 3, 4, 5}, 3)
	require.True(t, ok)
	assert.InDelta(t, 4.0, sma, 1e-12)

	_, ok = CalculateSMA([]float64{1, 2}, 3)
	assert.False(t, ok)

	_, ok = CalculateSMA([]float64{1, 2}, 0)
	assert.False(t, ok)
}

func TestCalculateRSI_HandCalculated(t *testing.T) {
	// deltas +1 +1 -1 seed avgGain=2/3 avgLoss=1/3
	// next delta +1: avgGain=7/9 avgLoss=2/9, RS=3.5
	rsi, ok := CalculateRSI([]float64{1, 2, 3, 2, 3}, 3)
	require.True(t, ok)
	assert.InDelta(t, 100-100/4.5, rsi, 1e-9)
}

func TestCalculateRSI_InsufficientData(t *testing.T) {
	_, ok := CalculateRSI([]float64{1, 2, 3}, 3)
	assert.False(t, ok)

	_, ok = CalculateRSI(nil, 14)
	assert.False(t, ok)

	_, ok = CalculateRSI([]float64{1, 2, 3}, 0)
	assert.False(t, ok)
}

func TestCalculateRSI_NoLosses(t *testing.T) {
	ascending := make([]float64, 30)
	for i := range ascending {
		ascending[i] = 100 + float64(i)
	}
	rsi, ok := CalculateRSI(ascending, 14)
	require.True(t, ok)
	assert.Equal(t, 100.0, rsi)

	flat := []float64{5, 5, 5, 5, 5, 6, 6, 6}
	rsi, ok = CalculateRSI(flat, 3)
	require.True(t, ok)
	assert.Equal(t, 100.0, rsi)
}

func TestCalculateRSI_OnlyLosses(t *testing.T) {
	descending := make([]float64, 20)
	for i := range descending {
		descending[i] = 100 - float64(i)
	}
	rsi, ok := CalculateRSI(descending, 14)
	require.True(t, ok)
	assert.InDelta(t, 0.0, rsi, 1e-12)
}

func TestCalculateRSI_Bounded(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		closes := randomWalk(seed, 200, 30000)
		rsi, ok := CalculateRSI(closes, 14)
		require.True(t, ok)
		assert.GreaterOrEqual(t, rsi, 0.0, "seed %d", seed)
		assert.LessOrEqual(t, rsi, 100.0, "seed %d", seed)
	}
}

func TestCalculateEMA_HandCalculated(t *testing.T) {
	// seed=(1+2+3)/3=2, k=0.5: 4 -> 3, 5 -> 4
	ema, ok := CalculateEMA([]float64{1, 2, 3, 4, 5}, 3)
	require.True(t, ok)
	assert.InDelta(t, 4.0, ema, 1e-12)
}

func TestCalculateEMA_SeedOnly(t *testing.T) {
	ema, ok := CalculateEMA([]float64{2, 4, 6}, 3)
	require.True(t, ok)
	assert.InDelta(t, 4.0, ema, 1e-12)

	_, ok = CalculateEMA([]float64{2, 4}, 3)
	assert.False(t, ok)
}

func TestCalculateEMA_WithinRange(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		closes := randomWalk(seed, 200, 100)
		lo, hi := closes[0], closes[0]
		for _, c := range closes {
			lo = min(lo, c)
			hi = max(hi, c)
		}
		for _, period := range []int{5, 50, 200} {
			ema, ok := CalculateEMA(closes, period)
			require.True(t, ok)
			assert.GreaterOrEqual(t, ema, lo-1e-9, "seed %d period %d", seed, period)
			assert.LessOrEqual(t, ema, hi+1e-9, "seed %d period %d", seed, period)
		}
	}
}

func TestCalculateMACD_HandCalculated(t *testing.T) {
	// fast=2 slow=3 signal=2 over 1..6
	// MACD line: 1/6, 7/18, 25/54; signal seed 5/18 -> 65/162
	got, ok := CalculateMACD([]float64{1, 2, 3, 4, 5, 6}, 2, 3, 2)
	require.True(t, ok)
	assert.InDelta(t, 25.0/54.0, got.MACD, 1e-12)
	assert.InDelta(t, 65.0/162.0, got.Signal, 1e-12)
	assert.InDelta(t, 5.0/81.0, got.Histogram, 1e-12)
}

func TestCalculateMACD_MinimumLength(t *testing.T) {
	closes := randomWalk(7, 35, 100)

	_, ok := CalculateMACD(closes[:34], 12, 26, 9)
	assert.False(t, ok)

	_, ok = CalculateMACD(closes, 12, 26, 9)
	assert.True(t, ok)

	_, ok = CalculateMACD(closes, 0, 26, 9)
	assert.False(t, ok)
}

func TestCalculateMACD_FlatSeries(t *testing.T) {
	flat := make([]float64, 60)
	for i := range flat {
		flat[i] = 42
	}
	got, ok := CalculateMACD(flat, 12, 26, 9)
	require.True(t, ok)
	assert.InDelta(t, 0.0, got.MACD, 1e-12)
	assert.InDelta(t, 0.0, got.Signal, 1e-12)
	assert.InDelta(t, 0.0, got.Histogram, 1e-12)
}

func TestCalculateMACD_HistogramIdentity(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		got, ok := CalculateMACD(randomWalk(seed, 200, 60000), 12, 26, 9)
		require.True(t, ok)
		assert.InDelta(t, got.MACD-got.Signal, got.Histogram, 1e-9, "seed %d", seed)
	}
}

func TestCalculateBollinger_HandCalculated(t *testing.T) {
	// mean 5, population std dev 2
	bands, ok := CalculateBollinger([]float64{2, 4, 4, 4, 5, 5, 7, 9}, 8, 2)
	require.True(t, ok)
	assert.InDelta(t, 5.0, bands.Middle, 1e-12)
	assert.InDelta(t, 9.0, bands.Upper, 1e-12)
	assert.InDelta(t, 1.0, bands.Lower, 1e-12)
}

func TestCalculateBollinger_UsesLastWindow(t *testing.T) {
	bands, ok := CalculateBollinger([]float64{1000, 2, 4, 4, 4, 5, 5, 7, 9}, 8, 2)
	require.True(t, ok)
	assert.InDelta(t, 5.0, bands.Middle, 1e-12)

	_, ok = CalculateBollinger([]float64{1, 2, 3}, 20, 2)
	assert.False(t, ok)
}

func TestCalculateBollinger_FlatWindow(t *testing.T) {
	flat := []float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1}
	bands, ok := CalculateBollinger(flat, 5, 2)
	require.True(t, ok)
	assert.False(t, bands.Upper < bands.Middle || bands.Middle < bands.Lower)
	assert.InDelta(t, 0.1, bands.Middle, 1e-12)
}

func TestCalculateBollinger_Symmetric(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		bands, ok := CalculateBollinger(randomWalk(seed, 200, 60000), 20, 2)
		require.True(t, ok)
		assert.InDelta(t, bands.Upper-bands.Middle, bands.Middle-bands.Lower, 1e-6, "seed %d", seed)
		assert.GreaterOrEqual(t, bands.Upper, bands.Middle)
		assert.GreaterOrEqual(t, bands.Middle, bands.Lower)
	}
}
