package collector

import (
	"context"
	"time"

	"MarketPhase/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price   float64
	Candles []model.Candle
	Err     error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchCandles(_ context.Context, _, _ string, limit int) ([]model.Candle, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Candles != nil {
		return trim(m.Candles, limit), nil
	}
	return generateMockCandles(m.Price, limit), nil
}

// generateMockCandles rises for the first three quarters of the window and stays flat after.
func generateMockCandles(basePrice float64, count int) []model.Candle {
	candles := make([]model.Candle, count)
	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -count)
	rise := count * 3 / 4
	for i := 0; i < count; i++ {
		step := min(i, rise)
		p := basePrice * (1 + float64(step)*0.002)
		candles[i] = model.Candle{
			Timestamp: start.AddDate(0, 0, i).UnixMilli(),
			Open:      p * 0.999,
			High:      p * 1.005,
			Low:       p * 0.995,
			Close:     p,
			Volume:    1000000,
		}
	}
	return candles
}
