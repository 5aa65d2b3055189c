package collector

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/pkg/errors"

	"MarketPhase/internal/model"
)

var (
	// ErrSourceUnavailable wraps transport, HTTP and API failures of a candle source.
	ErrSourceUnavailable = errors.New("candle source unavailable")
	// ErrMalformedInput wraps candle batches with missing or non-numeric OHLC fields.
	ErrMalformedInput = errors.New("malformed candle data")
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchCandles returns up to limit candles for symbol at interval, oldest first.
	FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]model.Candle, error)
	Name() string
}

func sourceUnavailable(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, fmt.Sprintf(format, args...), err)
}

func malformed(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedInput, format, args...)
}

// normalize sorts candles chronologically and rejects non-finite or non-positive prices.
func normalize(candles []model.Candle) ([]model.Candle, error) {
	sort.SliceStable(candles, func(i, j int) bool { return candles[i].Timestamp < candles[j].Timestamp })
	for i, c := range candles {
		for _, v := range []float64{c.Open, c.High, c.Low, c.Close} {
			if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
				return nil, malformed("candle %d (ts=%d): invalid price %v", i, c.Timestamp, v)
			}
		}
		if math.IsNaN(c.Volume) || c.Volume < 0 {
			return nil, malformed("candle %d (ts=%d): invalid volume %v", i, c.Timestamp, c.Volume)
		}
	}
	return candles, nil
}

// trim keeps the most recent limit candles.
func trim(candles []model.Candle, limit int) []model.Candle {
	if limit > 0 && len(candles) > limit {
		return candles[len(candles)-limit:]
	}
	return candles
}
