package collector

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"MarketPhase/internal/analyzer"
	"MarketPhase/internal/model"
)

// DefaultLimit is the candle window fetched per cycle.
const DefaultLimit = 200

// Collector orchestrates data fetching and indicator computation for one instrument.
type Collector struct {
	Fetcher  Fetcher
	Analyzer *analyzer.Analyzer
	Symbol   string
	Interval string
	Limit    int
}

// NewCollector creates a new Collector. It works on a copy of an whose timeframe follows interval.
func NewCollector(fetcher Fetcher, an *analyzer.Analyzer, symbol, interval string, limit int) *Collector {
	if an == nil {
		an = analyzer.New()
	} else {
		cp := *an
		an = &cp
	}
	an.Timeframe = interval
	if limit <= 0 {
		limit = max(DefaultLimit, an.MinCandles())
	}
	return &Collector{
		Fetcher:  fetcher,
		Analyzer: an,
		Symbol:   symbol,
		Interval: interval,
		Limit:    limit,
	}
}

// Collect fetches the latest candle batch and computes a snapshot from it.
func (c *Collector) Collect(ctx context.Context) (*model.IndicatorSnapshot, error) {
	candles, err := c.Fetcher.FetchCandles(ctx, c.Symbol, c.Interval, c.Limit)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s %s candles from %s", c.Symbol, c.Interval, c.Fetcher.Name())
	}
	log.WithFields(log.Fields{
		"symbol":   c.Symbol,
		"interval": c.Interval,
		"source":   c.Fetcher.Name(),
		"candles":  len(candles),
	}).Debug("candles fetched")

	snap, err := c.Analyzer.ComputeSymbolSnapshot(c.Symbol, candles)
	if err != nil {
		return nil, errors.Wrapf(err, "compute %s snapshot", c.Symbol)
	}
	return snap, nil
}
