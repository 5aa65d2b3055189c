package collector

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"github.com/pkg/errors"

	"MarketPhase/internal/model"
)

// maxBinanceKlines is the upper bound the klines endpoint accepts per request.
const maxBinanceKlines = 1000

// BinanceFetcher implements Fetcher using the Binance spot klines endpoint.
type BinanceFetcher struct {
	Client *binance.Client
}

// NewBinanceFetcher creates a new fetcher. An empty baseURL keeps the client default.
func NewBinanceFetcher(baseURL, proxyURL string) *BinanceFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	client := binance.NewClient("", "")
	if baseURL != "" {
		client.BaseURL = baseURL
	}
	client.HTTPClient = &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
	return &BinanceFetcher{Client: client}
}

func (f *BinanceFetcher) Name() string { return "binance" }

func (f *BinanceFetcher) FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]model.Candle, error) {
	if limit <= 0 || limit > maxBinanceKlines {
		limit = maxBinanceKlines
	}
	klines, err := f.Client.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		if isBinanceTransportError(err) {
			return nil, sourceUnavailable(err, "binance klines %s %s", symbol, interval)
		}
		return nil, malformed("binance klines %s %s: %v", symbol, interval, err)
	}

	candles := make([]model.Candle, 0, len(klines))
	for i, k := range klines {
		c, err := parseKline(k)
		if err != nil {
			return nil, malformed("binance kline %d of %s: %v", i, symbol, err)
		}
		candles = append(candles, c)
	}
	return normalize(candles)
}

// isBinanceTransportError reports whether err came from the exchange or the network
// rather than from decoding the klines payload.
func isBinanceTransportError(err error) bool {
	var apiErr *common.APIError
	var urlErr *url.Error
	var netErr net.Error
	return errors.As(err, &apiErr) || errors.As(err, &urlErr) || errors.As(err, &netErr) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func parseKline(k *binance.Kline) (model.Candle, error) {
	fields := []struct {
		name string
		raw  string
	}{
		{"open", k.Open}, {"high", k.High}, {"low", k.Low}, {"close", k.Close}, {"volume", k.Volume},
	}
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f.raw, 64)
		if err != nil {
			return model.Candle{}, fmt.Errorf("%s %q: %w", f.name, f.raw, err)
		}
		values[i] = v
	}
	return model.Candle{
		Timestamp: k.OpenTime,
		Open:      values[0],
		High:      values[1],
		Low:       values[2],
		Close:     values[3],
		Volume:    values[4],
	}, nil
}
