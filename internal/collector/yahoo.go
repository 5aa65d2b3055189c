package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"MarketPhase/internal/model"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using Yahoo Finance public API.
type YahooFetcher struct {
	BaseURL   string
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		BaseURL: defaultYahooBaseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		SymbolMap: map[string]string{
			"BTCUSDT": "BTC-USD",
			"ETHUSDT": "ETH-USD",
			"SPX500":  "^GSPC",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Exchange-traded symbols only print bars on trading days, so bar counts are
// converted to calendar days at stock density before picking a range. Crypto
// gets more bars than needed and trim drops the surplus.
const (
	calendarPerTradingDay = 365.0 / 252.0
	hourlyBarsPerSession  = 7.0
	yahooMaxHourlyDays    = 730
)

var yahooRanges = []struct {
	name string
	days int
}{
	{"1mo", 31},
	{"3mo", 92},
	{"6mo", 183},
	{"1y", 365},
	{"2y", 730},
	{"5y", 1826},
	{"10y", 3652},
}

// yahooRange returns the shortest range spanning days, capped at maxDays (0 means uncapped).
func yahooRange(days float64, maxDays int) string {
	best := yahooRanges[0].name
	for _, r := range yahooRanges {
		if maxDays > 0 && r.days > maxDays {
			break
		}
		best = r.name
		if float64(r.days) >= days {
			return best
		}
	}
	if maxDays == 0 {
		return "max"
	}
	return best
}

// yahooInterval maps a candle interval to the Yahoo interval and the range covering limit bars.
func yahooInterval(interval string, limit int) (string, string, error) {
	bars := float64(max(limit, 1))
	switch interval {
	case "1d":
		return "1d", yahooRange(bars*calendarPerTradingDay, 0), nil
	case "1w", "1wk":
		return "1wk", yahooRange(bars*7, 0), nil
	case "1h":
		// Yahoo keeps at most 730 days of hourly bars
		return "1h", yahooRange(math.Ceil(bars/hourlyBarsPerSession)*calendarPerTradingDay, yahooMaxHourlyDays), nil
	}
	return "", "", fmt.Errorf("yahoo: unsupported interval %q", interval)
}

func (f *YahooFetcher) FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]model.Candle, error) {
	yInterval, rng, err := yahooInterval(interval, limit)
	if err != nil {
		return nil, err
	}
	candles, err := f.fetchChart(ctx, symbol, yInterval, rng)
	if err != nil {
		return nil, err
	}
	return trim(candles, limit), nil
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol, interval, rng string) ([]model.Candle, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), interval, rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, sourceUnavailable(err, "yahoo fetch %s", symbol)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, sourceUnavailable(err, "yahoo read body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, sourceUnavailable(fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body)), "yahoo %s", symbol)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, malformed("yahoo decode: %v", err)
	}
	if chart.Chart.Error != nil {
		return nil, sourceUnavailable(fmt.Errorf("%s", chart.Chart.Error.Description), "yahoo api error %s", chart.Chart.Error.Code)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, sourceUnavailable(fmt.Errorf("no data returned"), "yahoo %s", symbol)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, malformed("yahoo: no quote block")
	}
	quote := result.Indicators.Quote[0]
	n := len(result.Timestamp)
	if len(quote.Open) != n || len(quote.High) != n || len(quote.Low) != n || len(quote.Close) != n {
		return nil, malformed("yahoo: %d timestamps but quote arrays of %d/%d/%d/%d",
			n, len(quote.Open), len(quote.High), len(quote.Low), len(quote.Close))
	}

	candles := make([]model.Candle, 0, n)
	for i, ts := range result.Timestamp {
		o, h, l, c := quote.Open[i], quote.High[i], quote.Low[i], quote.Close[i]
		if o == nil && h == nil && l == nil && c == nil {
			continue // skip null bars (holidays etc.)
		}
		if o == nil || h == nil || l == nil || c == nil {
			return nil, malformed("yahoo: partial bar at ts=%d", ts)
		}
		var vol float64
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			vol = *quote.Volume[i]
		}
		candles = append(candles, model.Candle{
			Timestamp: ts * 1000,
			Open:      *o,
			High:      *h,
			Low:       *l,
			Close:     *c,
			Volume:    vol,
		})
	}
	return normalize(candles)
}
