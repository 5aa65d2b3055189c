package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Failure kinds used as the "kind" label of RefreshFailures.
const (
	KindInsufficientData  = "insufficient_data"
	KindSourceUnavailable = "source_unavailable"
	KindMalformedInput    = "malformed_input"
	KindOther             = "other"
)

// Metrics holds the Prometheus metrics of the refresh loop.
type Metrics struct {
	RefreshTotal    *prometheus.CounterVec   // labels: symbol
	RefreshFailures *prometheus.CounterVec   // labels: symbol, kind
	RefreshDuration *prometheus.HistogramVec // labels: symbol
	StaleDiscarded  prometheus.Counter
	PhaseChanges    *prometheus.CounterVec // labels: symbol

	BullScore    *prometheus.GaugeVec // labels: symbol
	RSI          *prometheus.GaugeVec // labels: symbol
	MACDHist     *prometheus.GaugeVec // labels: symbol
	BollSpread   *prometheus.GaugeVec // labels: symbol
	LastSnapshot *prometheus.GaugeVec // labels: symbol

	registry *prometheus.Registry
}

// NewMetrics creates all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RefreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketphase_refresh_total",
			Help: "Total refresh cycles started",
		}, []string{"symbol"}),
		RefreshFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketphase_refresh_failures_total",
			Help: "Refresh cycles that produced no snapshot, by failure kind",
		}, []string{"symbol", "kind"}),
		RefreshDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "marketphase_refresh_duration_seconds",
			Help:    "Candle fetch plus indicator computation time",
			Buckets: prometheus.DefBuckets,
		}, []string{"symbol"}),
		StaleDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "marketphase_stale_snapshots_total",
			Help: "Snapshots dropped because a newer one was already cached",
		}),
		PhaseChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketphase_phase_changes_total",
			Help: "Market phase transitions observed",
		}, []string{"symbol"}),
		BullScore: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "marketphase_bull_score",
			Help: "Latest bull-market score (0-100)",
		}, []string{"symbol"}),
		RSI: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "marketphase_rsi",
			Help: "Latest RSI value",
		}, []string{"symbol"}),
		MACDHist: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "marketphase_macd_histogram",
			Help: "Latest MACD histogram",
		}, []string{"symbol"}),
		BollSpread: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "marketphase_bollinger_spread",
			Help: "Latest Bollinger upper-lower spread",
		}, []string{"symbol"}),
		LastSnapshot: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "marketphase_last_snapshot_timestamp_seconds",
			Help: "Unix time of the cached snapshot",
		}, []string{"symbol"}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.RefreshTotal,
		m.RefreshFailures,
		m.RefreshDuration,
		m.StaleDiscarded,
		m.PhaseChanges,
		m.BullScore,
		m.RSI,
		m.MACDHist,
		m.BollSpread,
		m.LastSnapshot,
	)
	return m
}

// Registry returns the registry holding these metrics.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
