package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"MarketPhase/internal/analyzer"
	"MarketPhase/internal/collector"
	"MarketPhase/internal/metrics"
	"MarketPhase/internal/model"
	"MarketPhase/internal/notifier"
)

// Sender delivers report text to the user.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries uint64) error
}

// Scheduler refreshes the snapshot on a cron schedule and keeps the most recent one.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Notifier  Sender // optional
	Metrics   *metrics.Metrics
	Locale    string
	Ctx       context.Context

	mu     sync.RWMutex
	latest *model.IndicatorSnapshot
}

// NewScheduler creates a new Scheduler. sender may be nil.
func NewScheduler(ctx context.Context, col *collector.Collector, sender Sender, m *metrics.Metrics, lang string) *Scheduler {
	if m == nil {
		m = metrics.NewMetrics()
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Notifier:  sender,
		Metrics:   m,
		Locale:    lang,
		Ctx:       ctx,
	}
}

// RegisterAll registers the refresh task.
func (s *Scheduler) RegisterAll(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return errors.Wrap(err, "register refresh task")
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for running refreshes.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info("scheduler stopped")
}

// Latest returns the most recent snapshot, or nil before the first successful refresh.
func (s *Scheduler) Latest() *model.IndicatorSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

func (s *Scheduler) refreshTask() {
	if _, err := s.Refresh(s.Ctx); err != nil {
		s.reportFailure(err)
	}
}

// Refresh fetches a fresh candle batch, computes a snapshot and caches it unless a newer one is already cached.
func (s *Scheduler) Refresh(ctx context.Context) (*model.IndicatorSnapshot, error) {
	symbol := s.Collector.Symbol
	logger := log.WithField("symbol", symbol)
	s.Metrics.RefreshTotal.WithLabelValues(symbol).Inc()

	start := time.Now()
	snap, err := s.Collector.Collect(ctx)
	s.Metrics.RefreshDuration.WithLabelValues(symbol).Observe(time.Since(start).Seconds())
	if err != nil {
		s.Metrics.RefreshFailures.WithLabelValues(symbol, failureKind(err)).Inc()
		return nil, err
	}

	prev, stored := s.store(snap)
	if !stored {
		s.Metrics.StaleDiscarded.Inc()
		logger.WithField("timestamp", snap.Timestamp).Debug("discarded stale snapshot")
		return s.Latest(), nil
	}

	s.observe(snap)
	logger.WithFields(log.Fields{
		"price": snap.CurrentPrice,
		"score": snap.Score.Score,
		"phase": snap.Score.Phase,
	}).Info("snapshot refreshed")

	if prev != nil && prev.Score.Phase != snap.Score.Phase {
		s.Metrics.PhaseChanges.WithLabelValues(symbol).Inc()
		logger.WithFields(log.Fields{"from": prev.Score.Phase, "to": snap.Score.Phase}).Info("market phase changed")
		s.trySend(ctx, notifier.FormatPhaseChange(prev, snap, s.Locale))
	}
	return snap, nil
}

// store caches snap if it is newer than the cached snapshot and returns the one it replaced.
func (s *Scheduler) store(snap *model.IndicatorSnapshot) (*model.IndicatorSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !snap.Newer(s.latest) {
		return nil, false
	}
	prev := s.latest
	s.latest = snap
	return prev, true
}

func (s *Scheduler) observe(snap *model.IndicatorSnapshot) {
	symbol := s.Collector.Symbol
	s.Metrics.BullScore.WithLabelValues(symbol).Set(float64(snap.Score.Score))
	s.Metrics.RSI.WithLabelValues(symbol).Set(snap.RSI.Value)
	s.Metrics.MACDHist.WithLabelValues(symbol).Set(snap.MACD.Histogram)
	s.Metrics.BollSpread.WithLabelValues(symbol).Set(snap.Bollinger.Spread())
	s.Metrics.LastSnapshot.WithLabelValues(symbol).Set(float64(snap.Timestamp.Unix()))
}

func (s *Scheduler) reportFailure(err error) {
	logger := log.WithError(err).WithField("symbol", s.Collector.Symbol)
	if errors.Is(err, analyzer.ErrInsufficientData) {
		// not fatal: keep serving the previous snapshot until a longer batch arrives
		logger.Warn("refresh skipped")
		return
	}
	logger.Error("refresh failed")
	s.trySend(s.Ctx, fmt.Sprintf("❌ %s refresh failed: %s", html.EscapeString(s.Collector.Symbol), html.EscapeString(err.Error())))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	switch command {
	case "/snapshot":
		snap := s.Latest()
		if snap == nil {
			return "no snapshot yet"
		}
		return notifier.FormatSnapshot(snap, s.Locale)
	case "/refresh":
		snap, err := s.Refresh(ctx)
		if err != nil {
			return fmt.Sprintf("❌ refresh failed: %s", html.EscapeString(err.Error()))
		}
		return notifier.FormatSnapshot(snap, s.Locale)
	default:
		return "commands:\n• /snapshot\n• /refresh"
	}
}

// SnapshotHandler serves the latest snapshot as JSON.
func (s *Scheduler) SnapshotHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		snap := s.Latest()
		if snap == nil {
			http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snap); err != nil {
			log.WithError(err).Error("encode snapshot")
		}
	})
}

func (s *Scheduler) trySend(ctx context.Context, text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(ctx, text, 3); err != nil {
		log.WithError(err).Error("send notification")
	}
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, analyzer.ErrInsufficientData):
		return metrics.KindInsufficientData
	case errors.Is(err, collector.ErrMalformedInput):
		return metrics.KindMalformedInput
	case errors.Is(err, collector.ErrSourceUnavailable):
		return metrics.KindSourceUnavailable
	}
	return metrics.KindOther
}
