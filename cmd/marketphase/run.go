package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"MarketPhase/internal/metrics"
	"MarketPhase/internal/notifier"
	"MarketPhase/internal/scheduler"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "refresh the market phase on a schedule and report changes",
	RunE:  runService,
}

func runService(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log.Info("MarketPhase starting...")

	col := newCollector(cfg)
	m := metrics.NewMetrics()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var tn *notifier.TelegramNotifier
	var sender scheduler.Sender
	if cfg.NotifyEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sender = tn
	} else {
		log.Warn("telegram credentials not set, notifications disabled")
	}

	sched := scheduler.NewScheduler(ctx, col, sender, m, cfg.Locale)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron); err != nil {
		return errors.Wrap(err, "register cron tasks")
	}

	// first snapshot right away so commands have something to show
	if _, err := sched.Refresh(ctx); err != nil {
		log.WithError(err).Warn("initial refresh failed")
	}

	sched.Start()
	defer sched.Stop()

	if cfg.Metrics.Addr != "" {
		srv := metrics.NewServer(cfg.Metrics.Addr, m)
		srv.Handle("/snapshot", sched.SnapshotHandler())
		srv.Start()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			if err := srv.Stop(shutdownCtx); err != nil {
				log.WithError(err).Error("stop metrics server")
			}
		}()
	}

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info("telegram polling started")
	}

	log.WithFields(log.Fields{
		"symbol":   cfg.DataSource.Symbol,
		"interval": cfg.DataSource.Interval,
		"cron":     cfg.Schedule.RefreshCron,
	}).Info("MarketPhase is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Info("shutdown signal received, stopping...")
	case <-ctx.Done():
	}
	cancel()
	return nil
}
