package main

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"MarketPhase/internal/collector"
	"MarketPhase/internal/config"
)

// mockBasePrice seeds the synthetic series of the mock source.
const mockBasePrice = 60000

var rootCmd = &cobra.Command{
	Use:          "marketphase",
	Short:        "market phase classifier based on technical indicators",
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.SetFormatter(&prefixed.TextFormatter{FullTimestamp: true})
		debug, err := cmd.Flags().GetBool("debug")
		if err != nil {
			return err
		}
		if debug {
			log.SetLevel(log.DebugLevel)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "debug flag")
	rootCmd.PersistentFlags().String("config", "configs/config.yaml", "config file")

	rootCmd.AddCommand(runCmd, snapshotCmd)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if v := os.Getenv("CONFIG_PATH"); v != "" && !cmd.Flags().Changed("config") {
		path = v
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation")
	}
	return cfg, nil
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	switch cfg.DataSource.Source {
	case "yahoo":
		f := collector.NewYahooFetcher(cfg.Proxy)
		if cfg.DataSource.BaseURL != "" {
			f.BaseURL = cfg.DataSource.BaseURL
		}
		return f
	case "mock":
		return &collector.MockFetcher{Price: mockBasePrice}
	default:
		return collector.NewBinanceFetcher(cfg.DataSource.BaseURL, cfg.Proxy)
	}
}

func newCollector(cfg *config.Config) *collector.Collector {
	fetcher := newFetcher(cfg)
	log.WithField("source", fetcher.Name()).Info("data source selected")
	return collector.NewCollector(fetcher, cfg.Analyzer(), cfg.DataSource.Symbol, cfg.DataSource.Interval, cfg.DataSource.Limit)
}
