package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"MarketPhase/internal/analyzer"
	"MarketPhase/internal/locale"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		Source   string `yaml:"source"` // binance, yahoo or mock
		Symbol   string `yaml:"symbol"`
		Interval string `yaml:"interval"`
		Limit    int    `yaml:"limit"`
		BaseURL  string `yaml:"base_url"`
	} `yaml:"data_source"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Indicators struct {
		analyzer.Periods              `yaml:",inline"`
		analyzer.VolatilityThresholds `yaml:",inline"`
	} `yaml:"indicators"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Locale string `yaml:"locale"`
	Proxy  string `yaml:"proxy"`
}

// Load reads .env (if present) and the YAML config file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "load .env")
	}

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "read config")
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, "parse config")
		}
	}

	// Environment variable overrides
	overrides := map[string]*string{
		"TELEGRAM_BOT_TOKEN": &cfg.Telegram.BotToken,
		"TELEGRAM_CHAT_ID":   &cfg.Telegram.ChatID,
		"MARKET_SOURCE":      &cfg.DataSource.Source,
		"MARKET_SYMBOL":      &cfg.DataSource.Symbol,
		"MARKET_INTERVAL":    &cfg.DataSource.Interval,
		"BINANCE_BASE_URL":   &cfg.DataSource.BaseURL,
		"HTTPS_PROXY":        &cfg.Proxy,
		"REFRESH_CRON":       &cfg.Schedule.RefreshCron,
		"METRICS_ADDR":       &cfg.Metrics.Addr,
		"LOCALE":             &cfg.Locale,
	}
	for env, dst := range overrides {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("MARKET_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrapf(err, "parse MARKET_LIMIT %q", v)
		}
		cfg.DataSource.Limit = n
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataSource.Source == "" {
		c.DataSource.Source = "binance"
	}
	if c.DataSource.Symbol == "" {
		c.DataSource.Symbol = "BTCUSDT"
	}
	if c.DataSource.Interval == "" {
		c.DataSource.Interval = "1d"
	}
	if c.Schedule.RefreshCron == "" {
		c.Schedule.RefreshCron = "0 */5 * * * *"
	}
	if c.Locale == "" {
		c.Locale = locale.English
	}

	p := &c.Indicators.Periods
	d := analyzer.DefaultPeriods()
	for _, f := range []struct{ dst, def *int }{
		{&p.RSI, &d.RSI},
		{&p.MACDFast, &d.MACDFast},
		{&p.MACDSlow, &d.MACDSlow},
		{&p.MACDSignal, &d.MACDSignal},
		{&p.BollingerPeriod, &d.BollingerPeriod},
		{&p.EMAShort, &d.EMAShort},
		{&p.EMALong, &d.EMALong},
	} {
		if *f.dst == 0 {
			*f.dst = *f.def
		}
	}
	if p.BollingerMultiplier == 0 {
		p.BollingerMultiplier = d.BollingerMultiplier
	}

	v := &c.Indicators.VolatilityThresholds
	if v.High == 0 && v.Low == 0 {
		*v = analyzer.DefaultVolatilityThresholds()
	}
}

// Analyzer builds an analyzer from the indicator settings.
func (c *Config) Analyzer() *analyzer.Analyzer {
	a := analyzer.New()
	a.Periods = c.Indicators.Periods
	a.Volatility = c.Indicators.VolatilityThresholds
	a.Timeframe = c.DataSource.Interval
	return a
}

// NotifyEnabled reports whether Telegram credentials are configured.
func (c *Config) NotifyEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	switch c.DataSource.Source {
	case "binance", "yahoo", "mock":
	default:
		return errors.Errorf("data_source.source %q is not one of binance, yahoo, mock", c.DataSource.Source)
	}
	if c.DataSource.Symbol == "" {
		return errors.New("data_source.symbol is required")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return errors.New("telegram.bot_token and telegram.chat_id must be set together")
	}
	if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor).
		Parse(c.Schedule.RefreshCron); err != nil {
		return errors.Wrapf(err, "schedule.refresh_cron %q", c.Schedule.RefreshCron)
	}
	if !locale.Supported(c.Locale) {
		return errors.Errorf("locale %q is not supported", c.Locale)
	}

	p := c.Indicators.Periods
	for name, v := range map[string]int{
		"rsi_period":       p.RSI,
		"macd_fast":        p.MACDFast,
		"macd_slow":        p.MACDSlow,
		"macd_signal":      p.MACDSignal,
		"bollinger_period": p.BollingerPeriod,
		"ema_short":        p.EMAShort,
		"ema_long":         p.EMALong,
	} {
		if v <= 0 {
			return errors.Errorf("indicators.%s must be positive", name)
		}
	}
	if p.MACDFast >= p.MACDSlow {
		return errors.New("indicators.macd_fast must be shorter than indicators.macd_slow")
	}
	if p.EMAShort >= p.EMALong {
		return errors.New("indicators.ema_short must be shorter than indicators.ema_long")
	}
	if p.BollingerMultiplier <= 0 {
		return errors.New("indicators.bollinger_multiplier must be positive")
	}
	v := c.Indicators.VolatilityThresholds
	if v.Low < 0 || v.High < v.Low {
		return errors.New("indicators.volatility_high must be >= indicators.volatility_low >= 0")
	}

	if c.DataSource.Limit > 0 {
		if need := c.Analyzer().MinCandles(); c.DataSource.Limit < need {
			return errors.Errorf("data_source.limit %d is below the %d candles the indicators need", c.DataSource.Limit, need)
		}
	}
	return nil
}
