// Package locale holds the display text for the language-neutral values the engine produces.
package locale

import "MarketPhase/internal/model"

const (
	English = "en"
	Chinese = "zh"
)

// Labels is the display table for one locale.
type Labels struct {
	phases     map[model.BullPhase]string
	colors     map[model.PhaseColor]string
	signals    map[model.SignalTag]string
	trends     map[model.Trend]string
	volatility map[model.Volatility]string
}

var tables = map[string]*Labels{
	English: {
		phases: map[model.BullPhase]string{
			model.PhaseStrongBull:    "Strong Bull",
			model.PhaseModerateBull:  "Moderate Bull",
			model.PhaseConsolidation: "Neutral/Consolidation",
			model.PhaseModerateBear:  "Moderate Bear",
			model.PhaseStrongBear:    "Strong Bear",
		},
		colors: map[model.PhaseColor]string{
			model.ColorUp:      "🟢",
			model.ColorNeutral: "🟡",
			model.ColorDown:    "🔴",
		},
		signals: map[model.SignalTag]string{
			model.TagRSIHealthy:         "RSI healthy",
			model.TagRSIOverbought:      "RSI overbought",
			model.TagRSIWeak:            "RSI weak",
			model.TagMACDPositive:       "MACD positive",
			model.TagMACDNegative:       "MACD negative",
			model.TagGoldenCross:        "Golden Cross",
			model.TagDeathCross:         "Death Cross",
			model.TagPriceAboveEMAShort: "Price > EMA50",
			model.TagPriceAboveEMALong:  "Price > EMA200",
		},
		trends: map[model.Trend]string{
			model.TrendBullish: "Bullish",
			model.TrendBearish: "Bearish",
			model.TrendNeutral: "Neutral",
		},
		volatility: map[model.Volatility]string{
			model.VolatilityHigh:   "High volatility",
			model.VolatilityNormal: "Normal",
			model.VolatilityLow:    "Low/Consolidation",
		},
	},
	Chinese: {
		phases: map[model.BullPhase]string{
			model.PhaseStrongBull:    "强势牛市",
			model.PhaseModerateBull:  "温和牛市",
			model.PhaseConsolidation: "中性/盘整",
			model.PhaseModerateBear:  "温和熊市",
			model.PhaseStrongBear:    "强势熊市",
		},
		colors: map[model.PhaseColor]string{
			model.ColorUp:      "🟢",
			model.ColorNeutral: "🟡",
			model.ColorDown:    "🔴",
		},
		signals: map[model.SignalTag]string{
			model.TagRSIHealthy:         "RSI健康",
			model.TagRSIOverbought:      "RSI超买",
			model.TagRSIWeak:            "RSI疲弱",
			model.TagMACDPositive:       "MACD为正",
			model.TagMACDNegative:       "MACD为负",
			model.TagGoldenCross:        "金叉",
			model.TagDeathCross:         "死叉",
			model.TagPriceAboveEMAShort: "价格 > EMA50",
			model.TagPriceAboveEMALong:  "价格 > EMA200",
		},
		trends: map[model.Trend]string{
			model.TrendBullish: "看涨",
			model.TrendBearish: "看跌",
			model.TrendNeutral: "中性",
		},
		volatility: map[model.Volatility]string{
			model.VolatilityHigh:   "高波动",
			model.VolatilityNormal: "正常",
			model.VolatilityLow:    "低波动/盘整",
		},
	},
}

// Supported reports whether a label table exists for lang.
func Supported(lang string) bool {
	_, ok := tables[lang]
	return ok
}

// Get returns the table for lang, falling back to English.
func Get(lang string) *Labels {
	if l, ok := tables[lang]; ok {
		return l
	}
	return tables[English]
}

func (l *Labels) Phase(p model.BullPhase) string       { return lookup(l.phases, p) }
func (l *Labels) Color(c model.PhaseColor) string      { return lookup(l.colors, c) }
func (l *Labels) Signal(s model.SignalTag) string      { return lookup(l.signals, s) }
func (l *Labels) Trend(t model.Trend) string           { return lookup(l.trends, t) }
func (l *Labels) Volatility(v model.Volatility) string { return lookup(l.volatility, v) }

// SignalList returns the display text of tags in order.
func (l *Labels) SignalList(tags []model.SignalTag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = l.Signal(t)
	}
	return out
}

func lookup[K interface {
	comparable
	String() string
}](m map[K]string, k K) string {
	if s, ok := m[k]; ok {
		return s
	}
	return k.String()
}
