package notifier

import (
	"fmt"
	"html"
	"strings"

	"MarketPhase/internal/locale"
	"MarketPhase/internal/model"
)

// FormatSnapshot formats a snapshot into a Telegram HTML message using the labels of lang.
// Every interpolated string is HTML-escaped.
func FormatSnapshot(snap *model.IndicatorSnapshot, lang string) string {
	l := locale.Get(lang)
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s %s</b> | %s\n\n", html.EscapeString(snap.Symbol), html.EscapeString(snap.Interval),
		snap.Timestamp.UTC().Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("%s <b>%s</b> (%d/100)\n\n", l.Color(snap.Score.Color), html.EscapeString(l.Phase(snap.Score.Phase)), snap.Score.Score))

	b.WriteString(fmt.Sprintf("Price: %.2f\n", snap.CurrentPrice))
	b.WriteString(fmt.Sprintf("RSI(%d): %.1f\n", snap.RSI.Period, snap.RSI.Value))
	b.WriteString(fmt.Sprintf("MACD(%d,%d,%d): %.2f / %.2f (hist %+.2f)\n",
		snap.MACD.FastPeriod, snap.MACD.SlowPeriod, snap.MACD.SignalPeriod,
		snap.MACD.MACD, snap.MACD.Signal, snap.MACD.Histogram))
	b.WriteString(fmt.Sprintf("EMA50: %.2f | EMA200: %.2f (%s)\n",
		snap.EMA.EMA50, snap.EMA.EMA200, html.EscapeString(l.Trend(snap.EMA.Trend))))
	b.WriteString(fmt.Sprintf("BOLL(%d,%.0f): %.2f / %.2f / %.2f (%s)\n\n",
		snap.Bollinger.Period, snap.Bollinger.Multiplier,
		snap.Bollinger.Upper, snap.Bollinger.Middle, snap.Bollinger.Lower,
		html.EscapeString(l.Volatility(snap.Volatility))))

	for _, s := range l.SignalList(snap.Score.Signals) {
		b.WriteString("  • " + html.EscapeString(s) + "\n")
	}
	return b.String()
}

// FormatPhaseChange announces a phase transition between two snapshots.
func FormatPhaseChange(prev, next *model.IndicatorSnapshot, lang string) string {
	l := locale.Get(lang)
	return fmt.Sprintf("🔔 <b>%s</b>: %s → %s %s (%d → %d)\n\n%s",
		html.EscapeString(next.Symbol),
		html.EscapeString(l.Phase(prev.Score.Phase)), l.Color(next.Score.Color), html.EscapeString(l.Phase(next.Score.Phase)),
		prev.Score.Score, next.Score.Score,
		FormatSnapshot(next, lang))
}
