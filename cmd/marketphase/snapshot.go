package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"MarketPhase/internal/locale"
	"MarketPhase/internal/model"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "fetch candles once and print the indicator snapshot",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		timeout, err := cmd.Flags().GetDuration("timeout")
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		snap, err := newCollector(cfg).Collect(ctx)
		if err != nil {
			return err
		}
		printSnapshot(os.Stdout, snap, cfg.Locale)
		return nil
	},
}

func init() {
	snapshotCmd.Flags().Duration("timeout", 30*time.Second, "fetch timeout")
}

func newTableStyle() *table.Style {
	style := table.Style{
		Name:    "StyleRounded",
		Box:     table.StyleBoxRounded,
		Format:  table.FormatOptionsDefault,
		HTML:    table.DefaultHTMLOptions,
		Options: table.OptionsDefault,
		Title:   table.TitleOptionsDefault,
		Color:   table.ColorOptionsYellowWhiteOnBlack,
	}
	style.Color.Row = text.Colors{text.FgHiYellow, text.BgHiBlack}
	style.Color.RowAlternate = text.Colors{text.FgYellow, text.BgBlack}
	return &style
}

func printSnapshot(w io.Writer, snap *model.IndicatorSnapshot, lang string) {
	l := locale.Get(lang)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(*newTableStyle())
	t.SetTitle("%s %s @ %s", snap.Symbol, snap.Interval, snap.Timestamp.Format(time.RFC3339))
	t.AppendHeader(table.Row{"indicator", "value"})
	t.AppendRows([]table.Row{
		{"price", fmt.Sprintf("%.2f", snap.CurrentPrice)},
		{fmt.Sprintf("rsi(%d)", snap.RSI.Period), fmt.Sprintf("%.2f", snap.RSI.Value)},
		{"macd", fmt.Sprintf("%.4f / %.4f / %.4f", snap.MACD.MACD, snap.MACD.Signal, snap.MACD.Histogram)},
		{"bollinger", fmt.Sprintf("%.2f / %.2f / %.2f", snap.Bollinger.Upper, snap.Bollinger.Middle, snap.Bollinger.Lower)},
		{"ema50 / ema200", fmt.Sprintf("%.2f / %.2f", snap.EMA.EMA50, snap.EMA.EMA200)},
		{"trend", l.Trend(snap.EMA.Trend)},
		{"volatility", l.Volatility(snap.Volatility)},
	})
	t.AppendSeparator()
	t.AppendRow(table.Row{"score", snap.Score.Score})
	t.AppendRow(table.Row{"phase", l.Phase(snap.Score.Phase)})
	t.AppendRow(table.Row{"signals", strings.Join(l.SignalList(snap.Score.Signals), ", ")})
	t.Render()
}
