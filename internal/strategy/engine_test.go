package strategy

import (
	"reflect"
	"testing"

	"MarketPhase/internal/model"
)

func TestEvaluate_StrongBull(t *testing.T) {
	sig := Evaluate(Inputs{RSI: 55, Histogram: 1, EMA50: 100, EMA200: 90, Price: 105})
	if sig.Score != 100 {
		t.Fatalf("expected score 100, got %d", sig.Score)
	}
	if sig.Phase != model.PhaseStrongBull {
		t.Errorf("expected strong bull, got %s", sig.Phase)
	}
	if sig.Color != model.ColorUp {
		t.Errorf("expected up color, got %s", sig.Color)
	}
	want := []model.SignalTag{
		model.TagRSIHealthy,
		model.TagMACDPositive,
		model.TagGoldenCross,
		model.TagPriceAboveEMAShort,
		model.TagPriceAboveEMALong,
	}
	if !reflect.DeepEqual(sig.Signals, want) {
		t.Errorf("expected signals %v, got %v", want, sig.Signals)
	}
}

func TestEvaluate_StrongBear(t *testing.T) {
	sig := Evaluate(Inputs{RSI: 75, Histogram: -0.5, EMA50: 90, EMA200: 100, Price: 80})
	if sig.Score != 0 {
		t.Fatalf("expected score 0, got %d", sig.Score)
	}
	if sig.Phase != model.PhaseStrongBear {
		t.Errorf("expected strong bear, got %s", sig.Phase)
	}
	if sig.Color != model.ColorDown {
		t.Errorf("expected down color, got %s", sig.Color)
	}
	want := []model.SignalTag{model.TagRSIOverbought, model.TagMACDNegative, model.TagDeathCross}
	if !reflect.DeepEqual(sig.Signals, want) {
		t.Errorf("expected signals %v, got %v", want, sig.Signals)
	}
}

func TestEvaluate_RSIBoundaries(t *testing.T) {
	tests := []struct {
		rsi    float64
		weight int
		tag    model.SignalTag
	}{
		{39.99, 0, model.TagRSIWeak},
		{40, 20, model.TagRSIHealthy},
		{70, 20, model.TagRSIHealthy},
		{70.01, 0, model.TagRSIOverbought},
		{0, 0, model.TagRSIWeak},
		{100, 0, model.TagRSIOverbought},
	}
	for _, tt := range tests {
		sig := Evaluate(Inputs{RSI: tt.rsi, Histogram: 0, EMA50: 1, EMA200: 1, Price: 1})
		if sig.Score != tt.weight {
			t.Errorf("rsi %.2f: expected score %d, got %d", tt.rsi, tt.weight, sig.Score)
		}
		if !sig.HasSignal(tt.tag) {
			t.Errorf("rsi %.2f: expected tag %s in %v", tt.rsi, tt.tag, sig.Signals)
		}
	}
}

func TestEvaluate_ZeroHistogramIsNegative(t *testing.T) {
	sig := Evaluate(Inputs{RSI: 50, Histogram: 0, EMA50: 1, EMA200: 1, Price: 1})
	if !sig.HasSignal(model.TagMACDNegative) {
		t.Errorf("expected MACD negative for zero histogram, got %v", sig.Signals)
	}
	if !sig.HasSignal(model.TagDeathCross) {
		t.Errorf("expected death cross for equal EMAs, got %v", sig.Signals)
	}
	if sig.Score != 20 {
		t.Errorf("expected score 20, got %d", sig.Score)
	}
}

func TestEvaluate_PriceTagsOnlyWhenAbove(t *testing.T) {
	// price between the two EMAs during a death cross
	sig := Evaluate(Inputs{RSI: 30, Histogram: -1, EMA50: 90, EMA200: 110, Price: 100})
	if sig.Score != 15 {
		t.Errorf("expected score 15, got %d", sig.Score)
	}
	if sig.HasSignal(model.TagPriceAboveEMALong) {
		t.Error("unexpected price > EMA200 tag")
	}
	if !sig.HasSignal(model.TagPriceAboveEMAShort) {
		t.Error("expected price > EMA50 tag")
	}
	if len(sig.Signals) != 4 {
		t.Errorf("expected 4 signals, got %v", sig.Signals)
	}
}

func TestMapPhase_AllBoundaries(t *testing.T) {
	tests := []struct {
		score int
		phase model.BullPhase
		color model.PhaseColor
	}{
		{100, model.PhaseStrongBull, model.ColorUp},
		{80, model.PhaseStrongBull, model.ColorUp},
		{79, model.PhaseModerateBull, model.ColorUp},
		{60, model.PhaseModerateBull, model.ColorUp},
		{59, model.PhaseConsolidation, model.ColorNeutral},
		{40, model.PhaseConsolidation, model.ColorNeutral},
		{39, model.PhaseModerateBear, model.ColorDown},
		{20, model.PhaseModerateBear, model.ColorDown},
		{19, model.PhaseStrongBear, model.ColorDown},
		{0, model.PhaseStrongBear, model.ColorDown},
	}
	for _, tt := range tests {
		phase := mapPhase(tt.score)
		if phase != tt.phase {
			t.Errorf("score %d: expected %s, got %s", tt.score, tt.phase, phase)
		}
		if c := phaseColor(phase); c != tt.color {
			t.Errorf("score %d: expected color %s, got %s", tt.score, tt.color, c)
		}
	}
}

func TestFactors_WeightsSumTo100(t *testing.T) {
	total := 0
	for _, f := range Factors {
		total += f.Weight
	}
	if total != 100 {
		t.Errorf("expected weights to sum to 100, got %d", total)
	}
}
