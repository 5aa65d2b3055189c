package strategy

import "MarketPhase/internal/model"

// Phases maps a score to a market phase; the first MinScore match wins.
var Phases = []struct {
	MinScore int
	Phase    model.BullPhase
}{
	{80, model.PhaseStrongBull},
	{60, model.PhaseModerateBull},
	{40, model.PhaseConsolidation},
	{20, model.PhaseModerateBear},
}

// DefaultPhase is the phase for scores below every threshold.
const DefaultPhase = model.PhaseStrongBear

// mapPhase maps a total score to a BullPhase.
func mapPhase(score int) model.BullPhase {
	for _, p := range Phases {
		if score >= p.MinScore {
			return p.Phase
		}
	}
	return DefaultPhase
}

// phaseColor returns Up for the bull tiers and Down for the bear tiers.
func phaseColor(p model.BullPhase) model.PhaseColor {
	switch p {
	case model.PhaseStrongBull, model.PhaseModerateBull:
		return model.ColorUp
	case model.PhaseStrongBear, model.PhaseModerateBear:
		return model.ColorDown
	default:
		return model.ColorNeutral
	}
}

// Evaluate computes the bull-market score from the indicator readings.
func Evaluate(in Inputs) model.BullMarketScore {
	score := 0
	signals := make([]model.SignalTag, 0, len(Factors))
	for _, f := range Factors {
		pass, tag, tagged := f.Eval(in)
		if pass {
			score += f.Weight
		}
		if tagged {
			signals = append(signals, tag)
		}
	}

	phase := mapPhase(score)
	return model.BullMarketScore{
		Score:   score,
		Phase:   phase,
		Color:   phaseColor(phase),
		Signals: signals,
	}
}
