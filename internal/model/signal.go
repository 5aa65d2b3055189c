package model

// BullPhase is the market phase derived from the bull-market score, ordered from most bearish to most bullish.
type BullPhase int

const (
	PhaseStrongBear BullPhase = iota
	PhaseModerateBear
	PhaseConsolidation
	PhaseModerateBull
	PhaseStrongBull
)

func (p BullPhase) String() string {
	switch p {
	case PhaseStrongBear:
		return "strong_bear"
	case PhaseModerateBear:
		return "moderate_bear"
	case PhaseConsolidation:
		return "consolidation"
	case PhaseModerateBull:
		return "moderate_bull"
	case PhaseStrongBull:
		return "strong_bull"
	}
	return "unknown"
}

// MarshalText encodes the stable identifier.
func (p BullPhase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// PhaseColor is the display tone of a phase.
type PhaseColor int

const (
	ColorNeutral PhaseColor = iota
	ColorUp
	ColorDown
)

func (c PhaseColor) String() string {
	switch c {
	case ColorNeutral:
		return "neutral"
	case ColorUp:
		return "up"
	case ColorDown:
		return "down"
	}
	return "unknown"
}

// MarshalText encodes the stable identifier.
func (c PhaseColor) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// SignalTag is a qualitative observation emitted by the scorer.
type SignalTag int

const (
	TagRSIHealthy SignalTag = iota
	TagRSIOverbought
	TagRSIWeak
	TagMACDPositive
	TagMACDNegative
	TagGoldenCross
	TagDeathCross
	TagPriceAboveEMAShort
	TagPriceAboveEMALong
)

// AllSignalTags lists every tag the scorer can emit.
var AllSignalTags = []SignalTag{
	TagRSIHealthy,
	TagRSIOverbought,
	TagRSIWeak,
	TagMACDPositive,
	TagMACDNegative,
	TagGoldenCross,
	TagDeathCross,
	TagPriceAboveEMAShort,
	TagPriceAboveEMALong,
}

func (s SignalTag) String() string {
	switch s {
	case TagRSIHealthy:
		return "rsi_healthy"
	case TagRSIOverbought:
		return "rsi_overbought"
	case TagRSIWeak:
		return "rsi_weak"
	case TagMACDPositive:
		return "macd_positive"
	case TagMACDNegative:
		return "macd_negative"
	case TagGoldenCross:
		return "golden_cross"
	case TagDeathCross:
		return "death_cross"
	case TagPriceAboveEMAShort:
		return "price_above_ema50"
	case TagPriceAboveEMALong:
		return "price_above_ema200"
	}
	return "unknown"
}

// MarshalText encodes the stable identifier.
func (s SignalTag) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// BullMarketScore is the output of the composite scorer.
type BullMarketScore struct {
	Score   int         `json:"score"` // 0 ~ 100
	Phase   BullPhase   `json:"phase"`
	Color   PhaseColor  `json:"color"`
	Signals []SignalTag `json:"signals"`
}

// HasSignal reports whether tag was emitted.
func (s BullMarketScore) HasSignal(tag SignalTag) bool {
	for _, t := range s.Signals {
		if t == tag {
			return true
		}
	}
	return false
}
