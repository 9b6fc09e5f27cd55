// Package view maps upstream response fields to deterministic display
// states. Every function here is pure; thresholds are part of the
// dashboard's observable contract and are pinned by tests.
package view

// Band is the four-tier sentiment classification of a predicted move.
type Band string

const (
	BandStrongBullish Band = "strong bullish"
	BandBullish       Band = "bullish"
	BandBearish       Band = "bearish"
	BandStrongBearish Band = "strong bearish"
)

// PredictionBand classifies a predicted percent change. Boundaries are
// inclusive on the weaker side: exactly +2 is bullish, exactly -2 bearish.
func PredictionBand(p float64) Band {
	switch {
	case p > 2:
		return BandStrongBullish
	case p > 0:
		return BandBullish
	case p > -2:
		return BandBearish
	default:
		return BandStrongBearish
	}
}

// RSISignal is the display state of the RSI-14 indicator.
type RSISignal string

const (
	RSIOverbought RSISignal = "overbought"
	RSIOversold   RSISignal = "oversold"
	RSINeutral    RSISignal = "neutral"
)

// RSIBand classifies an RSI value. Exactly 70 and exactly 30 are neutral.
func RSIBand(rsi float64) RSISignal {
	switch {
	case rsi > 70:
		return RSIOverbought
	case rsi < 30:
		return RSIOversold
	default:
		return RSINeutral
	}
}

// Momentum is the display state of the MACD indicator.
type Momentum string

const (
	MomentumBullish Momentum = "bullish momentum"
	MomentumBearish Momentum = "bearish momentum"
)

// MACDBand classifies a MACD value. Zero counts as bearish.
func MACDBand(macd float64) Momentum {
	if macd > 0 {
		return MomentumBullish
	}
	return MomentumBearish
}

// subredditOverrideThreshold is the per-subreddit sentiment score beyond
// which the community's own label overrides the aggregate one.
const subredditOverrideThreshold = 0.1

// SubredditLabel returns the label displayed for one subreddit inside a
// comprehensive analysis: the aggregate label, unless the subreddit's own
// score crosses the override threshold in either direction.
func SubredditLabel(aggregateLabel string, score float64) string {
	switch {
	case score > subredditOverrideThreshold:
		return "bullish"
	case score < -subredditOverrideThreshold:
		return "bearish"
	default:
		return aggregateLabel
	}
}

// Thermometer bounds for the gauge widget.
const (
	thermometerMin = -10.0
	thermometerMax = 10.0
)

// Thermometer rescales a raw percent prediction into [0, 1] for a bounded
// progress indicator, clamping the input to [-10, 10] first.
func Thermometer(percent float64) float64 {
	if percent < thermometerMin {
		percent = thermometerMin
	}
	if percent > thermometerMax {
		percent = thermometerMax
	}
	return (percent - thermometerMin) / (thermometerMax - thermometerMin)
}
