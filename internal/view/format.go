package view

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Unavailable is the placeholder shown for any field the upstream did not
// provide. Absent and unavailable are deliberately the same display state.
const Unavailable = "N/A"

// FormatMarketCap renders a market capitalization with unit suffixes:
// trillions, billions, and millions get one decimal plus T/B/M; smaller
// values are literal integers with thousands separators. A nil or zero
// value renders as N/A. Boundary values select the larger unit.
func FormatMarketCap(m *float64) string {
	if m == nil || *m == 0 {
		return Unavailable
	}
	v := *m
	switch {
	case v >= 1e12:
		return scaled(v, 1e12) + "T"
	case v >= 1e9:
		return scaled(v, 1e9) + "B"
	case v >= 1e6:
		return scaled(v, 1e6) + "M"
	default:
		return humanize.Comma(int64(math.Round(v)))
	}
}

// scaled divides v by unit and renders exactly one decimal place.
func scaled(v, unit float64) string {
	return decimal.NewFromFloat(v).
		Div(decimal.NewFromFloat(unit)).
		Round(1).
		StringFixed(1)
}

// FormatPercent renders a signed percent change, e.g. "+3.50%".
func FormatPercent(p float64) string {
	return fmt.Sprintf("%+.2f%%", p)
}

// FormatConfidence renders a 0..1 confidence as a percentage with one
// decimal, or N/A when the model reported none.
func FormatConfidence(c *float64) string {
	if c == nil {
		return Unavailable
	}
	return fmt.Sprintf("%.1f%%", *c*100)
}

// FormatPrice renders a price in dollars with two decimals.
func FormatPrice(p float64) string {
	return fmt.Sprintf("$%.2f", p)
}

// FormatVolume renders a share volume with thousands separators.
func FormatVolume(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

// FormatTimestamp trims an ISO-8601 timestamp to second precision for
// display, matching the upstream's "YYYY-MM-DDTHH:MM:SS" prefix.
func FormatTimestamp(ts string) string {
	if ts == "" {
		return Unavailable
	}
	if len(ts) > 19 {
		return ts[:19]
	}
	return ts
}
