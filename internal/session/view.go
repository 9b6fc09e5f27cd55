// Package session tracks per-session dashboard state: the active view, the
// last chart inputs, an optional base URL override, and usage counters.
// Nothing here survives the process; there is no cross-session persistence.
package session

import "fmt"

// View identifies one of the seven dashboard views.
type View int

const (
	ViewPredictions View = iota
	ViewComparative
	ViewCharts
	ViewStockInfo
	ViewRedditSentiment
	ViewTextAnalysis
	ViewSystemInfo
)

var viewLabels = [...]string{
	"Predictions",
	"Comparative Analysis",
	"Charts",
	"Stock Info",
	"Reddit Sentiment",
	"Text Analysis",
	"System Info",
}

var viewSlugs = [...]string{
	"predictions",
	"comparative",
	"charts",
	"stock-info",
	"reddit-sentiment",
	"text-analysis",
	"system-info",
}

// Label returns the human-readable view title.
func (v View) Label() string {
	if v < 0 || int(v) >= len(viewLabels) {
		return "Unknown"
	}
	return viewLabels[v]
}

// Slug returns the URL-safe view identifier.
func (v View) Slug() string {
	if v < 0 || int(v) >= len(viewSlugs) {
		return "unknown"
	}
	return viewSlugs[v]
}

func (v View) String() string { return v.Slug() }

// Views returns all views in display order.
func Views() []View {
	out := make([]View, len(viewSlugs))
	for i := range out {
		out[i] = View(i)
	}
	return out
}

// ParseView resolves a slug or label to a View.
func ParseView(s string) (View, error) {
	for i := range viewSlugs {
		if s == viewSlugs[i] || s == viewLabels[i] {
			return View(i), nil
		}
	}
	return ViewPredictions, fmt.Errorf("unknown view %q", s)
}
