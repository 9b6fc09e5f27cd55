package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Default chart inputs shown before the user's first fetch.
const (
	DefaultChartSymbol   = "TSLA"
	DefaultChartPeriod   = "1mo"
	DefaultChartInterval = "1d"
)

// DefaultChartSymbols are the symbols offered by the Charts view selector.
var DefaultChartSymbols = []string{"AAPL", "TSLA", "MSFT", "GOOGL", "NVDA", "AMZN", "META"}

// ChartInputs are the Charts view's inputs, retained between a fetch and
// subsequent re-renders.
type ChartInputs struct {
	Symbol   string `json:"symbol"`
	Period   string `json:"period"`
	Interval string `json:"interval"`
}

// UsageStats is a snapshot of one session's activity, surfaced in the
// System Info view.
type UsageStats struct {
	Predictions     int     `json:"predictions"`
	SymbolsAnalyzed int     `json:"symbols_analyzed"`
	AvgLatencyMS    float64 `json:"avg_latency_ms"`
}

// State holds one interactive session's mutable dashboard state.
type State struct {
	mu sync.Mutex

	id         string
	activeView View
	chart      ChartInputs
	baseURL    string // override; empty means the configured default

	predictions  int
	symbols      map[string]struct{}
	totalLatency time.Duration
}

func newState(id string) *State {
	return &State{
		id: id,
		chart: ChartInputs{
			Symbol:   DefaultChartSymbol,
			Period:   DefaultChartPeriod,
			Interval: DefaultChartInterval,
		},
		symbols: make(map[string]struct{}),
	}
}

// ID returns the session identifier.
func (s *State) ID() string { return s.id }

// ActiveView returns the currently selected view.
func (s *State) ActiveView() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeView
}

// SetActiveView selects a view.
func (s *State) SetActiveView(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeView = v
}

// Chart returns the last chart inputs.
func (s *State) Chart() ChartInputs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chart
}

// SetChart stores the chart inputs from a fetch action.
func (s *State) SetChart(c ChartInputs) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chart = c
}

// BaseURL returns the session's base URL override, or "" for the default.
func (s *State) BaseURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseURL
}

// SetBaseURL sets or clears the session's base URL override.
func (s *State) SetBaseURL(u string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseURL = u
}

// RecordPrediction counts a completed prediction toward usage stats.
func (s *State) RecordPrediction(symbol string, latency time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.predictions++
	s.symbols[symbol] = struct{}{}
	s.totalLatency += latency
}

// Usage returns a snapshot of the session's activity.
func (s *State) Usage() UsageStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := UsageStats{
		Predictions:     s.predictions,
		SymbolsAnalyzed: len(s.symbols),
	}
	if s.predictions > 0 {
		stats.AvgLatencyMS = float64(s.totalLatency.Milliseconds()) / float64(s.predictions)
	}
	return stats
}

// Registry holds all live sessions, safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*State
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*State)}
}

// Get returns the session with the given ID, if it exists.
func (r *Registry) Get(id string) (*State, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// GetOrCreate returns the session with the given ID, creating it (with a
// fresh UUID when id is empty) if needed.
func (r *Registry) GetOrCreate(id string) *State {
	if id != "" {
		if s, ok := r.Get(id); ok {
			return s
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if id == "" {
		id = uuid.NewString()
	} else if s, ok := r.sessions[id]; ok {
		return s
	}
	s := newState(id)
	r.sessions[id] = s
	return s
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
