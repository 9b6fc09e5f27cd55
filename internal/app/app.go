// Package app wires the prediction API client, the session registry, and
// the health gate into the dashboard's operations. All upstream failures
// surface as nil results or sentinel errors; nothing panics across this
// boundary.
package app

import (
	"context"
	"errors"
	"sort"
	"time"

	"sentiment-dashboard/config"
	"sentiment-dashboard/internal/session"
	"sentiment-dashboard/models"
	"sentiment-dashboard/services"
)

// ErrUpstreamBlocked is returned by data operations while the last health
// check failed. Only a successful manual recheck clears it.
var ErrUpstreamBlocked = errors.New("prediction API unreachable, recheck health to resume")

// Disclaimer is shown in the System Info view.
const Disclaimer = "Predictions are for educational purposes only and do not constitute investment advice."

// App holds the dashboard's application dependencies.
type App struct {
	cfg      *config.Config
	client   services.PredictionAPIInterface
	factory  services.ClientFactory
	sessions *session.Registry
	gate     *HealthGate
}

// New creates the dashboard application. factory may be nil, in which case
// per-session base URL overrides fall back to the shared client.
func New(cfg *config.Config, client services.PredictionAPIInterface, factory services.ClientFactory, sessions *session.Registry) *App {
	return &App{
		cfg:      cfg,
		client:   client,
		factory:  factory,
		sessions: sessions,
		gate:     NewHealthGate(DefaultHealthTTL),
	}
}

// Sessions returns the session registry.
func (a *App) Sessions() *session.Registry { return a.sessions }

// Gate returns the health gate.
func (a *App) Gate() *HealthGate { return a.gate }

// ClientFor resolves the client for a session, honoring its base URL
// override. The override client shares the response cache; cache keys embed
// the base URL so sessions never see each other's overridden results.
func (a *App) ClientFor(sess *session.State) services.PredictionAPIInterface {
	if sess != nil && a.factory != nil {
		if override := sess.BaseURL(); override != "" {
			return a.factory(override)
		}
	}
	return a.client
}

// CheckHealth probes the upstream and records the outcome in the gate.
// The client caches successful probes for the health TTL; failures are
// never cached, so a recheck always goes to the network.
func (a *App) CheckHealth(ctx context.Context, sess *session.State) (*models.HealthStatus, bool) {
	status, err := a.ClientFor(sess).GetHealth(ctx)
	a.gate.Record(status, err == nil)
	return status, err == nil
}

// requireHealthy enforces the availability gate for data operations. A
// blocked gate stays blocked until the manual recheck; a stale gate
// triggers an implicit probe first.
func (a *App) requireHealthy(ctx context.Context, sess *session.State) error {
	if a.gate.Blocked() {
		return ErrUpstreamBlocked
	}
	if a.gate.Stale() {
		if _, ok := a.CheckHealth(ctx, sess); !ok {
			return ErrUpstreamBlocked
		}
	}
	return nil
}

// Predict fetches the model's forecast for one symbol and counts it toward
// the session's usage stats.
func (a *App) Predict(ctx context.Context, sess *session.State, symbol string, includeSentiment bool) (*models.PredictionResult, error) {
	if err := a.requireHealthy(ctx, sess); err != nil {
		return nil, err
	}
	start := time.Now()
	result, err := a.ClientFor(sess).Predict(ctx, symbol, includeSentiment)
	if err != nil {
		return nil, err
	}
	if sess != nil {
		sess.RecordPrediction(services.NormalizeSymbol(symbol), time.Since(start))
	}
	return result, nil
}

// ComparativeEntry is one ranked row of a multi-symbol comparison.
type ComparativeEntry struct {
	Rank   int                      `json:"rank"`
	Symbol string                   `json:"symbol"`
	Result *models.PredictionResult `json:"result"`
}

// Compare predicts each symbol in turn and ranks the successes by predicted
// percent change, descending. Symbols whose prediction fails are skipped;
// one bad symbol never sinks the whole comparison.
func (a *App) Compare(ctx context.Context, sess *session.State, symbols []string, includeSentiment bool) ([]ComparativeEntry, error) {
	if err := a.requireHealthy(ctx, sess); err != nil {
		return nil, err
	}

	entries := make([]ComparativeEntry, 0, len(symbols))
	for _, symbol := range symbols {
		result, err := a.Predict(ctx, sess, symbol, includeSentiment)
		if err != nil {
			continue
		}
		entries = append(entries, ComparativeEntry{
			Symbol: services.NormalizeSymbol(symbol),
			Result: result,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Result.PredictionPercent > entries[j].Result.PredictionPercent
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// StockInfo fetches the company profile for a symbol.
func (a *App) StockInfo(ctx context.Context, sess *session.State, symbol string) (*models.StockInfo, error) {
	if err := a.requireHealthy(ctx, sess); err != nil {
		return nil, err
	}
	return a.ClientFor(sess).GetStockInfo(ctx, symbol)
}

// Indicators fetches the latest technical indicators for a symbol.
func (a *App) Indicators(ctx context.Context, sess *session.State, symbol string) (*models.TechnicalIndicators, error) {
	if err := a.requireHealthy(ctx, sess); err != nil {
		return nil, err
	}
	return a.ClientFor(sess).GetTechnicalIndicators(ctx, symbol)
}

// RedditSentiment fetches the basic single-subreddit analysis.
func (a *App) RedditSentiment(ctx context.Context, sess *session.State, symbol string, limit int) (*models.SentimentPayload, error) {
	if err := a.requireHealthy(ctx, sess); err != nil {
		return nil, err
	}
	return a.ClientFor(sess).GetRedditSentiment(ctx, symbol, limit)
}

// ComprehensiveSentiment fetches the multi-subreddit analysis.
func (a *App) ComprehensiveSentiment(ctx context.Context, sess *session.State, symbol string, subreddits []string, limit int) (*models.SentimentPayload, error) {
	if err := a.requireHealthy(ctx, sess); err != nil {
		return nil, err
	}
	return a.ClientFor(sess).GetComprehensiveSentiment(ctx, symbol, subreddits, limit)
}

// RedditPosts fetches recent posts mentioning a symbol.
func (a *App) RedditPosts(ctx context.Context, sess *session.State, symbol string, limit int) (*[]models.RedditPost, error) {
	if err := a.requireHealthy(ctx, sess); err != nil {
		return nil, err
	}
	return a.ClientFor(sess).GetRedditPosts(ctx, symbol, limit)
}

// AvailableSubreddits lists the communities the upstream can analyze.
func (a *App) AvailableSubreddits(ctx context.Context, sess *session.State) (*models.AvailableSubreddits, error) {
	if err := a.requireHealthy(ctx, sess); err != nil {
		return nil, err
	}
	return a.ClientFor(sess).GetAvailableSubreddits(ctx)
}

// AnalyzeText runs the sentiment pipeline over an ad-hoc text.
func (a *App) AnalyzeText(ctx context.Context, sess *session.State, text string) (*models.TextAnalysisResult, error) {
	if err := a.requireHealthy(ctx, sess); err != nil {
		return nil, err
	}
	return a.ClientFor(sess).AnalyzeText(ctx, text)
}

// History fetches a symbol's price series and retains the inputs on the
// session so the Charts view re-renders with them.
func (a *App) History(ctx context.Context, sess *session.State, symbol, period, interval string) (*models.HistoricalSeries, error) {
	if err := a.requireHealthy(ctx, sess); err != nil {
		return nil, err
	}
	series, err := a.ClientFor(sess).GetHistory(ctx, symbol, period, interval)
	if err != nil {
		return nil, err
	}
	if sess != nil {
		sess.SetChart(session.ChartInputs{
			Symbol:   services.NormalizeSymbol(symbol),
			Period:   period,
			Interval: interval,
		})
	}
	return series, nil
}

// ModelInfo fetches the upstream model's description.
func (a *App) ModelInfo(ctx context.Context, sess *session.State) (*models.ModelInfo, error) {
	if err := a.requireHealthy(ctx, sess); err != nil {
		return nil, err
	}
	return a.ClientFor(sess).GetModelInfo(ctx)
}

// SystemInfo aggregates everything the System Info view shows.
type SystemInfo struct {
	Health     *models.HealthStatus                     `json:"health"`
	Reachable  bool                                     `json:"reachable"`
	Model      *models.ModelInfo                        `json:"model,omitempty"`
	Breakers   map[string]services.CircuitBreakerStatus `json:"circuit_breakers"`
	Usage      session.UsageStats                       `json:"usage"`
	BaseURL    string                                   `json:"base_url"`
	Disclaimer string                                   `json:"disclaimer"`
}

// SystemInfoFor assembles the System Info view. Model info degrades to nil
// independently of the health block.
func (a *App) SystemInfoFor(ctx context.Context, sess *session.State) *SystemInfo {
	health, reachable := a.gate.Current()
	if a.gate.Stale() {
		health, reachable = a.CheckHealth(ctx, sess)
	}

	info := &SystemInfo{
		Health:     health,
		Reachable:  reachable,
		Breakers:   services.GetGlobalRegistry().Status(),
		BaseURL:    a.ClientFor(sess).BaseURL(),
		Disclaimer: Disclaimer,
	}
	if sess != nil {
		info.Usage = sess.Usage()
	}
	if reachable {
		if model, err := a.ClientFor(sess).GetModelInfo(ctx); err == nil {
			info.Model = model
		}
	}
	return info
}

// RefreshWarmSymbols re-probes health and re-populates the prediction cache
// for the configured warm list. Runs off the request path on the cron
// schedule; failures only log.
func (a *App) RefreshWarmSymbols(ctx context.Context) {
	if _, ok := a.CheckHealth(ctx, nil); !ok {
		return
	}
	for _, symbol := range a.cfg.Refresh.WarmSymbols {
		if _, err := a.client.Predict(ctx, symbol, true); err != nil {
			return
		}
	}
}
