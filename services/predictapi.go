package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"sentiment-dashboard/models"
	"sentiment-dashboard/observability"
)

// ErrUnavailable is the uniform sentinel for any upstream failure: transport
// errors, non-200 statuses, and malformed JSON all collapse into it. Callers
// render "data unavailable" and never see partial objects.
var ErrUnavailable = errors.New("prediction API unavailable")

// Per-endpoint timeouts. Each operation uses one of three timeout classes.
const (
	timeoutShort  = 10 * time.Second
	timeoutMedium = 15 * time.Second
	timeoutLong   = 30 * time.Second
)

// Per-endpoint cache TTLs. These are part of the observable contract.
const (
	TTLHealth        = 60 * time.Second
	TTLPredict       = 300 * time.Second
	TTLModelInfo     = 3600 * time.Second
	TTLStockInfo     = 600 * time.Second
	TTLIndicators    = 300 * time.Second
	TTLSentiment     = 300 * time.Second
	TTLComprehensive = 300 * time.Second
	TTLSubreddits    = 3600 * time.Second
	TTLAnalyzeText   = 60 * time.Second
	TTLPosts         = 300 * time.Second
	TTLHistory       = 300 * time.Second
)

// PredictionAPIService handles communication with the prediction API.
// The base URL is operator-configurable at runtime; all responses are
// cached by request signature (which includes the resolved base URL, so a
// URL change invalidates every prior entry).
type PredictionAPIService struct {
	mu      sync.RWMutex
	baseURL string

	shortClient  *http.Client
	mediumClient *http.Client
	longClient   *http.Client

	cache *ResponseCache
}

// NewPredictionAPIService creates a new PredictionAPIService instance
func NewPredictionAPIService(baseURL string) *PredictionAPIService {
	return &PredictionAPIService{
		baseURL:      strings.TrimRight(baseURL, "/"),
		shortClient:  &http.Client{Timeout: timeoutShort},
		mediumClient: &http.Client{Timeout: timeoutMedium},
		longClient:   &http.Client{Timeout: timeoutLong},
		cache:        NewResponseCache(),
	}
}

// BaseURL returns the currently configured base URL.
func (s *PredictionAPIService) BaseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baseURL
}

// SetBaseURL changes the upstream base URL. Previously cached entries stay
// in the cache but become unreachable because keys embed the base URL.
func (s *PredictionAPIService) SetBaseURL(u string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseURL = strings.TrimRight(u, "/")
}

// WithBaseURL returns a service bound to a fixed base URL that shares the
// HTTP clients and the response cache. Used for per-session overrides; the
// shared cache leaks nothing across sessions since keys embed the URL.
func (s *PredictionAPIService) WithBaseURL(u string) *PredictionAPIService {
	return &PredictionAPIService{
		baseURL:      strings.TrimRight(u, "/"),
		shortClient:  s.shortClient,
		mediumClient: s.mediumClient,
		longClient:   s.longClient,
		cache:        s.cache,
	}
}

// Cache exposes the response cache for inspection.
func (s *PredictionAPIService) Cache() *ResponseCache {
	return s.cache
}

// NormalizeSymbol uppercases and trims a ticker before path embedding. No
// other validation happens client-side; bad symbols are the API's to reject.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// GetHealth checks the prediction API's readiness.
func (s *PredictionAPIService) GetHealth(ctx context.Context) (*models.HealthStatus, error) {
	return fetch[models.HealthStatus](ctx, s, call{
		client:  s.shortClient,
		breaker: BreakerHealth,
		op:      "health",
		method:  http.MethodGet,
		path:    "/health",
		ttl:     TTLHealth,
	})
}

// Predict returns the model's forecast for a symbol.
func (s *PredictionAPIService) Predict(ctx context.Context, symbol string, includeSentiment bool) (*models.PredictionResult, error) {
	params := url.Values{}
	params.Set("include_sentiment", strconv.FormatBool(includeSentiment))
	return fetch[models.PredictionResult](ctx, s, call{
		client:  s.longClient,
		breaker: BreakerPredict,
		op:      "predict",
		method:  http.MethodGet,
		path:    "/predict/" + url.PathEscape(NormalizeSymbol(symbol)),
		params:  params,
		ttl:     TTLPredict,
	})
}

// GetModelInfo describes the deployed model.
func (s *PredictionAPIService) GetModelInfo(ctx context.Context) (*models.ModelInfo, error) {
	return fetch[models.ModelInfo](ctx, s, call{
		client:  s.shortClient,
		breaker: BreakerModel,
		op:      "model_info",
		method:  http.MethodGet,
		path:    "/model/info",
		ttl:     TTLModelInfo,
	})
}

// GetStockInfo returns the company profile for a symbol.
func (s *PredictionAPIService) GetStockInfo(ctx context.Context, symbol string) (*models.StockInfo, error) {
	return fetch[models.StockInfo](ctx, s, call{
		client:  s.shortClient,
		breaker: BreakerStock,
		op:      "stock_info",
		method:  http.MethodGet,
		path:    "/stock/" + url.PathEscape(NormalizeSymbol(symbol)) + "/info",
		ttl:     TTLStockInfo,
	})
}

// GetTechnicalIndicators returns the latest indicator values for a symbol.
func (s *PredictionAPIService) GetTechnicalIndicators(ctx context.Context, symbol string) (*models.TechnicalIndicators, error) {
	return fetch[models.TechnicalIndicators](ctx, s, call{
		client:  s.shortClient,
		breaker: BreakerStock,
		op:      "indicators",
		method:  http.MethodGet,
		path:    "/stock/" + url.PathEscape(NormalizeSymbol(symbol)) + "/indicators",
		ttl:     TTLIndicators,
	})
}

// GetRedditSentiment returns the single-subreddit sentiment analysis.
func (s *PredictionAPIService) GetRedditSentiment(ctx context.Context, symbol string, limit int) (*models.SentimentPayload, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	return fetch[models.SentimentPayload](ctx, s, call{
		client:  s.mediumClient,
		breaker: BreakerReddit,
		op:      "reddit_sentiment",
		method:  http.MethodGet,
		path:    "/reddit/" + url.PathEscape(NormalizeSymbol(symbol)) + "/sentiment",
		params:  params,
		ttl:     TTLSentiment,
	})
}

// GetComprehensiveSentiment aggregates sentiment across named subreddits.
func (s *PredictionAPIService) GetComprehensiveSentiment(ctx context.Context, symbol string, subreddits []string, limit int) (*models.SentimentPayload, error) {
	params := url.Values{}
	if len(subreddits) > 0 {
		params.Set("subreddits", strings.Join(subreddits, ","))
	}
	params.Set("limit", strconv.Itoa(limit))
	return fetch[models.SentimentPayload](ctx, s, call{
		client:  s.longClient,
		breaker: BreakerReddit,
		op:      "reddit_comprehensive",
		method:  http.MethodGet,
		path:    "/reddit/" + url.PathEscape(NormalizeSymbol(symbol)) + "/comprehensive",
		params:  params,
		ttl:     TTLComprehensive,
	})
}

// GetAvailableSubreddits lists the communities the API can analyze.
func (s *PredictionAPIService) GetAvailableSubreddits(ctx context.Context) (*models.AvailableSubreddits, error) {
	return fetch[models.AvailableSubreddits](ctx, s, call{
		client:  s.shortClient,
		breaker: BreakerReddit,
		op:      "subreddits",
		method:  http.MethodGet,
		path:    "/reddit/subreddits/available",
		ttl:     TTLSubreddits,
	})
}

// AnalyzeText runs the sentiment pipeline on an ad-hoc text. The upstream
// takes the text as a query parameter on a POST.
func (s *PredictionAPIService) AnalyzeText(ctx context.Context, text string) (*models.TextAnalysisResult, error) {
	params := url.Values{}
	params.Set("text", text)
	return fetch[models.TextAnalysisResult](ctx, s, call{
		client:  s.mediumClient,
		breaker: BreakerReddit,
		op:      "analyze_text",
		method:  http.MethodPost,
		path:    "/reddit/analyze-text",
		params:  params,
		ttl:     TTLAnalyzeText,
	})
}

// GetRedditPosts returns recent posts mentioning a symbol.
func (s *PredictionAPIService) GetRedditPosts(ctx context.Context, symbol string, limit int) (*[]models.RedditPost, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	return fetch[[]models.RedditPost](ctx, s, call{
		client:  s.mediumClient,
		breaker: BreakerReddit,
		op:      "reddit_posts",
		method:  http.MethodGet,
		path:    "/reddit/" + url.PathEscape(NormalizeSymbol(symbol)) + "/posts",
		params:  params,
		ttl:     TTLPosts,
	})
}

// GetHistory returns the historical price series for a symbol.
func (s *PredictionAPIService) GetHistory(ctx context.Context, symbol, period, interval string) (*models.HistoricalSeries, error) {
	params := url.Values{}
	params.Set("period", period)
	params.Set("interval", interval)
	return fetch[models.HistoricalSeries](ctx, s, call{
		client:  s.mediumClient,
		breaker: BreakerStock,
		op:      "history",
		method:  http.MethodGet,
		path:    "/stock/" + url.PathEscape(NormalizeSymbol(symbol)) + "/history",
		params:  params,
		ttl:     TTLHistory,
	})
}

// call describes a single upstream operation.
type call struct {
	client  *http.Client
	breaker string
	op      string
	method  string
	path    string
	params  url.Values
	ttl     time.Duration
}

// fetch performs one cached upstream call. Cache hits within TTL never
// touch the network. Only successful, fully decoded responses are cached;
// failures are never stored, so the next action re-issues the call. No
// retries: a single failed attempt is final for that user action.
func fetch[T any](ctx context.Context, s *PredictionAPIService, c call) (*T, error) {
	base := s.BaseURL()
	key := CacheKey(base, c.method, c.path, c.params)

	metrics := observability.GetMetrics()
	if v, ok := s.cache.Get(key); ok {
		if typed, ok := v.(*T); ok {
			metrics.RecordCacheHit(c.op)
			return typed, nil
		}
	}
	metrics.RecordCacheMiss(c.op)
	metrics.RecordUpstreamRequest(c.op)
	start := time.Now()

	result, err := WithCircuitBreaker(ctx, c.breaker, func() (*T, error) {
		reqURL := base + c.path
		if len(c.params) > 0 {
			reqURL += "?" + c.params.Encode()
		}

		req, err := http.NewRequestWithContext(ctx, c.method, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
		}

		var out T
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
		}

		return &out, nil
	})

	metrics.RecordUpstreamDuration(c.op, time.Since(start))

	if err != nil {
		metrics.RecordUpstreamError(c.op, errorType(err))
		observability.Warn("upstream call failed",
			"operation", c.op,
			"path", c.path,
			"error", err)
		return nil, err
	}

	s.cache.Set(key, result, c.ttl)
	return result, nil
}

// errorType buckets an error for metrics labels.
func errorType(err error) string {
	switch {
	case errors.Is(err, ErrUnavailable):
		return "upstream"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "other"
	}
}

// Compile-time interface verification
var _ PredictionAPIInterface = (*PredictionAPIService)(nil)
