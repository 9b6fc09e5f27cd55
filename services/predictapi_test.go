package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"sentiment-dashboard/observability"
)

func TestMain(m *testing.M) {
	observability.InitLogger(false)
	observability.InitMetricsWith(prometheus.NewRegistry())
	os.Exit(m.Run())
}

// freshBreakers isolates circuit breaker state between tests so repeated
// failures in one test cannot trip a breaker another test relies on.
func freshBreakers(t *testing.T) {
	t.Helper()
	SetGlobalRegistry(NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig))
}

func TestNewPredictionAPIService(t *testing.T) {
	s := NewPredictionAPIService("https://api.example.com/")
	if s.BaseURL() != "https://api.example.com" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", s.BaseURL())
	}
	if s.Cache() == nil {
		t.Error("cache should not be nil")
	}
}

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"tsla", "TSLA"},
		{" aapl ", "AAPL"},
		{"BRK.B", "BRK.B"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeSymbol(tt.in); got != tt.want {
			t.Errorf("NormalizeSymbol(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetHealth_Success(t *testing.T) {
	freshBreakers(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"healthy": true, "model_loaded": true, "reddit_available": false}`))
	}))
	defer server.Close()

	s := NewPredictionAPIService(server.URL)
	status, err := s.GetHealth(context.Background())
	if err != nil {
		t.Fatalf("GetHealth error: %v", err)
	}
	if !status.Healthy {
		t.Error("expected healthy status")
	}
	if !status.ModelLoaded {
		t.Error("expected model_loaded true")
	}
	if status.RedditAvailable {
		t.Error("expected reddit_available false")
	}
}

func TestPredict_Success(t *testing.T) {
	freshBreakers(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict/AAPL" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("include_sentiment"); got != "true" {
			t.Errorf("include_sentiment = %q, want true", got)
		}
		w.Write([]byte(`{
			"symbol": "AAPL",
			"prediction": 0.035,
			"prediction_percent": 3.5,
			"confidence": 0.82,
			"timestamp": "2025-06-01T14:30:00.123456",
			"data_sources": {"financial": true, "reddit_sentiment": true}
		}`))
	}))
	defer server.Close()

	s := NewPredictionAPIService(server.URL)
	result, err := s.Predict(context.Background(), "aapl", true)
	if err != nil {
		t.Fatalf("Predict error: %v", err)
	}
	if result.Symbol != "AAPL" {
		t.Errorf("Symbol = %q, want AAPL", result.Symbol)
	}
	if result.PredictionPercent != 3.5 {
		t.Errorf("PredictionPercent = %v, want 3.5", result.PredictionPercent)
	}
	if result.Confidence == nil || *result.Confidence != 0.82 {
		t.Errorf("Confidence = %v, want 0.82", result.Confidence)
	}
}

func TestPredict_LowercaseSymbolUppercasedInPath(t *testing.T) {
	freshBreakers(t)
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"symbol": "TSLA", "prediction_percent": 1.0}`))
	}))
	defer server.Close()

	s := NewPredictionAPIService(server.URL)
	if _, err := s.Predict(context.Background(), " tsla ", false); err != nil {
		t.Fatalf("Predict error: %v", err)
	}
	if gotPath != "/predict/TSLA" {
		t.Errorf("path = %q, want /predict/TSLA", gotPath)
	}
}

func TestFetch_ServerErrorReturnsErrUnavailable(t *testing.T) {
	freshBreakers(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	s := NewPredictionAPIService(server.URL)
	result, err := s.GetStockInfo(context.Background(), "TSLA")
	if err == nil {
		t.Fatal("expected error on 500")
	}
	if result != nil {
		t.Error("result must be nil on failure, never partial")
	}
	if s.Cache().Len() != 0 {
		t.Error("failed responses must not be cached")
	}
}

func TestFetch_MalformedJSONReturnsErrUnavailable(t *testing.T) {
	freshBreakers(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbol": "TS`))
	}))
	defer server.Close()

	s := NewPredictionAPIService(server.URL)
	result, err := s.GetStockInfo(context.Background(), "TSLA")
	if err == nil {
		t.Fatal("expected error on malformed body")
	}
	if result != nil {
		t.Error("result must be nil on malformed body")
	}
	if s.Cache().Len() != 0 {
		t.Error("malformed responses must not be cached")
	}
}

func TestFetch_CacheHitSkipsNetwork(t *testing.T) {
	freshBreakers(t)
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"symbol": "TSLA", "current_price": 250.5}`))
	}))
	defer server.Close()

	s := NewPredictionAPIService(server.URL)
	ctx := context.Background()

	first, err := s.GetStockInfo(ctx, "TSLA")
	if err != nil {
		t.Fatalf("first call error: %v", err)
	}
	second, err := s.GetStockInfo(ctx, "TSLA")
	if err != nil {
		t.Fatalf("second call error: %v", err)
	}

	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("server hit %d times, want 1 (second call should be cached)", n)
	}
	if first != second {
		t.Error("cached call should return the identical decoded object")
	}
}

func TestFetch_DifferentParamsMissCache(t *testing.T) {
	freshBreakers(t)
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"subreddit": "wallstreetbets", "sentiment_score": 0.2}`))
	}))
	defer server.Close()

	s := NewPredictionAPIService(server.URL)
	ctx := context.Background()

	if _, err := s.GetRedditSentiment(ctx, "TSLA", 25); err != nil {
		t.Fatalf("error: %v", err)
	}
	if _, err := s.GetRedditSentiment(ctx, "TSLA", 50); err != nil {
		t.Fatalf("error: %v", err)
	}

	if n := atomic.LoadInt32(&hits); n != 2 {
		t.Errorf("server hit %d times, want 2 (different limits are distinct keys)", n)
	}
}

func TestSetBaseURL_InvalidatesCachedEntries(t *testing.T) {
	freshBreakers(t)
	var hits int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"healthy": true, "model_loaded": true}`))
	})
	serverA := httptest.NewServer(handler)
	defer serverA.Close()
	serverB := httptest.NewServer(handler)
	defer serverB.Close()

	s := NewPredictionAPIService(serverA.URL)
	ctx := context.Background()

	if _, err := s.GetHealth(ctx); err != nil {
		t.Fatalf("error: %v", err)
	}

	s.SetBaseURL(serverB.URL)
	if _, err := s.GetHealth(ctx); err != nil {
		t.Fatalf("error after base URL change: %v", err)
	}

	if n := atomic.LoadInt32(&hits); n != 2 {
		t.Errorf("server hit %d times, want 2 (URL change must bypass old cache)", n)
	}
}

func TestWithBaseURL_SharesCacheWithoutLeaking(t *testing.T) {
	freshBreakers(t)
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"healthy": true}`))
	}))
	defer server.Close()

	shared := NewPredictionAPIService(server.URL)
	override := shared.WithBaseURL(server.URL + "/v2")
	if override.Cache() != shared.Cache() {
		t.Error("override client should share the response cache")
	}

	ctx := context.Background()
	if _, err := shared.GetHealth(ctx); err != nil {
		t.Fatalf("error: %v", err)
	}
	// Different base URL means a different key; the override must not see
	// the shared client's entry.
	if _, ok := override.Cache().Get(CacheKey(override.BaseURL(), http.MethodGet, "/health", nil)); ok {
		t.Error("override base URL should not hit the shared client's entry")
	}
}

func TestAnalyzeText_PostsWithQueryParam(t *testing.T) {
	freshBreakers(t)
	var gotMethod, gotText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotText = r.URL.Query().Get("text")
		w.Write([]byte(`{
			"text_stats": {"word_count": 4, "has_financial_content": true},
			"sentiment_analysis": {"vader_score": 0.6, "vader_sentiment": "bullish"},
			"tickers_found": ["TSLA"]
		}`))
	}))
	defer server.Close()

	s := NewPredictionAPIService(server.URL)
	result, err := s.AnalyzeText(context.Background(), "TSLA to the moon")
	if err != nil {
		t.Fatalf("AnalyzeText error: %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if gotText != "TSLA to the moon" {
		t.Errorf("text param = %q", gotText)
	}
	if result.SentimentAnalysis.VaderSentiment != "bullish" {
		t.Errorf("VaderSentiment = %q, want bullish", result.SentimentAnalysis.VaderSentiment)
	}
}

func TestGetHistory_ParamsAndDecode(t *testing.T) {
	freshBreakers(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("period"); got != "3mo" {
			t.Errorf("period = %q, want 3mo", got)
		}
		if got := r.URL.Query().Get("interval"); got != "1d" {
			t.Errorf("interval = %q, want 1d", got)
		}
		w.Write([]byte(`{
			"data": [
				{"date": "2025-05-01", "open": 100, "high": 110, "low": 95, "close": 105, "volume": 1000000},
				{"date": "2025-05-02", "open": 105, "high": 112, "low": 104, "close": 110, "volume": 1200000}
			],
			"period": "3mo",
			"data_points": 2
		}`))
	}))
	defer server.Close()

	s := NewPredictionAPIService(server.URL)
	series, err := s.GetHistory(context.Background(), "TSLA", "3mo", "1d")
	if err != nil {
		t.Fatalf("GetHistory error: %v", err)
	}
	if len(series.Data) != 2 {
		t.Fatalf("len(Data) = %d, want 2", len(series.Data))
	}
	if series.Data[1].Close != 110 {
		t.Errorf("last close = %v, want 110", series.Data[1].Close)
	}
}
