// Package main runs a standalone mock of the prediction API. It serves
// deterministic canned data on every endpoint the dashboard calls, so the
// dashboard can be developed and demoed without the real deployment:
//
//	PREDICTION_API_URL=http://localhost:9090 go run ./cmd/dashboard
package main

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"os"
	"strings"
	"time"

	"sentiment-dashboard/models"
	"sentiment-dashboard/observability"

	"github.com/go-chi/chi/v5"
)

func main() {
	observability.InitLogger(false)

	port := os.Getenv("MOCK_API_PORT")
	if port == "" {
		port = "9090"
	}

	r := chi.NewRouter()
	r.Get("/health", handleHealth)
	r.Get("/predict/{symbol}", handlePredict)
	r.Get("/model/info", handleModelInfo)
	r.Get("/stock/{symbol}/info", handleStockInfo)
	r.Get("/stock/{symbol}/indicators", handleIndicators)
	r.Get("/stock/{symbol}/history", handleHistory)
	r.Get("/reddit/{symbol}/sentiment", handleSentiment)
	r.Get("/reddit/{symbol}/comprehensive", handleComprehensive)
	r.Get("/reddit/{symbol}/posts", handlePosts)
	r.Get("/reddit/subreddits/available", handleSubreddits)
	r.Post("/reddit/analyze-text", handleAnalyzeText)

	observability.Info("starting mock prediction API", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		observability.Fatal("mock server error", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// seed derives a stable per-symbol value in [-1, 1) so repeated calls for
// the same ticker return the same numbers.
func seed(symbol string) float64 {
	h := fnv.New32a()
	h.Write([]byte(strings.ToUpper(symbol)))
	return float64(int32(h.Sum32()))/float64(1<<31)*2 - 1
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, models.HealthStatus{Healthy: true, ModelLoaded: true, RedditAvailable: true})
}

func handlePredict(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
	s := seed(symbol)
	confidence := 0.6 + 0.3*(s+1)/2
	writeJSON(w, models.PredictionResult{
		Symbol:            symbol,
		Prediction:        s * 0.05,
		PredictionPercent: s * 5,
		Confidence:        &confidence,
		Timestamp:         time.Now().UTC().Format("2006-01-02T15:04:05.000000"),
		DataSources: models.DataSources{
			Financial:           true,
			RedditSentiment:     r.URL.Query().Get("include_sentiment") != "false",
			TechnicalIndicators: true,
		},
	})
}

func handleModelInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, models.ModelInfo{ModelType: "XGBoost", FeaturesCount: 34, Loaded: true, Version: "mock"})
}

func handleStockInfo(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
	price := 100 + 400*(seed(symbol)+1)/2
	marketCap := price * 2.5e9
	writeJSON(w, models.StockInfo{
		Symbol:       symbol,
		CompanyName:  symbol + " Inc.",
		Sector:       "Technology",
		Industry:     "Consumer Electronics",
		Exchange:     "NMS",
		Currency:     "USD",
		CurrentPrice: price,
		MarketCap:    &marketCap,
		Timestamp:    time.Now().UTC().Format("2006-01-02T15:04:05"),
	})
}

func handleIndicators(w http.ResponseWriter, r *http.Request) {
	s := seed(chi.URLParam(r, "symbol"))
	writeJSON(w, models.TechnicalIndicators{
		RSI14: 50 + s*30,
		MACD:  s * 2,
		SMA20: 200 + s*20,
		SMA50: 195 + s*15,
		Date:  time.Now().UTC().Format("2006-01-02"),
	})
}

func handleHistory(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "1mo"
	}

	s := seed(symbol)
	base := 100 + 400*(s+1)/2
	days := 22
	candles := make([]models.Candle, days)
	day := time.Now().UTC().AddDate(0, 0, -days)
	for i := range candles {
		drift := base * (1 + s*0.002*float64(i))
		candles[i] = models.Candle{
			Date:   day.AddDate(0, 0, i).Format("2006-01-02"),
			Open:   drift * 0.995,
			High:   drift * 1.01,
			Low:    drift * 0.99,
			Close:  drift,
			Volume: int64(1e6 * (1 + (s+1)/2)),
		}
	}
	writeJSON(w, models.HistoricalSeries{
		Data:       candles,
		Period:     period,
		DataPoints: days,
		StartDate:  candles[0].Date,
		EndDate:    candles[days-1].Date,
	})
}

func handleSentiment(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
	s := seed(symbol)
	writeJSON(w, map[string]any{
		"subreddit":       "wallstreetbets",
		"posts_analyzed":  25,
		"sentiment_score": s * 0.5,
		"sentiment_label": label(s * 0.5),
		"vader_score":     s * 0.4,
		"blob_score":      s * 0.3,
		"tickers_found":   []string{symbol},
		"market_keywords": []string{"calls", "moon"},
	})
}

func handleComprehensive(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
	s := seed(symbol)
	subs := strings.Split(r.URL.Query().Get("subreddits"), ",")
	if len(subs) == 1 && subs[0] == "" {
		subs = []string{"wallstreetbets", "stocks", "investing"}
	}

	analysis := make(map[string]any, len(subs))
	for i, name := range subs {
		score := s * 0.5 * float64(i+1) / float64(len(subs))
		analysis[name] = map[string]any{
			"posts_analyzed":  25,
			"sentiment_score": score,
			"sentiment_label": label(score),
		}
	}
	writeJSON(w, map[string]any{
		"total_posts":        25 * len(subs),
		"overall_sentiment":  s * 0.5,
		"sentiment_label":    label(s * 0.5),
		"aggregated_metrics": map[string]any{"subreddits_analyzed": len(subs), "total_comments": 1800},
		"subreddit_analysis": analysis,
	})
}

func handlePosts(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
	posts := make([]models.RedditPost, 5)
	for i := range posts {
		posts[i] = models.RedditPost{
			Title:       fmt.Sprintf("%s discussion thread %d", symbol, i+1),
			Author:      fmt.Sprintf("user%d", i+1),
			CreatedUTC:  float64(time.Now().Add(-time.Duration(i) * time.Hour).Unix()),
			Score:       500 - i*90,
			NumComments: 120 - i*20,
			UpvoteRatio: 0.92,
		}
	}
	writeJSON(w, posts)
}

func handleSubreddits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, models.AvailableSubreddits{
		Subreddits: []string{"wallstreetbets", "stocks", "investing", "StockMarket", "options"},
	})
}

func handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	s := seed(text)
	writeJSON(w, models.TextAnalysisResult{
		OriginalText: text,
		CleanedText:  strings.ToLower(text),
		TextStats: models.TextStats{
			OriginalLength:      len(text),
			CleanedLength:       len(text),
			WordCount:           len(strings.Fields(text)),
			HasFinancialContent: true,
		},
		SentimentAnalysis: models.TextSentiment{
			VaderScore:     s * 0.6,
			VaderSentiment: label(s * 0.6),
			BlobScore:      s * 0.4,
			BlobSentiment:  label(s * 0.4),
		},
		MarketKeywords: models.MarketKeywords{
			KeywordsFound: []string{"moon"},
			KeywordCount:  1,
		},
	})
}

func label(score float64) string {
	switch {
	case score > 0.05:
		return models.SentimentBullish
	case score < -0.05:
		return models.SentimentBearish
	default:
		return models.SentimentNeutral
	}
}
