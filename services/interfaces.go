package services

import (
	"context"

	"sentiment-dashboard/models"
)

// PredictionAPIInterface defines the operations of the prediction API
// gateway client. The dashboard application depends on this interface so
// tests can substitute a mock upstream.
type PredictionAPIInterface interface {
	BaseURL() string
	SetBaseURL(u string)

	GetHealth(ctx context.Context) (*models.HealthStatus, error)
	Predict(ctx context.Context, symbol string, includeSentiment bool) (*models.PredictionResult, error)
	GetModelInfo(ctx context.Context) (*models.ModelInfo, error)
	GetStockInfo(ctx context.Context, symbol string) (*models.StockInfo, error)
	GetTechnicalIndicators(ctx context.Context, symbol string) (*models.TechnicalIndicators, error)
	GetRedditSentiment(ctx context.Context, symbol string, limit int) (*models.SentimentPayload, error)
	GetComprehensiveSentiment(ctx context.Context, symbol string, subreddits []string, limit int) (*models.SentimentPayload, error)
	GetAvailableSubreddits(ctx context.Context) (*models.AvailableSubreddits, error)
	AnalyzeText(ctx context.Context, text string) (*models.TextAnalysisResult, error)
	GetRedditPosts(ctx context.Context, symbol string, limit int) (*[]models.RedditPost, error)
	GetHistory(ctx context.Context, symbol, period, interval string) (*models.HistoricalSeries, error)
}

// ClientFactory builds a client bound to a specific base URL. The shared
// service's WithBaseURL satisfies it in production; tests inject their own.
type ClientFactory func(baseURL string) PredictionAPIInterface
