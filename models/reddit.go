package models

import "encoding/json"

// Sentiment labels reported by the prediction API.
const (
	SentimentBullish = "bullish"
	SentimentBearish = "bearish"
	SentimentNeutral = "neutral"
)

// RedditSentiment is the single-subreddit ("basic") sentiment analysis.
type RedditSentiment struct {
	Subreddit      string   `json:"subreddit"`
	PostsAnalyzed  int      `json:"posts_analyzed"`
	AvgScore       float64  `json:"avg_score"`
	AvgUpvoteRatio float64  `json:"avg_upvote_ratio"`
	TotalComments  int      `json:"total_comments"`
	SentimentScore float64  `json:"sentiment_score"`
	SentimentLabel string   `json:"sentiment_label"`
	VaderScore     float64  `json:"vader_score"`
	BlobScore      float64  `json:"blob_score"`
	TickersFound   []string `json:"tickers_found"`
	MarketKeywords []string `json:"market_keywords"`
}

// SubredditMetrics is the per-subreddit slice of a comprehensive analysis.
// Same shape as the basic analysis minus ticker extraction.
type SubredditMetrics struct {
	PostsAnalyzed  int     `json:"posts_analyzed"`
	AvgScore       float64 `json:"avg_score"`
	AvgUpvoteRatio float64 `json:"avg_upvote_ratio"`
	TotalComments  int     `json:"total_comments"`
	SentimentScore float64 `json:"sentiment_score"`
	SentimentLabel string  `json:"sentiment_label"`
	VaderScore     float64 `json:"vader_score"`
	BlobScore      float64 `json:"blob_score"`
}

// AggregatedMetrics summarizes a comprehensive analysis across subreddits.
type AggregatedMetrics struct {
	SubredditsAnalyzed int     `json:"subreddits_analyzed"`
	AvgScore           float64 `json:"avg_score"`
	AvgUpvoteRatio     float64 `json:"avg_upvote_ratio"`
	TotalComments      int     `json:"total_comments"`
}

// ComprehensiveSentiment aggregates sentiment across multiple subreddits.
type ComprehensiveSentiment struct {
	TotalPosts        int                         `json:"total_posts"`
	AggregatedMetrics AggregatedMetrics           `json:"aggregated_metrics"`
	OverallSentiment  float64                     `json:"overall_sentiment"`
	SentimentLabel    string                      `json:"sentiment_label"`
	SubredditAnalysis map[string]SubredditMetrics `json:"subreddit_analysis"`
}

// PostSentiment is the optional per-post sentiment breakdown.
type PostSentiment struct {
	VaderScore float64 `json:"vader_score"`
	BlobScore  float64 `json:"blob_score"`
	Label      string  `json:"label"`
}

// RedditPost is a single post as returned by the posts endpoint.
type RedditPost struct {
	Title             string         `json:"title"`
	Author            string         `json:"author"`
	Selftext          string         `json:"selftext"`
	CreatedUTC        float64        `json:"created_utc"`
	URL               string         `json:"url"`
	Score             int            `json:"score"`
	NumComments       int            `json:"num_comments"`
	UpvoteRatio       float64        `json:"upvote_ratio"`
	SentimentAnalysis *PostSentiment `json:"sentiment_analysis,omitempty"`
	TickersFound      []string       `json:"tickers_found,omitempty"`
}

// AvailableSubreddits lists the communities the API can analyze.
type AvailableSubreddits struct {
	Subreddits []string `json:"subreddits"`
}

// SentimentScope distinguishes the two Reddit sentiment payload shapes.
type SentimentScope string

const (
	ScopeBasic         SentimentScope = "basic"
	ScopeComprehensive SentimentScope = "comprehensive"
)

// ClassifySentimentPayload decides whether a raw sentiment payload is a
// basic or comprehensive analysis. The only discriminator is the presence
// of the subreddit_analysis key; no other field participates.
func ClassifySentimentPayload(raw []byte) SentimentScope {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ScopeBasic
	}
	if _, ok := probe["subreddit_analysis"]; ok {
		return ScopeComprehensive
	}
	return ScopeBasic
}

// SentimentPayload is the decoded form of either Reddit sentiment shape.
// Exactly one of Basic or Comprehensive is set, per Scope.
type SentimentPayload struct {
	Scope         SentimentScope          `json:"scope"`
	Basic         *RedditSentiment        `json:"basic,omitempty"`
	Comprehensive *ComprehensiveSentiment `json:"comprehensive,omitempty"`
}

// UnmarshalJSON classifies the raw payload and decodes it into the matching
// shape.
func (p *SentimentPayload) UnmarshalJSON(data []byte) error {
	p.Scope = ClassifySentimentPayload(data)
	switch p.Scope {
	case ScopeComprehensive:
		var c ComprehensiveSentiment
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		p.Comprehensive = &c
	default:
		var b RedditSentiment
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		p.Basic = &b
	}
	return nil
}
