package models

// TextStats summarizes the cleaned input text.
type TextStats struct {
	OriginalLength      int  `json:"original_length"`
	CleanedLength       int  `json:"cleaned_length"`
	WordCount           int  `json:"word_count"`
	TickerCount         int  `json:"ticker_count"`
	HasFinancialContent bool `json:"has_financial_content"`
}

// TextSentiment carries the VADER and TextBlob scores for an ad-hoc text.
type TextSentiment struct {
	VaderScore     float64 `json:"vader_score"`
	VaderSentiment string  `json:"vader_sentiment"`
	VaderPositive  float64 `json:"vader_positive"`
	VaderNegative  float64 `json:"vader_negative"`
	VaderNeutral   float64 `json:"vader_neutral"`
	BlobScore      float64 `json:"blob_score"`
	BlobSentiment  string  `json:"blob_sentiment"`
}

// MarketKeywords lists financial keywords detected in a text.
type MarketKeywords struct {
	KeywordsFound []string `json:"keywords_found"`
	KeywordCount  int      `json:"keyword_count"`
}

// TextAnalysisResult is the response of the ad-hoc text analysis endpoint.
type TextAnalysisResult struct {
	OriginalText      string         `json:"original_text"`
	CleanedText       string         `json:"cleaned_text"`
	TextStats         TextStats      `json:"text_stats"`
	SentimentAnalysis TextSentiment  `json:"sentiment_analysis"`
	TickersFound      []string       `json:"tickers_found"`
	MarketKeywords    MarketKeywords `json:"market_keywords"`
}
