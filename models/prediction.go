package models

// DataSources flags which inputs contributed to a prediction.
type DataSources struct {
	Financial           bool `json:"financial"`
	RedditSentiment     bool `json:"reddit_sentiment"`
	TechnicalIndicators bool `json:"technical_indicators"`
}

// PredictionResult is the model's forecast for a single symbol.
// Confidence is optional in the API response; nil means the model did not
// report one.
type PredictionResult struct {
	Symbol            string      `json:"symbol"`
	Prediction        float64     `json:"prediction"` // log-return
	PredictionPercent float64     `json:"prediction_percent"`
	Confidence        *float64    `json:"confidence,omitempty"`
	Timestamp         string      `json:"timestamp"`
	DataSources       DataSources `json:"data_sources"`
	Message           string      `json:"message,omitempty"`
}
