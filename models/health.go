package models

// HealthStatus reports the prediction API's readiness, polled once per
// session refresh.
type HealthStatus struct {
	Healthy         bool `json:"healthy"`
	ModelLoaded     bool `json:"model_loaded"`
	RedditAvailable bool `json:"reddit_available"`
}

// ModelInfo describes the model served by the prediction API.
type ModelInfo struct {
	ModelType     string `json:"model_type"`
	FeaturesCount int    `json:"features_count"`
	Loaded        bool   `json:"loaded"`
	Version       string `json:"version"`
}
