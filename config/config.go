package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// DefaultAPIBaseURL points at the deployed prediction API. Overridable per
// environment and, at runtime, per session.
const DefaultAPIBaseURL = "https://daylong-datalab-reddit.hf.space"

// Config holds all application configuration
type Config struct {
	// Upstream prediction API
	API APIConfig

	// HTTP server configuration
	HTTP HTTPConfig

	// Background refresh configuration
	Refresh RefreshConfig

	// Production toggles JSON logging
	Production bool
}

// APIConfig holds the prediction API client configuration
type APIConfig struct {
	BaseURL string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Port               string
	CORSAllowedOrigins string
	TimeoutSeconds     int
}

// RefreshConfig holds the scheduled background refresh configuration.
// Replaces the blocking sleep-and-reload the dashboard originally shipped
// with: when enabled, health and warm symbols refresh off the request path.
type RefreshConfig struct {
	Enabled         bool
	IntervalSeconds int
	WarmSymbols     []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			BaseURL: getEnvString("PREDICTION_API_URL", DefaultAPIBaseURL),
		},
		HTTP: HTTPConfig{
			Port:               getEnvString("PORT", "8080"),
			CORSAllowedOrigins: getEnvString("CORS_ALLOWED_ORIGINS", "*"),
			TimeoutSeconds:     getEnvInt("HTTP_TIMEOUT_SECONDS", 60),
		},
		Refresh: RefreshConfig{
			Enabled:         getEnvBool("AUTO_REFRESH", false),
			IntervalSeconds: getEnvInt("AUTO_REFRESH_INTERVAL_SECONDS", 30),
			WarmSymbols:     splitSymbols(getEnvString("AUTO_REFRESH_SYMBOLS", "TSLA")),
		},
		Production: getEnvBool("PRODUCTION", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("PREDICTION_API_URL must not be empty")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("PREDICTION_API_URL must be a valid http(s) URL, got %q", c.API.BaseURL)
	}

	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive, got %d", c.HTTP.TimeoutSeconds)
	}
	if c.Refresh.IntervalSeconds <= 0 {
		return fmt.Errorf("AUTO_REFRESH_INTERVAL_SECONDS must be positive, got %d", c.Refresh.IntervalSeconds)
	}

	return nil
}

// splitSymbols parses a comma-separated symbol list, uppercasing entries
// and dropping blanks.
func splitSymbols(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvString(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// NewTestConfig creates a Config with default values for testing
func NewTestConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultAPIBaseURL,
		},
		HTTP: HTTPConfig{
			Port:               "8080",
			CORSAllowedOrigins: "*",
			TimeoutSeconds:     60,
		},
		Refresh: RefreshConfig{
			Enabled:         false,
			IntervalSeconds: 30,
			WarmSymbols:     []string{"TSLA"},
		},
		Production: false,
	}
}
