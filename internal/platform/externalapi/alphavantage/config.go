// Package alphavantage provides a client for the Alpha Vantage market data API.
package alphavantage

import "time"

// Config holds configuration for the Alpha Vantage API client.
type Config struct {
	APIKey  string        // API key for authentication
	BaseURL string        // Query endpoint (e.g., "https://www.alphavantage.co/query")
	Timeout time.Duration // HTTP request timeout
}
