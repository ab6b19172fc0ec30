// Package dto defines the JSON bodies of the market endpoints.
package dto

// QuoteResponse は株式・指数・暗号資産のレコードです。
type QuoteResponse struct {
	Kind        string `json:"kind"`
	Symbol      string `json:"symbol"`
	Source      string `json:"source,omitempty"` // 上流に問い合わせたシンボル
	Name        string `json:"name"`
	Price       string `json:"price"`
	Change      string `json:"change"`
	Tone        string `json:"tone"`
	Color       string `json:"color"` // 表示用のCSSクラス
	Synthetic   bool   `json:"synthetic,omitempty"`
	Unavailable bool   `json:"unavailable,omitempty"`
	Error       string `json:"error,omitempty"`
}

// NewsResponse はニュース1件です。
type NewsResponse struct {
	Title          string `json:"title"`
	Source         string `json:"source"`
	URL            string `json:"url"`
	Time           string `json:"time"`                   // "3 hours ago"
	PublishedAt    string `json:"published_at,omitempty"` // RFC3339
	SentimentLabel string `json:"sentiment_label,omitempty"`
}

// SentimentResponse は市場ムードの要約です。
type SentimentResponse struct {
	Overall        string `json:"overall"`
	FearGreedIndex int    `json:"fear_greed_index"`
	Volatility     string `json:"volatility"`
	Trend          string `json:"trend"`
}

// DashboardResponse はダッシュボード一式です。
type DashboardResponse struct {
	Indices   []QuoteResponse   `json:"indices"`
	Stocks    []QuoteResponse   `json:"stocks"`
	Crypto    []QuoteResponse   `json:"crypto"`
	News      []NewsResponse    `json:"news"`
	Sentiment SentimentResponse `json:"sentiment"`
	Errors    []string          `json:"errors,omitempty"`
	UpdatedAt string            `json:"updated_at"`
}
