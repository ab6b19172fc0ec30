package entity

import "time"

// NewsItem はニュースフィードの1記事です。
type NewsItem struct {
	Title          string    `json:"title"`
	Source         string    `json:"source"`
	URL            string    `json:"url"`
	RelativeTime   string    `json:"time"`
	PublishedAt    time.Time `json:"published_at"`
	SentimentLabel string    `json:"sentiment_label,omitempty"`
}
