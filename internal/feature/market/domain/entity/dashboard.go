package entity

import "time"

// Dashboard はダッシュボード表示に必要なデータ一式です。
// 取得に失敗したカテゴリは空のリストになり、理由が Errors に入ります。
type Dashboard struct {
	Indices   []Quote    `json:"indices"`
	Stocks    []Quote    `json:"stocks"`
	Crypto    []Quote    `json:"crypto"`
	News      []NewsItem `json:"news"`
	Sentiment Sentiment  `json:"sentiment"`
	Errors    []string   `json:"errors,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}
