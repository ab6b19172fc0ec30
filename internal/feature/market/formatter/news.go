package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"market_backend/internal/feature/market/domain/entity"
	"market_backend/internal/platform/externalapi/alphavantage/dto"
)

// MaxNewsItems はニュースフィードから取り出す記事数です。
const MaxNewsItems = 5

// publishedLayouts は time_published として受け付ける書式です。
var publishedLayouts = []string{
	"20060102T150405",
	"20060102T1504",
	time.RFC3339,
}

// News はフィード先頭の記事を相対時刻付きのニュース項目に変換します。
func News(res dto.NewsSentimentResponse, now time.Time) []entity.NewsItem {
	n := min(len(res.Feed), MaxNewsItems)
	out := make([]entity.NewsItem, 0, n)
	for _, a := range res.Feed[:n] {
		item := entity.NewsItem{
			Title:          a.Title,
			Source:         a.Source,
			URL:            a.URL,
			SentimentLabel: a.OverallSentimentLabel,
			RelativeTime:   "unknown",
		}
		if t, ok := parsePublished(a.TimePublished); ok {
			item.PublishedAt = t
			item.RelativeTime = RelativeTime(t, now)
		}
		out = append(out, item)
	}
	return out
}

func parsePublished(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range publishedLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var relativeUnits = []struct {
	seconds  float64
	singular string
	plural   string
}{
	{31536000, "year", "years"},
	{2592000, "month", "months"},
	{86400, "day", "days"},
	{3600, "hour", "hours"},
	{60, "minute", "minutes"},
}

// RelativeTime は t から now までの経過時間を "3 hours ago" のような粗い表現にします。
// 区間値が1を超える最大の単位を選び、どれにも当てはまらなければ秒で表します。
// 未来の時刻は 0 秒として扱います。
func RelativeTime(t, now time.Time) string {
	secs := math.Floor(now.Sub(t).Seconds())
	if secs < 0 {
		secs = 0
	}
	for _, u := range relativeUnits {
		if interval := secs / u.seconds; interval > 1 {
			return plural(int64(math.Floor(interval)), u.singular, u.plural)
		}
	}
	return plural(int64(secs), "second", "seconds")
}

func plural(n int64, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s ago", n, singular)
	}
	return fmt.Sprintf("%d %s ago", n, pluralForm)
}
