package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"market_backend/internal/feature/market/domain/entity"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	neutralStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	sentimentStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F59E0B")).
			Padding(0, 1)
)

func toneStyle(t entity.Tone) lipgloss.Style {
	switch t {
	case entity.TonePositive:
		return positiveStyle
	case entity.ToneNegative:
		return negativeStyle
	default:
		return neutralStyle
	}
}

// renderQuotes は銘柄の一覧を表形式で出力します。変化率はトーンで色分けします。
func renderQuotes(w io.Writer, title string, qs []entity.Quote) {
	fmt.Fprintln(w, titleStyle.Render(title))
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-8s %-26s %14s %12s", "SYMBOL", "NAME", "PRICE", "CHANGE")))
	if len(qs) == 0 {
		fmt.Fprintln(w, neutralStyle.Render("  (no data)"))
		return
	}
	for _, q := range qs {
		fmt.Fprintln(w, quoteRow(q))
	}
}

func quoteRow(q entity.Quote) string {
	row := fmt.Sprintf("%-8s %-26s %14s ", q.Symbol, truncate(q.Name, 26), q.Price)
	change := toneStyle(q.Tone).Render(fmt.Sprintf("%12s", q.Change))
	switch {
	case q.Error != "":
		return row + change + " " + errorStyle.Render("error: "+q.Error)
	case q.Unavailable:
		return row + change + " " + errorStyle.Render("unavailable")
	case q.Synthetic && q.Change != entity.NotAvailable:
		return row + change + " " + neutralStyle.Render("(synthetic)")
	default:
		return row + change
	}
}

// renderNews はニュース見出しを出力します。
func renderNews(w io.Writer, items []entity.NewsItem) {
	fmt.Fprintln(w, titleStyle.Render("Market News"))
	if len(items) == 0 {
		fmt.Fprintln(w, neutralStyle.Render("  (no news)"))
		return
	}
	for _, n := range items {
		fmt.Fprintf(w, "• %s\n", n.Title)
		meta := n.Source + " · " + n.RelativeTime
		if n.SentimentLabel != "" {
			meta += " · " + n.SentimentLabel
		}
		fmt.Fprintln(w, "  "+neutralStyle.Render(meta))
		if n.URL != "" {
			fmt.Fprintln(w, "  "+n.URL)
		}
	}
}

// renderSentiment は市場センチメントの要約ブロックを出力します。
func renderSentiment(w io.Writer, s entity.Sentiment) {
	overall := neutralStyle
	switch s.Overall {
	case entity.OverallBullish, entity.OverallSlightlyBullish:
		overall = positiveStyle
	case entity.OverallBearish, entity.OverallSlightlyBearish:
		overall = negativeStyle
	}
	body := strings.Join([]string{
		headerStyle.Render("Market Sentiment"),
		"Overall:       " + overall.Render(string(s.Overall)),
		fmt.Sprintf("Fear & Greed:  %d/100", s.FearGreedIndex),
		"Volatility:    " + string(s.Volatility),
		"Trend:         " + string(s.Trend),
	}, "\n")
	fmt.Fprintln(w, sentimentStyle.Render(body))
}

// renderDashboard はダッシュボード全体を出力します。失敗したカテゴリは末尾にまとめます。
func renderDashboard(w io.Writer, d entity.Dashboard) {
	renderSentiment(w, d.Sentiment)
	fmt.Fprintln(w)
	renderQuotes(w, "Market Indices", d.Indices)
	fmt.Fprintln(w)
	renderQuotes(w, "Popular Stocks", d.Stocks)
	fmt.Fprintln(w)
	renderQuotes(w, "Cryptocurrency", d.Crypto)
	fmt.Fprintln(w)
	renderNews(w, d.News)
	if len(d.Errors) > 0 {
		fmt.Fprintln(w)
		for _, e := range d.Errors {
			fmt.Fprintln(w, errorStyle.Render("! "+e))
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, neutralStyle.Render("Updated at "+d.UpdatedAt.Format("2006-01-02 15:04:05")))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
