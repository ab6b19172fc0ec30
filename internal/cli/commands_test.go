package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market_backend/internal/feature/market/domain/entity"
	"market_backend/internal/feature/market/usecase"
)

type mockMarketService struct {
	FetchQuoteFunc         func(ctx context.Context, symbol string) (entity.Quote, error)
	FetchPopularStocksFunc func(ctx context.Context, symbols []string) ([]entity.Quote, error)
	FetchIndicesFunc       func(ctx context.Context) ([]entity.Quote, error)
	FetchCryptoFunc        func(ctx context.Context) ([]entity.Quote, error)
	FetchNewsFunc          func(ctx context.Context) ([]entity.NewsItem, error)
	FetchSentimentFunc     func(ctx context.Context, symbols []string) (entity.Sentiment, error)
	LoadDashboardFunc      func(ctx context.Context, symbols []string) (entity.Dashboard, error)
}

func (m *mockMarketService) FetchQuote(ctx context.Context, symbol string) (entity.Quote, error) {
	return m.FetchQuoteFunc(ctx, symbol)
}

func (m *mockMarketService) FetchPopularStocks(ctx context.Context, symbols []string) ([]entity.Quote, error) {
	return m.FetchPopularStocksFunc(ctx, symbols)
}

func (m *mockMarketService) FetchIndices(ctx context.Context) ([]entity.Quote, error) {
	return m.FetchIndicesFunc(ctx)
}

func (m *mockMarketService) FetchCrypto(ctx context.Context) ([]entity.Quote, error) {
	return m.FetchCryptoFunc(ctx)
}

func (m *mockMarketService) FetchNews(ctx context.Context) ([]entity.NewsItem, error) {
	return m.FetchNewsFunc(ctx)
}

func (m *mockMarketService) FetchSentiment(ctx context.Context, symbols []string) (entity.Sentiment, error) {
	return m.FetchSentimentFunc(ctx, symbols)
}

func (m *mockMarketService) LoadDashboard(ctx context.Context, symbols []string) (entity.Dashboard, error) {
	return m.LoadDashboardFunc(ctx, symbols)
}

type stubTokens struct{}

func (stubTokens) GenerateToken(subject string) (string, error) { return "tok-" + subject, nil }

func run(t *testing.T, deps Deps, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(deps)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

var (
	aapl = entity.Quote{Kind: entity.KindStock, Symbol: "AAPL", Name: "Apple Inc.", Price: "189.25", Change: "+1.2300%", Tone: entity.TonePositive}
	btc  = entity.Quote{Kind: entity.KindCrypto, Symbol: "BTC", Name: "Bitcoin", Price: "64,000.00", Change: "+2.50%", Tone: entity.TonePositive, Synthetic: true}
	bad  = entity.Quote{Kind: entity.KindStock, Symbol: "BAD", Name: "BAD", Price: entity.NotAvailable, Change: entity.NotAvailable, Tone: entity.ToneNeutral, Error: "market data unavailable"}
)

func TestQuoteCmd(t *testing.T) {
	t.Parallel()

	svc := &mockMarketService{FetchQuoteFunc: func(_ context.Context, symbol string) (entity.Quote, error) {
		assert.Equal(t, "aapl", symbol)
		return aapl, nil
	}}

	out, err := run(t, Deps{Market: svc}, "quote", "aapl")

	require.NoError(t, err)
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "Apple Inc.")
	assert.Contains(t, out, "+1.2300%")
}

func TestQuoteCmd_RequiresSymbol(t *testing.T) {
	t.Parallel()

	_, err := run(t, Deps{Market: &mockMarketService{}}, "quote")
	assert.Error(t, err)
}

func TestStocksCmd(t *testing.T) {
	t.Parallel()

	svc := &mockMarketService{FetchPopularStocksFunc: func(_ context.Context, symbols []string) ([]entity.Quote, error) {
		assert.Equal(t, []string{"AAPL", "BAD"}, symbols)
		return []entity.Quote{aapl, bad}, nil
	}}

	out, err := run(t, Deps{Market: svc}, "stocks", "AAPL", "BAD")

	require.NoError(t, err)
	assert.Contains(t, out, "Popular Stocks")
	assert.Contains(t, out, "error: market data unavailable")
}

func TestCryptoCmd_LabelsSynthetic(t *testing.T) {
	t.Parallel()

	svc := &mockMarketService{FetchCryptoFunc: func(context.Context) ([]entity.Quote, error) {
		return []entity.Quote{btc}, nil
	}}

	out, err := run(t, Deps{Market: svc}, "crypto")

	require.NoError(t, err)
	assert.Contains(t, out, "(synthetic)")
}

func TestIndicesCmd_ConfigMissing(t *testing.T) {
	t.Parallel()

	svc := &mockMarketService{FetchIndicesFunc: func(context.Context) ([]entity.Quote, error) {
		return nil, usecase.ErrConfigMissing
	}}

	_, err := run(t, Deps{Market: svc}, "indices")
	assert.ErrorIs(t, err, usecase.ErrConfigMissing)
}

func TestNewsCmd(t *testing.T) {
	t.Parallel()

	svc := &mockMarketService{FetchNewsFunc: func(context.Context) ([]entity.NewsItem, error) {
		return []entity.NewsItem{{Title: "Stocks rally", Source: "Reuters", URL: "https://example.com/a", RelativeTime: "2 hours ago", SentimentLabel: "Bullish"}}, nil
	}}

	out, err := run(t, Deps{Market: svc}, "news")

	require.NoError(t, err)
	assert.Contains(t, out, "Stocks rally")
	assert.Contains(t, out, "Reuters · 2 hours ago · Bullish")
	assert.Contains(t, out, "https://example.com/a")
}

func TestSentimentCmd(t *testing.T) {
	t.Parallel()

	svc := &mockMarketService{FetchSentimentFunc: func(_ context.Context, symbols []string) (entity.Sentiment, error) {
		assert.Equal(t, []string{"AAPL", "MSFT"}, symbols)
		return entity.Sentiment{Overall: entity.OverallBullish, FearGreedIndex: 75, Volatility: entity.VolatilityLow, Trend: entity.TrendUpward}, nil
	}}

	out, err := run(t, Deps{Market: svc}, "sentiment", "--symbols", "AAPL,MSFT")

	require.NoError(t, err)
	assert.Contains(t, out, "Market Sentiment")
	assert.Contains(t, out, "Bullish")
	assert.Contains(t, out, "75/100")
	assert.Contains(t, out, "Upward")
}

func TestDashboardCmd(t *testing.T) {
	t.Parallel()

	svc := &mockMarketService{LoadDashboardFunc: func(_ context.Context, symbols []string) (entity.Dashboard, error) {
		assert.Empty(t, symbols)
		return entity.Dashboard{
			Stocks:    []entity.Quote{aapl},
			Crypto:    []entity.Quote{btc},
			Indices:   []entity.Quote{},
			News:      []entity.NewsItem{},
			Sentiment: entity.Sentiment{Overall: entity.OverallNeutral, FearGreedIndex: 50, Volatility: entity.VolatilityModerate, Trend: entity.TrendStable},
			Errors:    []string{"news: market data unavailable"},
			UpdatedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		}, nil
	}}

	out, err := run(t, Deps{Market: svc}, "dashboard")

	require.NoError(t, err)
	assert.Contains(t, out, "Market Indices")
	assert.Contains(t, out, "(no data)")
	assert.Contains(t, out, "(no news)")
	assert.Contains(t, out, "! news: market data unavailable")
	assert.Contains(t, out, "Updated at 2026-03-01 09:30:00")
}

func TestTokenCmd(t *testing.T) {
	t.Parallel()

	out, err := run(t, Deps{Tokens: stubTokens{}}, "token", "dashboard-web")
	require.NoError(t, err)
	assert.Equal(t, "tok-dashboard-web\n", out)

	_, err = run(t, Deps{}, "token", "x")
	assert.Error(t, err)
}

func TestTimeoutFlag(t *testing.T) {
	t.Parallel()

	svc := &mockMarketService{FetchIndicesFunc: func(ctx context.Context) ([]entity.Quote, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}

	_, err := run(t, Deps{Market: svc}, "indices", "--timeout", "20ms")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Apple", truncate("Apple", 10))
	assert.Equal(t, "Invesco…", truncate("Invesco QQQ", 8))
}
