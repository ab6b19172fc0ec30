// Package cli は marketctl のコマンドを定義します。
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"market_backend/internal/feature/market/domain/entity"
)

// MarketService は CLI が使う市場データ取得のインターフェースです。
type MarketService interface {
	FetchQuote(ctx context.Context, symbol string) (entity.Quote, error)
	FetchPopularStocks(ctx context.Context, symbols []string) ([]entity.Quote, error)
	FetchIndices(ctx context.Context) ([]entity.Quote, error)
	FetchCrypto(ctx context.Context) ([]entity.Quote, error)
	FetchNews(ctx context.Context) ([]entity.NewsItem, error)
	FetchSentiment(ctx context.Context, symbols []string) (entity.Sentiment, error)
	LoadDashboard(ctx context.Context, symbols []string) (entity.Dashboard, error)
}

// TokenIssuer はアドバイザーAPI用のトークンを発行します。
type TokenIssuer interface {
	GenerateToken(subject string) (string, error)
}

// Deps はコマンドが依存するサービスです。Tokens は nil でも構いません。
type Deps struct {
	Market MarketService
	Tokens TokenIssuer
}

const defaultTimeout = 60 * time.Second

// NewRootCmd は marketctl のルートコマンドを生成します。
func NewRootCmd(deps Deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "marketctl",
		Short:         "marketctl - market dashboard in your terminal",
		Long:          "marketctl fetches quotes, indices, crypto rates, news and sentiment from the market data API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Duration("timeout", defaultTimeout, "Overall timeout for the command")

	root.AddCommand(
		newQuoteCmd(deps.Market),
		newStocksCmd(deps.Market),
		newIndicesCmd(deps.Market),
		newCryptoCmd(deps.Market),
		newNewsCmd(deps.Market),
		newSentimentCmd(deps.Market),
		newDashboardCmd(deps.Market),
		newTokenCmd(deps.Tokens),
	)
	return root
}

// withTimeout は --timeout を適用したコンテキストを返します。
func withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil || timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}

func newQuoteCmd(svc MarketService) *cobra.Command {
	return &cobra.Command{
		Use:   "quote SYMBOL",
		Short: "Show the latest quote for a stock symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()

			q, err := svc.FetchQuote(ctx, args[0])
			if err != nil {
				return err
			}
			renderQuotes(cmd.OutOrStdout(), "Quote", []entity.Quote{q})
			return nil
		},
	}
}

func newStocksCmd(svc MarketService) *cobra.Command {
	return &cobra.Command{
		Use:   "stocks [SYMBOL...]",
		Short: "Show popular stocks (or the given symbols)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()

			qs, err := svc.FetchPopularStocks(ctx, args)
			if err != nil {
				return err
			}
			renderQuotes(cmd.OutOrStdout(), "Popular Stocks", qs)
			return nil
		},
	}
}

func newIndicesCmd(svc MarketService) *cobra.Command {
	return &cobra.Command{
		Use:   "indices",
		Short: "Show the major market indices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()

			qs, err := svc.FetchIndices(ctx)
			if err != nil {
				return err
			}
			renderQuotes(cmd.OutOrStdout(), "Market Indices", qs)
			return nil
		},
	}
}

func newCryptoCmd(svc MarketService) *cobra.Command {
	return &cobra.Command{
		Use:   "crypto",
		Short: "Show cryptocurrency rates in USD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()

			qs, err := svc.FetchCrypto(ctx)
			if err != nil {
				return err
			}
			renderQuotes(cmd.OutOrStdout(), "Cryptocurrency", qs)
			return nil
		},
	}
}

func newNewsCmd(svc MarketService) *cobra.Command {
	return &cobra.Command{
		Use:   "news",
		Short: "Show the latest financial market headlines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()

			items, err := svc.FetchNews(ctx)
			if err != nil {
				return err
			}
			renderNews(cmd.OutOrStdout(), items)
			return nil
		},
	}
}

func newSentimentCmd(svc MarketService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentiment",
		Short: "Show the aggregate market sentiment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()

			symbols, _ := cmd.Flags().GetStringSlice("symbols")
			s, err := svc.FetchSentiment(ctx, symbols)
			if err != nil {
				return err
			}
			renderSentiment(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().StringSlice("symbols", nil, "Stock symbols to include (default: popular stocks)")
	return cmd
}

func newDashboardCmd(svc MarketService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show indices, stocks, crypto, news and sentiment together",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()

			symbols, _ := cmd.Flags().GetStringSlice("symbols")
			d, err := svc.LoadDashboard(ctx, symbols)
			if err != nil {
				return err
			}
			renderDashboard(cmd.OutOrStdout(), d)
			return nil
		},
	}
	cmd.Flags().StringSlice("symbols", nil, "Stock symbols to include (default: popular stocks)")
	return cmd
}

func newTokenCmd(tokens TokenIssuer) *cobra.Command {
	return &cobra.Command{
		Use:   "token SUBJECT",
		Short: "Issue a bearer token for the advisor API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tokens == nil {
				return fmt.Errorf("ADVISOR_JWT_SECRET is not set")
			}
			tok, err := tokens.GenerateToken(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
}
