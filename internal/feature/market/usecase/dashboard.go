package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"market_backend/internal/feature/market/domain/entity"
)

// LoadDashboard は指数・人気銘柄・暗号資産・ニュースを並行に取得してまとめます。
//
// 個別のカテゴリが失敗しても全体は失敗させず、空のリストに置き換えて Errors に理由を追加します。
// ErrConfigMissing だけはそのまま返します。
func (mu *MarketUsecase) LoadDashboard(ctx context.Context, symbols []string) (entity.Dashboard, error) {
	if !mu.apiKey {
		return entity.Dashboard{}, ErrConfigMissing
	}
	ctx, span := mu.tracer.Start(ctx, "market.LoadDashboard")
	defer span.End()

	var (
		indices, stocks, crypto []entity.Quote
		news                    []entity.NewsItem
		errs                    [4]error
	)
	var g errgroup.Group
	g.Go(func() error {
		indices, errs[0] = mu.FetchIndices(ctx)
		return nil
	})
	g.Go(func() error {
		stocks, errs[1] = mu.FetchPopularStocks(ctx, symbols)
		return nil
	})
	g.Go(func() error {
		crypto, errs[2] = mu.FetchCrypto(ctx)
		return nil
	})
	g.Go(func() error {
		news, errs[3] = mu.FetchNews(ctx)
		return nil
	})
	_ = g.Wait()

	d := entity.Dashboard{
		Indices:   orEmpty(indices),
		Stocks:    orEmpty(stocks),
		Crypto:    orEmpty(crypto),
		News:      orEmpty(news),
		UpdatedAt: mu.now(),
	}
	for i, name := range []string{"indices", "stocks", "crypto", "news"} {
		err := errs[i]
		if err == nil {
			continue
		}
		if errors.Is(err, ErrConfigMissing) {
			return entity.Dashboard{}, err
		}
		slog.Warn("dashboard section failed", "section", name, "error", err)
		d.Errors = append(d.Errors, fmt.Sprintf("%s: %v", name, err))
	}
	d.Sentiment = ComputeSentiment(d.Indices, d.Stocks)
	return d, nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
