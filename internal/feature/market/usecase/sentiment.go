package usecase

import (
	"context"
	"math"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"market_backend/internal/feature/market/domain/entity"
)

// ComputeSentiment は指数と個別銘柄の変化率から市場ムードを算出します。
// 取得に失敗したレコードは除外し、有効なレコードが無ければ DefaultSentiment を返します。
// 変化率を1件も数値化できない場合は Volatility だけ既定値になります。
func ComputeSentiment(indices, stocks []entity.Quote) entity.Sentiment {
	all := make([]entity.Quote, 0, len(indices)+len(stocks))
	all = append(all, indices...)
	all = append(all, stocks...)

	var (
		total, positive int
		sumAbs          float64
		parsed          int
	)
	for _, q := range all {
		if q.Errored() {
			continue
		}
		total++
		if strings.HasPrefix(q.Change, "+") {
			positive++
		}
		if v, ok := parseChange(q.Change); ok {
			sumAbs += math.Abs(v)
			parsed++
		}
	}
	if total == 0 {
		return entity.DefaultSentiment()
	}

	pp := 100 * float64(positive) / float64(total)
	volatility := entity.DefaultSentiment().Volatility
	if parsed > 0 {
		volatility = classifyVolatility(sumAbs / float64(parsed))
	}
	return entity.Sentiment{
		Overall:        classifyOverall(pp),
		FearGreedIndex: int(math.Floor(pp + 0.5)),
		Volatility:     volatility,
		Trend:          classifyTrend(pp),
	}
}

func classifyOverall(pp float64) entity.Overall {
	switch {
	case pp >= 70:
		return entity.OverallBullish
	case pp >= 55:
		return entity.OverallSlightlyBullish
	case pp <= 30:
		return entity.OverallBearish
	case pp <= 45:
		return entity.OverallSlightlyBearish
	default:
		return entity.OverallNeutral
	}
}

func classifyVolatility(meanAbs float64) entity.Volatility {
	switch {
	case meanAbs > 3:
		return entity.VolatilityHigh
	case meanAbs > 1.5:
		return entity.VolatilityModerate
	default:
		return entity.VolatilityLow
	}
}

func classifyTrend(pp float64) entity.Trend {
	if pp > 50 {
		return entity.TrendUpward
	}
	return entity.TrendDownward
}

// parseChange は "+1.23%" のような変化率文字列を数値にします。
func parseChange(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FetchSentiment は指数と人気銘柄を取得して市場ムードを算出します。
func (mu *MarketUsecase) FetchSentiment(ctx context.Context, symbols []string) (entity.Sentiment, error) {
	if !mu.apiKey {
		return entity.Sentiment{}, ErrConfigMissing
	}
	ctx, span := mu.tracer.Start(ctx, "market.FetchSentiment")
	defer span.End()

	var indices, stocks []entity.Quote
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		indices, err = mu.FetchIndices(gctx)
		return err
	})
	g.Go(func() (err error) {
		stocks, err = mu.FetchPopularStocks(gctx, symbols)
		return err
	})
	if err := g.Wait(); err != nil {
		recordSpanError(span, err)
		return entity.Sentiment{}, err
	}
	return ComputeSentiment(indices, stocks), nil
}
