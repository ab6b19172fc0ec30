// Package usecase は市場データの取得・整形・集計のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"market_backend/internal/feature/market/domain"
	"market_backend/internal/feature/market/domain/entity"
	"market_backend/internal/feature/market/formatter"
	"market_backend/internal/platform/externalapi/alphavantage/dto"
	"market_backend/internal/platform/metrics"
)

// キャッシュキー
const (
	keyQuotePrefix   = "stock-quote-"
	keyIndices       = "market-indices"
	keyCrypto        = "crypto-data"
	keyNews          = "market-news"
	keyPopularPrefix = "popular-stocks-"
	newsTopics       = "financial_markets"
	tracerName       = "market_backend/market"
)

// MarketClient は上流の市場データAPIを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketClient interface {
	GlobalQuote(ctx context.Context, symbol string) (dto.GlobalQuoteResponse, error)
	ExchangeRate(ctx context.Context, from, to string) (dto.ExchangeRateResponse, error)
	NewsSentiment(ctx context.Context, topics string) (dto.NewsSentimentResponse, error)
}

// Throttler は上流への送信間隔を制御します。
type Throttler interface {
	AcquireSlot(ctx context.Context) error
	RecordSent()
}

// ResponseCache は正規化済みの値をTTL付きで保持します。
type ResponseCache interface {
	Get(ctx context.Context, key string, out any) bool
	Put(ctx context.Context, key string, value any)
}

// Options は MarketUsecase の任意設定です。
type Options struct {
	// APIKeyConfigured が false の場合、すべての取得は ErrConfigMissing を返します。
	APIKeyConfigured bool
	// RequestTimeout は上流1リクエストあたりのタイムアウトです。0以下なら設定しません。
	RequestTimeout time.Duration
	// CryptoChange は暗号資産の24h変化率の代替値を生成します。nil なら "N/A" になります。
	CryptoChange formatter.ChangeGenerator
	Tracer       trace.Tracer
	Now          func() time.Time
}

// MarketUsecase は上流クライアント・キャッシュ・スロットラーを束ねた取得サービスです。
type MarketUsecase struct {
	client    MarketClient
	cache     ResponseCache
	throttler Throttler
	group     singleflight.Group

	apiKey       bool
	timeout      time.Duration
	cryptoChange formatter.ChangeGenerator
	tracer       trace.Tracer
	now          func() time.Time
}

// NewMarketUsecase は MarketUsecase を生成します。
func NewMarketUsecase(client MarketClient, cache ResponseCache, throttler Throttler, opts Options) *MarketUsecase {
	if opts.Tracer == nil {
		opts.Tracer = otel.Tracer(tracerName)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &MarketUsecase{
		client:       client,
		cache:        cache,
		throttler:    throttler,
		apiKey:       opts.APIKeyConfigured,
		timeout:      opts.RequestTimeout,
		cryptoChange: opts.CryptoChange,
		tracer:       opts.Tracer,
		now:          opts.Now,
	}
}

// FetchQuote は1銘柄のクォートを取得します。
func (mu *MarketUsecase) FetchQuote(ctx context.Context, symbol string) (entity.Quote, error) {
	if !mu.apiKey {
		return entity.Quote{}, ErrConfigMissing
	}
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return entity.Quote{}, ErrInvalidSymbol
	}

	ctx, span := mu.tracer.Start(ctx, "market.FetchQuote", trace.WithAttributes(attribute.String("symbol", symbol)))
	defer span.End()

	q, err := cached(ctx, mu, keyQuotePrefix+symbol, func(ctx context.Context) (entity.Quote, bool, error) {
		var res dto.GlobalQuoteResponse
		err := mu.callUpstream(ctx, func(ctx context.Context) (err error) {
			res, err = mu.client.GlobalQuote(ctx, symbol)
			return err
		})
		if err != nil {
			return entity.Quote{}, false, err
		}
		q := formatter.Quote(symbol, res)
		return q, !q.Unavailable, nil
	})
	if err != nil {
		recordSpanError(span, err)
		return entity.Quote{}, err
	}
	return q, nil
}

// FetchIndices は主要指数を固定の順序で取得します。
// 失敗した指数は Error を持つ "N/A" レコードとして同じ位置に残します。
func (mu *MarketUsecase) FetchIndices(ctx context.Context) ([]entity.Quote, error) {
	if !mu.apiKey {
		return nil, ErrConfigMissing
	}
	ctx, span := mu.tracer.Start(ctx, "market.FetchIndices")
	defer span.End()

	return cached(ctx, mu, keyIndices, func(ctx context.Context) ([]entity.Quote, bool, error) {
		out := make([]entity.Quote, len(domain.MarketIndices))
		var g errgroup.Group
		for i, info := range domain.MarketIndices {
			g.Go(func() error {
				var res dto.GlobalQuoteResponse
				err := mu.callUpstream(ctx, func(ctx context.Context) (err error) {
					res, err = mu.client.GlobalQuote(ctx, info.ETF)
					return err
				})
				if err != nil {
					slog.Warn("failed to fetch index", "etf", info.ETF, "error", err)
					out[i] = errored(entity.Quote{Kind: entity.KindIndex, Symbol: info.Symbol, Source: info.ETF, Name: info.Name}, err)
					return nil
				}
				out[i] = formatter.Index(info, res)
				return nil
			})
		}
		_ = g.Wait()
		return out, allHealthy("indices", out), nil
	})
}

// FetchCrypto は主要暗号資産の対USDレートを固定の順序で取得します。
func (mu *MarketUsecase) FetchCrypto(ctx context.Context) ([]entity.Quote, error) {
	if !mu.apiKey {
		return nil, ErrConfigMissing
	}
	ctx, span := mu.tracer.Start(ctx, "market.FetchCrypto")
	defer span.End()

	return cached(ctx, mu, keyCrypto, func(ctx context.Context) ([]entity.Quote, bool, error) {
		out := make([]entity.Quote, len(domain.CryptoSymbols))
		var g errgroup.Group
		for i, sym := range domain.CryptoSymbols {
			g.Go(func() error {
				var res dto.ExchangeRateResponse
				err := mu.callUpstream(ctx, func(ctx context.Context) (err error) {
					res, err = mu.client.ExchangeRate(ctx, sym, domain.QuoteCurrency)
					return err
				})
				if err != nil {
					slog.Warn("failed to fetch crypto rate", "symbol", sym, "error", err)
					out[i] = errored(entity.Quote{Kind: entity.KindCrypto, Symbol: sym, Source: sym, Name: domain.CryptoName(sym)}, err)
					return nil
				}
				out[i] = formatter.Crypto(sym, res, mu.cryptoChange)
				return nil
			})
		}
		_ = g.Wait()
		return out, allHealthy("crypto", out), nil
	})
}

// FetchNews は市場ニュースの先頭記事を取得します。
func (mu *MarketUsecase) FetchNews(ctx context.Context) ([]entity.NewsItem, error) {
	if !mu.apiKey {
		return nil, ErrConfigMissing
	}
	ctx, span := mu.tracer.Start(ctx, "market.FetchNews")
	defer span.End()

	items, err := cached(ctx, mu, keyNews, func(ctx context.Context) ([]entity.NewsItem, bool, error) {
		var res dto.NewsSentimentResponse
		err := mu.callUpstream(ctx, func(ctx context.Context) (err error) {
			res, err = mu.client.NewsSentiment(ctx, newsTopics)
			return err
		})
		if err != nil {
			return nil, false, err
		}
		return formatter.News(res, mu.now()), true, nil
	})
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	return items, nil
}

// FetchPopularStocks は指定銘柄（空ならデフォルトの人気銘柄）のクォートを入力順で返します。
// 失敗した銘柄も Error を持つレコードとして同じ位置に残るため、件数は常に入力と一致します。
func (mu *MarketUsecase) FetchPopularStocks(ctx context.Context, symbols []string) ([]entity.Quote, error) {
	if !mu.apiKey {
		return nil, ErrConfigMissing
	}
	symbols = normalizeSymbols(symbols)
	if len(symbols) == 0 {
		symbols = domain.DefaultPopularStocks
	}

	ctx, span := mu.tracer.Start(ctx, "market.FetchPopularStocks",
		trace.WithAttributes(attribute.StringSlice("symbols", symbols)))
	defer span.End()

	return cached(ctx, mu, keyPopularPrefix+strings.Join(symbols, ","), func(ctx context.Context) ([]entity.Quote, bool, error) {
		out := make([]entity.Quote, len(symbols))
		var g errgroup.Group
		for i, sym := range symbols {
			g.Go(func() error {
				q, err := mu.FetchQuote(ctx, sym)
				if err != nil {
					slog.Warn("failed to fetch stock quote", "symbol", sym, "error", err)
					q = errored(entity.Quote{Kind: entity.KindStock, Symbol: sym, Source: sym, Name: domain.CompanyName(sym)}, err)
				}
				out[i] = q
				return nil
			})
		}
		_ = g.Wait()
		return out, allHealthy("popular_stocks", out), nil
	})
}

// cached はキャッシュを参照し、ミスした場合はキー単位で1回だけ load を実行します。
// load が cacheable=false を返した値は保存しません。
//
// 共有される load は最初の呼び出しのキャンセルから切り離した ctx で実行し、
// 上流呼び出しごとのタイムアウトだけで打ち切られます。各呼び出しは自分の ctx が
// 終了した時点で単独で戻り、待っている他の呼び出しには影響しません。
func cached[T any](ctx context.Context, mu *MarketUsecase, key string, load func(context.Context) (T, bool, error)) (T, error) {
	var out T
	if mu.cache.Get(ctx, key, &out) {
		return out, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := mu.group.DoChan(key, func() (any, error) {
		// 待っている間に別の呼び出しが保存している場合がある
		var hit T
		if mu.cache.Get(shared, key, &hit) {
			return hit, nil
		}
		val, cacheable, err := load(shared)
		if err != nil {
			return nil, err
		}
		if cacheable {
			mu.cache.Put(shared, key, val)
		}
		return val, nil
	})

	select {
	case <-ctx.Done():
		return out, fmt.Errorf("%w: %w", ErrDataUnavailable, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return out, res.Err
		}
		return res.Val.(T), nil
	}
}

// callUpstream はスロットを取得してからタイムアウト付きで上流を呼び出します。
// 送信後は成否に関わらず RecordSent を呼び、失敗は ErrDataUnavailable でラップします。
func (mu *MarketUsecase) callUpstream(ctx context.Context, call func(ctx context.Context) error) error {
	if err := mu.throttler.AcquireSlot(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}

	if mu.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, mu.timeout)
		defer cancel()
	}
	err := call(ctx)
	mu.throttler.RecordSent()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}
	return nil
}

// errored はファンアウトで失敗した枝の代替レコードを作ります。
func errored(q entity.Quote, err error) entity.Quote {
	q.Price = entity.NotAvailable
	q.Change = entity.NotAvailable
	q.Tone = entity.ToneNeutral
	q.Error = err.Error()
	return q
}

// allHealthy は失敗した枝を数えてメトリクスに記録し、1件も無ければ true を返します。
func allHealthy(operation string, qs []entity.Quote) bool {
	failed := 0
	for _, q := range qs {
		if q.Errored() {
			failed++
		}
	}
	if failed > 0 {
		metrics.FanoutFailures.WithLabelValues(operation).Add(float64(failed))
	}
	return failed == 0
}

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func normalizeSymbols(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = normalizeSymbol(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
