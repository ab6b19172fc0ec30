// Package handler はmarketフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"market_backend/internal/feature/market/domain/entity"
	"market_backend/internal/feature/market/transport/http/dto"
	"market_backend/internal/feature/market/usecase"
	"market_backend/internal/platform/http/response"
)

// MarketUsecase は市場データ取得のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type MarketUsecase interface {
	FetchQuote(ctx context.Context, symbol string) (entity.Quote, error)
	FetchPopularStocks(ctx context.Context, symbols []string) ([]entity.Quote, error)
	FetchIndices(ctx context.Context) ([]entity.Quote, error)
	FetchCrypto(ctx context.Context) ([]entity.Quote, error)
	FetchNews(ctx context.Context) ([]entity.NewsItem, error)
	FetchSentiment(ctx context.Context, symbols []string) (entity.Sentiment, error)
	LoadDashboard(ctx context.Context, symbols []string) (entity.Dashboard, error)
}

// StockCodeProvider はリクエストで銘柄が指定されなかったときの銘柄一覧を返します。
type StockCodeProvider interface {
	DefaultStockCodes(ctx context.Context) ([]string, error)
}

// MarketHandler は市場データのHTTPリクエストを処理します。
type MarketHandler struct {
	uc       MarketUsecase
	defaults StockCodeProvider
}

// NewMarketHandler は MarketHandler を生成します。defaults は nil でも構いません。
func NewMarketHandler(uc MarketUsecase, defaults StockCodeProvider) *MarketHandler {
	return &MarketHandler{uc: uc, defaults: defaults}
}

// GetQuote は1銘柄のクォートを返します。
//
// エンドポイント例:
// GET /market/quote/:symbol
func (h *MarketHandler) GetQuote(c *gin.Context) {
	q, err := h.uc.FetchQuote(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuoteResponse(q))
}

// GetStocks は人気銘柄（または ?symbols=AAPL,MSFT で指定した銘柄）のクォートを返します。
func (h *MarketHandler) GetStocks(c *gin.Context) {
	qs, err := h.uc.FetchPopularStocks(c.Request.Context(), h.symbols(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuoteResponses(qs))
}

// GetIndices は主要指数を返します。
func (h *MarketHandler) GetIndices(c *gin.Context) {
	qs, err := h.uc.FetchIndices(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuoteResponses(qs))
}

// GetCrypto は主要暗号資産を返します。
func (h *MarketHandler) GetCrypto(c *gin.Context) {
	qs, err := h.uc.FetchCrypto(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuoteResponses(qs))
}

// GetNews は市場ニュースを返します。
func (h *MarketHandler) GetNews(c *gin.Context) {
	items, err := h.uc.FetchNews(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toNewsResponses(items))
}

// GetSentiment は市場ムードを返します。
func (h *MarketHandler) GetSentiment(c *gin.Context) {
	s, err := h.uc.FetchSentiment(c.Request.Context(), h.symbols(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSentimentResponse(s))
}

// GetDashboard はダッシュボード一式を返します。一部のカテゴリが失敗しても200を返し、理由は errors に入ります。
func (h *MarketHandler) GetDashboard(c *gin.Context) {
	d, err := h.uc.LoadDashboard(c.Request.Context(), h.symbols(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DashboardResponse{
		Indices:   toQuoteResponses(d.Indices),
		Stocks:    toQuoteResponses(d.Stocks),
		Crypto:    toQuoteResponses(d.Crypto),
		News:      toNewsResponses(d.News),
		Sentiment: toSentimentResponse(d.Sentiment),
		Errors:    d.Errors,
		UpdatedAt: d.UpdatedAt.UTC().Format(time.RFC3339),
	})
}

// symbols は ?symbols= をカンマ区切り・複数指定の両方で読み取ります。
// 指定が無ければ StockCodeProvider の一覧を使います。
func (h *MarketHandler) symbols(c *gin.Context) []string {
	var out []string
	for _, v := range c.QueryArray("symbols") {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	if len(out) > 0 || h.defaults == nil {
		return out
	}

	codes, err := h.defaults.DefaultStockCodes(c.Request.Context())
	if err != nil {
		// 取得できなければユースケース側の既定リストに任せる
		slog.Warn("failed to load default stock codes", "error", err)
		return nil
	}
	return codes
}

// writeError はユースケースのエラーをHTTPステータスに対応付けます。
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrConfigMissing):
		c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrInvalidSymbol):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrDataUnavailable):
		c.JSON(http.StatusBadGateway, response.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("market request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal server error"})
	}
}

func toQuoteResponse(q entity.Quote) dto.QuoteResponse {
	return dto.QuoteResponse{
		Kind:        string(q.Kind),
		Symbol:      q.Symbol,
		Source:      q.Source,
		Name:        q.Name,
		Price:       q.Price,
		Change:      q.Change,
		Tone:        string(q.Tone),
		Color:       q.Tone.CSSClass(),
		Synthetic:   q.Synthetic,
		Unavailable: q.Unavailable,
		Error:       q.Error,
	}
}

func toQuoteResponses(qs []entity.Quote) []dto.QuoteResponse {
	out := make([]dto.QuoteResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, toQuoteResponse(q))
	}
	return out
}

func toNewsResponses(items []entity.NewsItem) []dto.NewsResponse {
	out := make([]dto.NewsResponse, 0, len(items))
	for _, n := range items {
		r := dto.NewsResponse{
			Title:          n.Title,
			Source:         n.Source,
			URL:            n.URL,
			Time:           n.RelativeTime,
			SentimentLabel: n.SentimentLabel,
		}
		if !n.PublishedAt.IsZero() {
			r.PublishedAt = n.PublishedAt.UTC().Format(time.RFC3339)
		}
		out = append(out, r)
	}
	return out
}

func toSentimentResponse(s entity.Sentiment) dto.SentimentResponse {
	return dto.SentimentResponse{
		Overall:        string(s.Overall),
		FearGreedIndex: s.FearGreedIndex,
		Volatility:     string(s.Volatility),
		Trend:          string(s.Trend),
	}
}
