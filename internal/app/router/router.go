// Package router はHTTPルーティングを定義します。
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	advisorhandler "market_backend/internal/feature/advisor/transport/handler"
	markethandler "market_backend/internal/feature/market/transport/handler"
	symbollisthandler "market_backend/internal/feature/symbollist/transport/handler"
	"market_backend/internal/platform/http/handler"
	jwtmw "market_backend/internal/platform/jwt"
)

// Handlers はルーターに登録するハンドラー群です。
type Handlers struct {
	Market  *markethandler.MarketHandler
	Symbols *symbollisthandler.SymbolHandler
	Advisor *advisorhandler.AdvisorHandler
	Health  gin.HandlerFunc
}

// Options はルーター全体の設定です。
type Options struct {
	// ServiceName はotelginのサーバー名です。
	ServiceName string
	// AdvisorJWTSecret が空でなければ /advisor 配下にBearer認証をかけます。
	AdvisorJWTSecret string
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), otelgin.Middleware(opts.ServiceName))

	// 認証不要
	health := h.Health
	if health == nil {
		health = handler.Health(nil)
	}
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	market := r.Group("/market")
	{
		market.GET("/quote/:symbol", h.Market.GetQuote)
		market.GET("/stocks", h.Market.GetStocks)
		market.GET("/indices", h.Market.GetIndices)
		market.GET("/crypto", h.Market.GetCrypto)
		market.GET("/news", h.Market.GetNews)
		market.GET("/sentiment", h.Market.GetSentiment)
		market.GET("/dashboard", h.Market.GetDashboard)
	}

	r.GET("/symbols", h.Symbols.List)

	if h.Advisor != nil {
		advisor := r.Group("/advisor")
		if opts.AdvisorJWTSecret != "" {
			advisor.Use(jwtmw.AuthRequired(opts.AdvisorJWTSecret))
		}
		advisor.POST("/chat", h.Advisor.Chat)
		advisor.POST("/analysis/:symbol", h.Advisor.AnalyzeStock)
		advisor.POST("/portfolio", h.Advisor.Portfolio)
	}

	return r
}
