package adapters

import (
	"context"

	marketdomain "market_backend/internal/feature/market/domain"
	"market_backend/internal/feature/symbollist/domain/entity"
	"market_backend/internal/feature/symbollist/usecase"
)

// staticCatalog は市場データ層の固定テーブルから作った読み取り専用のカタログです。
// DBが設定されていないときに使います。
type staticCatalog struct {
	symbols []entity.Symbol
}

var _ usecase.SymbolRepository = (*staticCatalog)(nil)

// NewStaticCatalog は組み込みの銘柄テーブルからカタログを生成します。
func NewStaticCatalog() *staticCatalog {
	return &staticCatalog{symbols: DefaultSymbols()}
}

// DefaultSymbols は組み込みの指数・人気銘柄・暗号資産を表示順に返します。DBの初期データにも使います。
func DefaultSymbols() []entity.Symbol {
	var out []entity.Symbol
	sortKey := 0
	add := func(s entity.Symbol) {
		sortKey++
		s.IsActive = true
		s.SortKey = sortKey
		out = append(out, s)
	}

	for _, idx := range marketdomain.MarketIndices {
		add(entity.Symbol{Code: idx.ETF, Name: idx.Name, Kind: entity.KindIndex, DisplayCode: idx.Symbol})
	}
	for _, code := range marketdomain.DefaultPopularStocks {
		add(entity.Symbol{Code: code, Name: marketdomain.CompanyName(code), Kind: entity.KindStock})
	}
	for _, code := range marketdomain.CryptoSymbols {
		add(entity.Symbol{Code: code, Name: marketdomain.CryptoName(code), Kind: entity.KindCrypto})
	}
	return out
}

// ListActive は種別で絞り込んだ銘柄を返します。kind が空なら全件です。
func (c *staticCatalog) ListActive(_ context.Context, kind string) ([]entity.Symbol, error) {
	out := make([]entity.Symbol, 0, len(c.symbols))
	for _, s := range c.symbols {
		if kind == "" || s.Kind == kind {
			out = append(out, s)
		}
	}
	return out, nil
}

// ListActiveCodes は種別で絞り込んだ銘柄コードを返します。
func (c *staticCatalog) ListActiveCodes(ctx context.Context, kind string) ([]string, error) {
	symbols, _ := c.ListActive(ctx, kind)
	codes := make([]string, 0, len(symbols))
	for _, s := range symbols {
		codes = append(codes, s.Code)
	}
	return codes, nil
}
