package di

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"market_backend/internal/feature/symbollist/adapters"
	"market_backend/internal/feature/symbollist/usecase"
)

// NewSymbolRepository は銘柄カタログのリポジトリを返します。
// db が nil なら組み込みの静的カタログを使います。seed が true なら既定の銘柄を投入します。
func NewSymbolRepository(ctx context.Context, db *gorm.DB, seed bool) usecase.SymbolRepository {
	if db == nil {
		return adapters.NewStaticCatalog()
	}
	repo := adapters.NewSymbolRepository(db)
	if seed {
		if err := repo.SeedDefaults(ctx, adapters.DefaultSymbols()); err != nil {
			slog.Error("failed to seed symbol catalog", "error", err)
		}
	}
	return repo
}
