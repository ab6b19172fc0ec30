// Package adapters はsymbollistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"market_backend/internal/feature/symbollist/domain/entity"
	"market_backend/internal/feature/symbollist/usecase"
)

// symbolGorm はSymbolRepositoryインターフェースのGORM実装です（PostgreSQL / SQLite）。
type symbolGorm struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolGorm)(nil)

// NewSymbolRepository は指定されたDB接続でsymbolGormリポジトリの新しいインスタンスを生成します。
func NewSymbolRepository(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

// activeScope はアクティブな銘柄に絞り込み、kind が空でなければ種別でも絞り込みます。
func activeScope(kind string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("is_active = ?", true)
		if kind != "" {
			db = db.Where("kind = ?", kind)
		}
		return db.Order("sort_key ASC").Order("id ASC")
	}
}

// ListActive はsort_key順にアクティブな銘柄を返します。
func (r *symbolGorm) ListActive(ctx context.Context, kind string) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Scopes(activeScope(kind)).
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// ListActiveCodes はsort_key順にアクティブな銘柄のコードのみを返します。
func (r *symbolGorm) ListActiveCodes(ctx context.Context, kind string) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).
		Model(&entity.Symbol{}).
		Scopes(activeScope(kind)).
		Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// SeedDefaults は銘柄を投入します。同じ (kind, code) が既にあれば上書きしません。
func (r *symbolGorm) SeedDefaults(ctx context.Context, symbols []entity.Symbol) error {
	if len(symbols) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kind"}, {Name: "code"}},
			DoNothing: true,
		}).
		Create(&symbols).Error
}
