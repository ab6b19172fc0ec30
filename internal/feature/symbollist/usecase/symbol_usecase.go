// Package usecase implements the business logic for symbol-related operations.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"market_backend/internal/feature/symbollist/domain/entity"
)

// ErrInvalidKind is returned when the requested kind filter is unknown.
var ErrInvalidKind = errors.New("invalid symbol kind")

// SymbolRepository abstracts the persistence layer for symbol data.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	// ListActive returns active symbols of the given kind; an empty kind means all kinds.
	ListActive(ctx context.Context, kind string) ([]entity.Symbol, error)
	ListActiveCodes(ctx context.Context, kind string) ([]string, error)
}

// SymbolUsecase provides business logic for symbol operations.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// ListActiveSymbols returns active symbols, optionally filtered by kind.
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context, kind string) ([]entity.Symbol, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind != "" && !entity.ValidKind(kind) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	return u.repo.ListActive(ctx, kind)
}

// DefaultStockCodes returns the stock codes used when a request names no symbols.
// An empty catalog yields nil so the market layer falls back to its built-in list.
func (u *SymbolUsecase) DefaultStockCodes(ctx context.Context) ([]string, error) {
	codes, err := u.repo.ListActiveCodes(ctx, entity.KindStock)
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return nil, nil
	}
	return codes, nil
}
