// Package entity defines the domain models for the symbollist feature.
package entity

import "time"

// Symbol kinds.
const (
	KindStock  = "stock"
	KindIndex  = "index"
	KindCrypto = "crypto"
)

// Symbol represents a tradable instrument shown on the market dashboard.
// Code is the symbol sent upstream (the tracking ETF for an index),
// DisplayCode is what the UI shows when it differs (e.g. SPX for SPY).
type Symbol struct {
	ID          uint      `gorm:"primaryKey"`
	Code        string    `gorm:"size:20;not null;uniqueIndex:idx_symbols_kind_code"`
	Name        string    `gorm:"size:255;not null"`
	Kind        string    `gorm:"size:16;not null;uniqueIndex:idx_symbols_kind_code"`
	DisplayCode string    `gorm:"size:20"`
	IsActive    bool      `gorm:"not null;default:true"`
	SortKey     int       `gorm:"not null;default:0"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// ValidKind reports whether k is one of the known kinds.
func ValidKind(k string) bool {
	switch k {
	case KindStock, KindIndex, KindCrypto:
		return true
	}
	return false
}
