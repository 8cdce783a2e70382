package domain

import "github.com/shopspring/decimal"

// BalanceEntry account balance of a single asset.
type BalanceEntry struct {
	// Symbol asset identifier.
	Symbol string
	// Available free quantity.
	Available decimal.Decimal
	// InOrder quantity reserved in open orders.
	InOrder decimal.Decimal
}

// IsEmpty reports whether nothing of the asset is held, free or reserved.
func (b BalanceEntry) IsEmpty() bool {
	return b.Available.IsZero() && b.InOrder.IsZero()
}
