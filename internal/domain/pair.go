// Package domain defines core data structures used throughout the portfolio overview.
package domain

import "fmt"

// Pair market pair of an owned asset and the quote currency.
type Pair struct {
	// From asset symbol.
	From string
	// To quote currency symbol.
	To string
}

// NewPair creates a pair for the asset denominated in quote.
func NewPair(asset, quote string) Pair {
	return Pair{From: asset, To: quote}
}

// String returns the string representation.
func (p *Pair) String() string {
	return fmt.Sprintf("%s_%s", p.From, p.To)
}

// Market returns the dash separated market id, e.g. BTC-EUR.
func (p *Pair) Market() string {
	return fmt.Sprintf("%s-%s", p.From, p.To)
}

// Symbol returns the concatenated symbol representation, e.g. BTCEUR.
func (p *Pair) Symbol() string {
	return fmt.Sprintf("%s%s", p.From, p.To)
}
