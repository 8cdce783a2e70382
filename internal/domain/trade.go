package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Side direction of an executed trade.
type Side int

const (
	SideBuy Side = iota
	SideSell
)

const (
	sideStringBuy  = "buy"
	sideStringSell = "sell"
)

// String returns the string representation of the side.
func (s Side) String() string {
	switch s {
	case SideBuy:
		return sideStringBuy
	case SideSell:
		return sideStringSell
	default:
		return "unknown"
	}
}

// ParseSide converts exchange side strings ("buy", "Sell", "SELL") to a Side.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case sideStringBuy:
		return SideBuy, nil
	case sideStringSell:
		return SideSell, nil
	default:
		return 0, fmt.Errorf("unknown trade side %q", s)
	}
}

// Trade executed trade from the account history.
type Trade struct {
	// Amount quantity of the asset traded.
	Amount decimal.Decimal
	// Price unit price at execution, in quote currency.
	Price decimal.Decimal
	// Side buy or sell.
	Side Side
}

// Cost returns the signed quote value of the trade: positive for buys,
// negative for sells.
func (t Trade) Cost() decimal.Decimal {
	v := t.Amount.Mul(t.Price)
	if t.Side == SideSell {
		return v.Neg()
	}
	return v
}

// String returns a human-readable string representation.
func (t Trade) String() string {
	return fmt.Sprintf("%s %s@%s", t.Side.String(), t.Amount.String(), t.Price.String())
}
