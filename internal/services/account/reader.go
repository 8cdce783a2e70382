// Package account reads balances, trade history and ticker prices from an exchange account.
package account

import (
	"context"
	"net"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/folio/internal/domain"
)

// Reader exchange account data used by the overview. Every call is a single
// fresh request: no retries, no caching.
type Reader interface {
	// FetchBalances returns the balance listing of the account.
	FetchBalances(ctx context.Context) ([]domain.BalanceEntry, error)
	// FetchTrades returns the account trades on the pair's market.
	FetchTrades(ctx context.Context, pair domain.Pair) ([]domain.Trade, error)
	// FetchTickerPrice returns the latest price of the pair, zero when the
	// exchange reports none.
	FetchTickerPrice(ctx context.Context, pair domain.Pair) (decimal.Decimal, error)
}

// parseDecimal parses an exchange decimal string, treating "" as zero.
func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// isTransportError reports whether err comes from the connection rather than
// from an exchange answer.
func isTransportError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
