package internal

import (
	"fmt"

	binance "github.com/adshao/go-binance/v2"
	bybit "github.com/hirokisan/bybit/v2"

	"github.com/vadiminshakov/folio/internal/clients"
	"github.com/vadiminshakov/folio/internal/services/account"
)

// newAccountReader creates the account reader matching the client type.
// This is the single point of truth for dispatching to platform-specific implementations.
func newAccountReader(client any) (account.Reader, error) {
	switch c := client.(type) {
	case *clients.BitvavoClient:
		return account.NewBitvavoReader(c), nil
	case *binance.Client:
		return account.NewBinanceReader(c), nil
	case *bybit.Client:
		return account.NewBybitReader(c), nil
	case account.Reader:
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported client type: %T", client)
	}
}
