package account

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/folio/internal/clients"
	"github.com/vadiminshakov/folio/internal/domain"
)

// BitvavoReader reads the account through the Bitvavo REST API.
type BitvavoReader struct {
	client *clients.BitvavoClient
}

// NewBitvavoReader creates a reader on top of a signed Bitvavo client.
func NewBitvavoReader(client *clients.BitvavoClient) *BitvavoReader {
	return &BitvavoReader{client: client}
}

// FetchBalances returns the balance listing as is, zero balances included.
func (r *BitvavoReader) FetchBalances(ctx context.Context) ([]domain.BalanceEntry, error) {
	balances, err := r.client.Balance(ctx)
	if err != nil {
		return nil, classifyBitvavoError(err, "failed to get bitvavo balance")
	}

	entries := make([]domain.BalanceEntry, 0, len(balances))
	for _, b := range balances {
		available, err := parseDecimal(b.Available)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse available balance of %s", b.Symbol)
		}
		inOrder, err := parseDecimal(b.InOrder)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse in-order balance of %s", b.Symbol)
		}
		entries = append(entries, domain.BalanceEntry{Symbol: b.Symbol, Available: available, InOrder: inOrder})
	}

	return entries, nil
}

func (r *BitvavoReader) FetchTrades(ctx context.Context, pair domain.Pair) ([]domain.Trade, error) {
	trades, err := r.client.Trades(ctx, pair.Market())
	if err != nil {
		return nil, classifyBitvavoError(err, "failed to list bitvavo trades for "+pair.Market())
	}

	result := make([]domain.Trade, 0, len(trades))
	for _, t := range trades {
		amount, err := decimal.NewFromString(t.Amount)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse trade amount")
		}
		price, err := decimal.NewFromString(t.Price)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse trade price")
		}
		side, err := domain.ParseSide(t.Side)
		if err != nil {
			return nil, errors.Wrapf(domain.ErrExchange, "trade %s: %s", t.ID, err.Error())
		}
		result = append(result, domain.Trade{Amount: amount, Price: price, Side: side})
	}

	return result, nil
}

// FetchTickerPrice returns zero when the market has no price.
func (r *BitvavoReader) FetchTickerPrice(ctx context.Context, pair domain.Pair) (decimal.Decimal, error) {
	ticker, err := r.client.TickerPrice(ctx, pair.Market())
	if err != nil {
		return decimal.Zero, classifyBitvavoError(err, "failed to get bitvavo price for "+pair.Market())
	}

	price, err := parseDecimal(ticker.Price)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "failed to parse price of %s", pair.Market())
	}
	return price, nil
}

// classifyBitvavoError maps rejected credentials to ErrAuth and connection
// failures to ErrNetwork. Anything else the exchange answered is ErrExchange.
func classifyBitvavoError(err error, msg string) error {
	var apiErr *clients.BitvavoAPIError
	if errors.As(err, &apiErr) {
		if apiErr.IsAuth() {
			return errors.Wrapf(domain.ErrAuth, "%s: %s", msg, apiErr.Error())
		}
		return errors.Wrapf(domain.ErrExchange, "%s: %s", msg, apiErr.Error())
	}
	if isTransportError(err) {
		return errors.Wrapf(domain.ErrNetwork, "%s: %s", msg, err.Error())
	}
	// malformed payload on a successful status
	return errors.Wrapf(domain.ErrExchange, "%s: %s", msg, err.Error())
}
