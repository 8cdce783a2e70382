package account

import (
	"context"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/folio/internal/domain"
)

// binance error codes answered for a rejected key, signature or timestamp
var binanceAuthCodes = map[int64]struct{}{
	-1021: {}, // timestamp outside of recvWindow
	-1022: {}, // invalid signature
	-2014: {}, // API-key format invalid
	-2015: {}, // invalid API-key, IP, or permissions
}

// BinanceReader reads a Binance spot account.
type BinanceReader struct {
	client *binance.Client
}

// NewBinanceReader creates a reader on top of an authenticated client.
func NewBinanceReader(client *binance.Client) *BinanceReader {
	return &BinanceReader{client: client}
}

// FetchBalances returns the assets held on the account. Binance lists every
// listed asset, empty balances are dropped.
func (r *BinanceReader) FetchBalances(ctx context.Context) ([]domain.BalanceEntry, error) {
	account, err := r.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, classifyBinanceError(err, "failed to get binance account balance")
	}

	entries := make([]domain.BalanceEntry, 0, len(account.Balances))
	for _, balance := range account.Balances {
		free, err := parseDecimal(balance.Free)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse balance")
		}
		locked, err := parseDecimal(balance.Locked)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse locked balance")
		}

		entry := domain.BalanceEntry{Symbol: balance.Asset, Available: free, InOrder: locked}
		if entry.IsEmpty() {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// FetchTrades returns the account trades on the pair, the side taken from
// whether the account was the buyer.
func (r *BinanceReader) FetchTrades(ctx context.Context, pair domain.Pair) ([]domain.Trade, error) {
	trades, err := r.client.NewListTradesService().Symbol(pair.Symbol()).Do(ctx)
	if err != nil {
		return nil, classifyBinanceError(err, "failed to list binance trades for "+pair.Symbol())
	}

	result := make([]domain.Trade, 0, len(trades))
	for _, trade := range trades {
		qty, err := decimal.NewFromString(trade.Quantity)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse trade quantity")
		}
		price, err := decimal.NewFromString(trade.Price)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse trade price")
		}

		side := domain.SideSell
		if trade.IsBuyer {
			side = domain.SideBuy
		}
		result = append(result, domain.Trade{Amount: qty, Price: price, Side: side})
	}

	return result, nil
}

func (r *BinanceReader) FetchTickerPrice(ctx context.Context, pair domain.Pair) (decimal.Decimal, error) {
	prices, err := r.client.NewListPricesService().Symbol(pair.Symbol()).Do(ctx)
	if err != nil {
		return decimal.Zero, classifyBinanceError(err, "failed to get binance price for "+pair.Symbol())
	}
	if len(prices) == 0 {
		return decimal.Zero, nil
	}

	return parseDecimal(prices[0].Price)
}

func classifyBinanceError(err error, msg string) error {
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		if _, auth := binanceAuthCodes[apiErr.Code]; auth {
			return errors.Wrapf(domain.ErrAuth, "%s: %s", msg, apiErr.Error())
		}
		return errors.Wrapf(domain.ErrExchange, "%s: %s", msg, apiErr.Error())
	}
	if isTransportError(err) {
		return errors.Wrapf(domain.ErrNetwork, "%s: %s", msg, err.Error())
	}
	return errors.Wrapf(domain.ErrExchange, "%s: %s", msg, err.Error())
}
