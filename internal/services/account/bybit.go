package account

import (
	"context"

	"github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/folio/internal/domain"
)

// bybit retCodes answered for a rejected key, signature or timestamp
var bybitAuthCodes = map[int]struct{}{
	10002: {}, // request expired, timestamp outside of recv_window
	10003: {}, // invalid API key
	10004: {}, // signature error
	10005: {}, // permission denied
}

// BybitReader reads the spot side of a Bybit unified account.
type BybitReader struct {
	client *bybit.Client
}

// NewBybitReader creates a reader on top of an authenticated client.
func NewBybitReader(client *bybit.Client) *BybitReader {
	return &BybitReader{client: client}
}

// FetchBalances lists the coins of the unified wallet. Funds locked in open
// orders are reported as in order, the rest as available.
func (r *BybitReader) FetchBalances(ctx context.Context) ([]domain.BalanceEntry, error) {
	res, err := r.client.V5().Account().GetWalletBalance(bybit.AccountTypeV5UNIFIED, nil)
	if err != nil {
		return nil, classifyBybitError(err, "failed to get bybit wallet balance")
	}

	var entries []domain.BalanceEntry
	for _, account := range res.Result.List {
		for _, coin := range account.Coin {
			total, err := parseDecimal(coin.WalletBalance)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to parse wallet balance of %s", coin.Coin)
			}
			locked, err := parseDecimal(coin.Locked)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to parse locked balance of %s", coin.Coin)
			}
			entries = append(entries, domain.BalanceEntry{
				Symbol:    string(coin.Coin),
				Available: total.Sub(locked),
				InOrder:   locked,
			})
		}
	}

	return entries, nil
}

// FetchTrades returns the spot executions on the pair.
func (r *BybitReader) FetchTrades(ctx context.Context, pair domain.Pair) ([]domain.Trade, error) {
	symbol := bybit.SymbolV5(pair.Symbol())
	res, err := r.client.V5().Execution().GetExecutionList(bybit.V5GetExecutionParam{
		Category: bybit.CategoryV5Spot,
		Symbol:   &symbol,
	})
	if err != nil {
		return nil, classifyBybitError(err, "failed to list bybit executions for "+pair.Symbol())
	}

	trades := make([]domain.Trade, 0, len(res.Result.List))
	for _, item := range res.Result.List {
		qty, err := decimal.NewFromString(item.ExecQty)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse execution quantity")
		}
		price, err := decimal.NewFromString(item.ExecPrice)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse execution price")
		}
		side, err := domain.ParseSide(string(item.Side))
		if err != nil {
			return nil, errors.Wrapf(domain.ErrExchange, "execution %s on %s: %s", item.ExecID, pair.Symbol(), err.Error())
		}
		trades = append(trades, domain.Trade{Amount: qty, Price: price, Side: side})
	}

	return trades, nil
}

func (r *BybitReader) FetchTickerPrice(ctx context.Context, pair domain.Pair) (decimal.Decimal, error) {
	symbol := bybit.SymbolV5(pair.Symbol())
	result, err := r.client.V5().Market().GetTickers(bybit.V5GetTickersParam{
		Category: bybit.CategoryV5Spot,
		Symbol:   &symbol,
	})
	if err != nil {
		return decimal.Zero, classifyBybitError(err, "failed to get bybit price for "+pair.Symbol())
	}
	if result.Result.Spot == nil || len(result.Result.Spot.List) == 0 {
		return decimal.Zero, nil
	}

	return parseDecimal(result.Result.Spot.List[0].LastPrice)
}

// classifyBybitError maps rejected credentials to ErrAuth and connection
// failures to ErrNetwork. Everything else maps to ErrExchange.
func classifyBybitError(err error, msg string) error {
	if isTransportError(err) {
		return errors.Wrapf(domain.ErrNetwork, "%s: %s", msg, err.Error())
	}
	if errors.Is(err, bybit.ErrInvalidRequest) || errors.Is(err, bybit.ErrForbiddenRequest) {
		return errors.Wrapf(domain.ErrAuth, "%s: %s", msg, err.Error())
	}
	var apiErr *bybit.ErrorResponse
	if errors.As(err, &apiErr) {
		if _, auth := bybitAuthCodes[apiErr.RetCode]; auth {
			return errors.Wrapf(domain.ErrAuth, "%s: %s", msg, apiErr.Error())
		}
	}
	return errors.Wrapf(domain.ErrExchange, "%s: %s", msg, err.Error())
}
