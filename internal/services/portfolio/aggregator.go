// Package portfolio derives invested capital, value and yield of the assets held on an account.
package portfolio

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/folio/internal/domain"
	"github.com/vadiminshakov/folio/internal/services/account"
	"go.uber.org/zap"
)

const moneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// Aggregator computes per-asset figures from the account reader. It keeps no
// state between calls: every figure is derived from fresh requests.
type Aggregator struct {
	reader account.Reader
	quote  string
	logger *zap.Logger
}

// NewAggregator creates an aggregator for assets denominated in quoteCurrency.
func NewAggregator(reader account.Reader, quoteCurrency string, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{reader: reader, quote: quoteCurrency, logger: logger}
}

// QuoteCurrency returns the settlement currency of every market.
func (a *Aggregator) QuoteCurrency() string {
	return a.quote
}

// ListOwnedAssetSymbols returns every symbol of the balance listing except the
// quote currency, in listing order. Zero balances are not filtered out.
func (a *Aggregator) ListOwnedAssetSymbols(ctx context.Context) ([]string, error) {
	balances, err := a.reader.FetchBalances(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list owned assets")
	}

	symbols := make([]string, 0, len(balances))
	for _, b := range balances {
		if b.Symbol == a.quote {
			continue
		}
		symbols = append(symbols, b.Symbol)
	}
	return symbols, nil
}

// TotalInvested returns the net capital put into symbol: buys add and sells
// subtract amount×price. Negative when more was sold than bought.
func (a *Aggregator) TotalInvested(ctx context.Context, symbol string) (decimal.Decimal, error) {
	trades, err := a.reader.FetchTrades(ctx, a.pair(symbol))
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "failed to get trades of %s", symbol)
	}
	return Subtotal(trades), nil
}

// CurrentValue returns available quantity × ticker price of symbol, zero when
// the symbol is not listed exactly once in the balances.
func (a *Aggregator) CurrentValue(ctx context.Context, symbol string) (decimal.Decimal, error) {
	balances, err := a.reader.FetchBalances(ctx)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "failed to get balance of %s", symbol)
	}
	if _, ok := uniqueEntry(balances, symbol); !ok {
		return decimal.Zero, nil
	}

	price, err := a.reader.FetchTickerPrice(ctx, a.pair(symbol))
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "failed to get price of %s", symbol)
	}
	return value(balances, symbol, price), nil
}

// SummaryRow computes the overview line of symbol. Zero holdings or zero net
// invested capital yield domain.ErrInsufficientData.
func (a *Aggregator) SummaryRow(ctx context.Context, symbol string) (domain.AssetSummary, error) {
	balances, err := a.reader.FetchBalances(ctx)
	if err != nil {
		return domain.AssetSummary{}, errors.Wrapf(err, "failed to get balance of %s", symbol)
	}
	entry, ok := firstEntry(balances, symbol)
	if !ok {
		return domain.AssetSummary{}, errors.Wrapf(domain.ErrInsufficientData, "%s is not in the balance listing", symbol)
	}

	invested, err := a.TotalInvested(ctx, symbol)
	if err != nil {
		return domain.AssetSummary{}, err
	}
	invested = invested.Round(moneyPlaces)

	amount := entry.Available
	if amount.IsZero() {
		return domain.AssetSummary{}, errors.Wrapf(domain.ErrInsufficientData, "average buy price of %s: zero holdings", symbol)
	}

	price, err := a.reader.FetchTickerPrice(ctx, a.pair(symbol))
	if err != nil {
		return domain.AssetSummary{}, errors.Wrapf(err, "failed to get price of %s", symbol)
	}

	current := value(balances, symbol, price).Round(moneyPlaces)
	gain := current.Sub(invested)

	if invested.IsZero() {
		return domain.AssetSummary{}, errors.Wrapf(domain.ErrInsufficientData, "yield of %s: zero net invested capital", symbol)
	}

	a.logger.Debug("asset summarized",
		zap.String("symbol", symbol),
		zap.String("invested", invested.String()),
		zap.String("value", current.String()),
	)

	return domain.AssetSummary{
		Symbol:          symbol,
		TotalInvested:   invested,
		Amount:          amount,
		AverageBuyPrice: invested.Div(amount),
		CurrentPrice:    price,
		CurrentValue:    current,
		YieldAbsolute:   gain.Round(moneyPlaces),
		YieldPercent:    gain.Div(invested).Mul(hundred),
	}, nil
}

func (a *Aggregator) pair(symbol string) domain.Pair {
	return domain.NewPair(symbol, a.quote)
}

// Subtotal returns the signed sum of the trade costs.
func Subtotal(trades []domain.Trade) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range trades {
		sum = sum.Add(t.Cost())
	}
	return sum
}

func value(balances []domain.BalanceEntry, symbol string, price decimal.Decimal) decimal.Decimal {
	entry, ok := uniqueEntry(balances, symbol)
	if !ok {
		return decimal.Zero
	}
	return entry.Available.Mul(price)
}

func firstEntry(balances []domain.BalanceEntry, symbol string) (domain.BalanceEntry, bool) {
	for _, b := range balances {
		if b.Symbol == symbol {
			return b, true
		}
	}
	return domain.BalanceEntry{}, false
}

func uniqueEntry(balances []domain.BalanceEntry, symbol string) (domain.BalanceEntry, bool) {
	var (
		found domain.BalanceEntry
		n     int
	)
	for _, b := range balances {
		if b.Symbol == symbol {
			found = b
			n++
		}
	}
	return found, n == 1
}
