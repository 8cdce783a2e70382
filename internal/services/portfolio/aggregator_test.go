package portfolio

import (
	"context"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/folio/internal/domain"
	"go.uber.org/zap"
)

// fakeReader is an in-memory account.Reader keyed by market id.
type fakeReader struct {
	balances []domain.BalanceEntry
	trades   map[string][]domain.Trade
	prices   map[string]decimal.Decimal
	err      error

	priceCalls int
}

func (f *fakeReader) FetchBalances(ctx context.Context) ([]domain.BalanceEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.balances, nil
}

func (f *fakeReader) FetchTrades(ctx context.Context, pair domain.Pair) ([]domain.Trade, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.trades[pair.Market()], nil
}

func (f *fakeReader) FetchTickerPrice(ctx context.Context, pair domain.Pair) (decimal.Decimal, error) {
	f.priceCalls++
	if f.err != nil {
		return decimal.Zero, f.err
	}
	return f.prices[pair.Market()], nil
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func buy(amount, price string) domain.Trade {
	return domain.Trade{Amount: d(amount), Price: d(price), Side: domain.SideBuy}
}

func sell(amount, price string) domain.Trade {
	return domain.Trade{Amount: d(amount), Price: d(price), Side: domain.SideSell}
}

func newFixture() *fakeReader {
	return &fakeReader{
		balances: []domain.BalanceEntry{
			{Symbol: "EUR", Available: d("50")},
			{Symbol: "BTC", Available: d("2")},
			{Symbol: "ETH", Available: d("0")},
		},
		trades: map[string][]domain.Trade{
			"BTC-EUR": {buy("1", "100"), buy("1", "200")},
		},
		prices: map[string]decimal.Decimal{
			"BTC-EUR": d("200"),
		},
	}
}

func TestAggregator_ListOwnedAssetSymbols(t *testing.T) {
	agg := NewAggregator(newFixture(), "EUR", zap.NewNop())

	symbols, err := agg.ListOwnedAssetSymbols(context.Background())
	require.NoError(t, err)
	// the quote currency is excluded, zero balances are kept
	assert.Equal(t, []string{"BTC", "ETH"}, symbols)
}

func TestAggregator_ListOwnedAssetSymbols_ReaderError(t *testing.T) {
	agg := NewAggregator(&fakeReader{err: domain.ErrNetwork}, "EUR", zap.NewNop())

	_, err := agg.ListOwnedAssetSymbols(context.Background())
	assert.True(t, errors.Is(err, domain.ErrNetwork))
}

func TestAggregator_TotalInvested(t *testing.T) {
	tests := []struct {
		name   string
		trades []domain.Trade
		want   decimal.Decimal
	}{
		{name: "no trades", want: decimal.Zero},
		{name: "buys", trades: []domain.Trade{buy("1", "100"), buy("1", "200")}, want: d("300")},
		{name: "buy and partial sell", trades: []domain.Trade{buy("2", "100"), sell("1", "150")}, want: d("50")},
		{name: "oversold is negative", trades: []domain.Trade{buy("1", "100"), sell("1", "250")}, want: d("-150")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeReader{trades: map[string][]domain.Trade{"BTC-EUR": tt.trades}}
			agg := NewAggregator(r, "EUR", zap.NewNop())

			got, err := agg.TotalInvested(context.Background(), "BTC")
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestSubtotal_OrderIndependent(t *testing.T) {
	trades := []domain.Trade{
		buy("0.125", "31000.5"),
		sell("0.05", "42000"),
		buy("1.3", "17.33"),
		sell("0.7", "19.01"),
		buy("3", "0.0001"),
	}
	want := Subtotal(trades)

	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := append([]domain.Trade(nil), trades...)
		rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.True(t, want.Equal(Subtotal(shuffled)))
	}
}

func TestAggregator_CurrentValue(t *testing.T) {
	agg := NewAggregator(newFixture(), "EUR", zap.NewNop())

	v, err := agg.CurrentValue(context.Background(), "BTC")
	require.NoError(t, err)
	assert.True(t, v.Equal(d("400")))
}

func TestAggregator_CurrentValue_Absent(t *testing.T) {
	r := newFixture()
	agg := NewAggregator(r, "EUR", zap.NewNop())

	v, err := agg.CurrentValue(context.Background(), "DOGE")
	require.NoError(t, err)
	assert.True(t, v.IsZero())
	assert.Equal(t, 0, r.priceCalls)
}

func TestAggregator_CurrentValue_Duplicated(t *testing.T) {
	r := newFixture()
	r.balances = append(r.balances, domain.BalanceEntry{Symbol: "BTC", Available: d("1")})
	agg := NewAggregator(r, "EUR", zap.NewNop())

	v, err := agg.CurrentValue(context.Background(), "BTC")
	require.NoError(t, err)
	assert.True(t, v.IsZero())
}

func TestAggregator_SummaryRow(t *testing.T) {
	agg := NewAggregator(newFixture(), "EUR", zap.NewNop())

	row, err := agg.SummaryRow(context.Background(), "BTC")
	require.NoError(t, err)

	assert.Equal(t, "BTC", row.Symbol)
	assert.True(t, row.TotalInvested.Equal(d("300")))
	assert.True(t, row.Amount.Equal(d("2")))
	assert.True(t, row.AverageBuyPrice.Equal(d("150")))
	assert.True(t, row.CurrentPrice.Equal(d("200")))
	assert.True(t, row.CurrentValue.Equal(d("400")))
	assert.True(t, row.YieldAbsolute.Equal(d("100")))
	assert.Equal(t, "33.33%", domain.FormatPercent(row.YieldPercent))
}

func TestAggregator_SummaryRow_RoundsMoney(t *testing.T) {
	r := &fakeReader{
		balances: []domain.BalanceEntry{{Symbol: "ADA", Available: d("3")}},
		trades:   map[string][]domain.Trade{"ADA-EUR": {buy("3", "0.333333")}},
		prices:   map[string]decimal.Decimal{"ADA-EUR": d("0.411111")},
	}
	agg := NewAggregator(r, "EUR", zap.NewNop())

	row, err := agg.SummaryRow(context.Background(), "ADA")
	require.NoError(t, err)
	assert.True(t, row.TotalInvested.Equal(d("1")))
	assert.True(t, row.CurrentValue.Equal(d("1.23")))
	assert.True(t, row.YieldAbsolute.Equal(d("0.23")))
	assert.Equal(t, "23.00%", domain.FormatPercent(row.YieldPercent))
}

func TestAggregator_SummaryRow_ZeroHoldings(t *testing.T) {
	r := newFixture()
	r.trades["ETH-EUR"] = []domain.Trade{buy("1", "10"), sell("1", "12")}
	agg := NewAggregator(r, "EUR", zap.NewNop())

	_, err := agg.SummaryRow(context.Background(), "ETH")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientData))
	assert.Contains(t, err.Error(), "zero holdings")
}

func TestAggregator_SummaryRow_ZeroInvested(t *testing.T) {
	r := newFixture()
	r.trades["BTC-EUR"] = []domain.Trade{buy("2", "100"), sell("1", "200")}
	agg := NewAggregator(r, "EUR", zap.NewNop())

	_, err := agg.SummaryRow(context.Background(), "BTC")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientData))
	assert.Contains(t, err.Error(), "zero net invested")
}

func TestAggregator_SummaryRow_NotListed(t *testing.T) {
	agg := NewAggregator(newFixture(), "EUR", zap.NewNop())

	_, err := agg.SummaryRow(context.Background(), "DOGE")
	assert.True(t, errors.Is(err, domain.ErrInsufficientData))
}

func TestAggregator_SummaryRow_ReaderError(t *testing.T) {
	agg := NewAggregator(&fakeReader{err: domain.ErrAuth}, "EUR", zap.NewNop())

	_, err := agg.SummaryRow(context.Background(), "BTC")
	assert.True(t, errors.Is(err, domain.ErrAuth))
}
