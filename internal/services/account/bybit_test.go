package account

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/folio/internal/clients"
	"github.com/vadiminshakov/folio/internal/domain"
)

func newBybitReader(t *testing.T, routes map[string]string) *BybitReader {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewBybitReader(clients.NewBybitClient("key", "secret", srv.URL))
}

func bybitOK(result string) string {
	return `{"retCode":0,"retMsg":"OK","result":` + result + `,"retExtInfo":{},"time":1700000000000}`
}

func TestBybitReader_FetchBalances(t *testing.T) {
	r := newBybitReader(t, map[string]string{
		"/v5/account/wallet-balance": bybitOK(`{"list":[{"accountType":"UNIFIED","coin":[
			{"coin":"BTC","walletBalance":"2","locked":"0.5"},
			{"coin":"USDT","walletBalance":"100","locked":""}
		]}]}`),
	})

	balances, err := r.FetchBalances(context.Background())
	require.NoError(t, err)
	require.Len(t, balances, 2)

	assert.Equal(t, "BTC", balances[0].Symbol)
	assert.True(t, balances[0].Available.Equal(decimal.RequireFromString("1.5")), "available %s", balances[0].Available)
	assert.True(t, balances[0].InOrder.Equal(decimal.RequireFromString("0.5")))

	assert.Equal(t, "USDT", balances[1].Symbol)
	assert.True(t, balances[1].Available.Equal(decimal.NewFromInt(100)))
	assert.True(t, balances[1].InOrder.IsZero())
}

func TestBybitReader_FetchTrades(t *testing.T) {
	r := newBybitReader(t, map[string]string{
		"/v5/execution/list": bybitOK(`{"category":"spot","nextPageCursor":"","list":[
			{"symbol":"BTCUSDT","execId":"e1","side":"Buy","execQty":"1","execPrice":"100"},
			{"symbol":"BTCUSDT","execId":"e2","side":"Sell","execQty":"0.5","execPrice":"300"}
		]}`),
	})

	trades, err := r.FetchTrades(context.Background(), domain.NewPair("BTC", "USDT"))
	require.NoError(t, err)
	require.Len(t, trades, 2)

	assert.Equal(t, domain.SideBuy, trades[0].Side)
	assert.True(t, trades[0].Amount.Equal(decimal.NewFromInt(1)))
	assert.True(t, trades[0].Price.Equal(decimal.NewFromInt(100)))

	assert.Equal(t, domain.SideSell, trades[1].Side)
	assert.True(t, trades[1].Amount.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, trades[1].Price.Equal(decimal.NewFromInt(300)))
}

func TestBybitReader_FetchTrades_UnknownSide(t *testing.T) {
	r := newBybitReader(t, map[string]string{
		"/v5/execution/list": bybitOK(`{"category":"spot","list":[
			{"symbol":"BTCUSDT","execId":"e1","side":"None","execQty":"1","execPrice":"100"}
		]}`),
	})

	_, err := r.FetchTrades(context.Background(), domain.NewPair("BTC", "USDT"))
	assert.True(t, errors.Is(err, domain.ErrExchange), "got %v", err)
}

func TestBybitReader_FetchTickerPrice(t *testing.T) {
	tests := []struct {
		name     string
		result   string
		expected decimal.Decimal
	}{
		{
			name:     "last price",
			result:   `{"category":"spot","list":[{"symbol":"BTCUSDT","lastPrice":"250"}]}`,
			expected: decimal.NewFromInt(250),
		},
		{
			name:     "no ticker",
			result:   `{"category":"spot","list":[]}`,
			expected: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newBybitReader(t, map[string]string{
				"/v5/market/tickers": bybitOK(tt.result),
			})

			price, err := r.FetchTickerPrice(context.Background(), domain.NewPair("BTC", "USDT"))
			require.NoError(t, err)
			assert.True(t, price.Equal(tt.expected), "price %s", price)
		})
	}
}

func TestBybitReader_ErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		target error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, target: domain.ErrAuth},
		{name: "invalid key", status: http.StatusOK, body: `{"retCode":10003,"retMsg":"API key is invalid.","result":{},"retExtInfo":{},"time":1}`, target: domain.ErrAuth},
		{name: "invalid params", status: http.StatusOK, body: `{"retCode":10001,"retMsg":"params error","result":{},"retExtInfo":{},"time":1}`, target: domain.ErrExchange},
		{name: "malformed payload", status: http.StatusOK, body: `<html>maintenance</html>`, target: domain.ErrExchange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			r := NewBybitReader(clients.NewBybitClient("key", "secret", srv.URL))
			_, err := r.FetchBalances(context.Background())
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}

func TestClassifyBybitError(t *testing.T) {
	netErr := &url.Error{Op: "Get", URL: "https://api.bybit.com", Err: errors.New("connection refused")}
	assert.True(t, errors.Is(classifyBybitError(netErr, "balance"), domain.ErrNetwork))
	assert.True(t, errors.Is(classifyBybitError(errors.New("unexpected status code 502"), "balance"), domain.ErrExchange))
}
