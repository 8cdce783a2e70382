package clients

import (
	"github.com/adshao/go-binance/v2"
)

// NewBinanceClient creates an authenticated Binance spot client. An empty
// baseURL keeps the library default.
func NewBinanceClient(apiKey, apiSecret, baseURL string, debug bool) *binance.Client {
	client := binance.NewClient(apiKey, apiSecret)
	if baseURL != "" {
		client.BaseURL = baseURL
	}
	client.Debug = debug
	return client
}
