package clients

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	BitvavoRESTURL             = "https://api.bitvavo.com/v2"
	BitvavoWSURL               = "wss://ws.bitvavo.com/v2/"
	BitvavoDefaultAccessWindow = 10000

	bitvavoTimeout = 30 * time.Second
)

// BitvavoOptions configures the Bitvavo REST client. Zero values fall back to
// the public Bitvavo endpoints.
type BitvavoOptions struct {
	RESTURL string
	// WSURL is kept for completeness, no operation uses the websocket API.
	WSURL        string
	AccessWindow int
	HTTPClient   *http.Client
	Logger       *zap.Logger
}

// BitvavoClient is a minimal signed REST client for the Bitvavo v2 API,
// limited to the account endpoints the overview needs.
type BitvavoClient struct {
	apiKey       string
	apiSecret    string
	restURL      *url.URL
	wsURL        string
	accessWindow int
	httpClient   *http.Client
	logger       *zap.Logger
	now          func() time.Time
}

// BitvavoBalance item of GET /balance.
type BitvavoBalance struct {
	Symbol    string `json:"symbol"`
	Available string `json:"available"`
	InOrder   string `json:"inOrder"`
}

// BitvavoTrade item of GET /trades.
type BitvavoTrade struct {
	ID          string `json:"id"`
	OrderID     string `json:"orderId"`
	Timestamp   int64  `json:"timestamp"`
	Market      string `json:"market"`
	Side        string `json:"side"`
	Amount      string `json:"amount"`
	Price       string `json:"price"`
	Taker       bool   `json:"taker"`
	Fee         string `json:"fee"`
	FeeCurrency string `json:"feeCurrency"`
	Settled     bool   `json:"settled"`
}

// BitvavoTickerPrice response of GET /ticker/price for a single market.
type BitvavoTickerPrice struct {
	Market string `json:"market"`
	Price  string `json:"price"`
}

// BitvavoAPIError error payload returned by the API together with a non-2xx status.
type BitvavoAPIError struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"errorCode"`
	Message    string `json:"error"`
}

func (e *BitvavoAPIError) Error() string {
	return fmt.Sprintf("bitvavo api error: status %d, code %d: %s", e.StatusCode, e.Code, e.Message)
}

// IsAuth reports whether the API refused the key, the signature or the timestamp.
// Bitvavo reserves error codes 300-399 for authentication failures.
func (e *BitvavoAPIError) IsAuth() bool {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return true
	}
	return e.Code >= 300 && e.Code < 400
}

// NewBitvavoClient creates a client authenticated with the given key pair.
func NewBitvavoClient(apiKey, apiSecret string, opts BitvavoOptions) (*BitvavoClient, error) {
	restURL := opts.RESTURL
	if restURL == "" {
		restURL = BitvavoRESTURL
	}
	u, err := url.Parse(strings.TrimRight(restURL, "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid bitvavo rest url %q", restURL)
	}

	wsURL := opts.WSURL
	if wsURL == "" {
		wsURL = BitvavoWSURL
	}
	window := opts.AccessWindow
	if window <= 0 {
		window = BitvavoDefaultAccessWindow
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: bitvavoTimeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &BitvavoClient{
		apiKey:       apiKey,
		apiSecret:    apiSecret,
		restURL:      u,
		wsURL:        wsURL,
		accessWindow: window,
		httpClient:   httpClient,
		logger:       logger,
		now:          time.Now,
	}, nil
}

// WSURL returns the configured websocket endpoint.
func (c *BitvavoClient) WSURL() string {
	return c.wsURL
}

// Balance returns the balance of every asset held on the account.
func (c *BitvavoClient) Balance(ctx context.Context) ([]BitvavoBalance, error) {
	var balances []BitvavoBalance
	if err := c.get(ctx, "/balance", nil, &balances); err != nil {
		return nil, err
	}
	return balances, nil
}

// Trades returns the account trades on market, e.g. BTC-EUR.
func (c *BitvavoClient) Trades(ctx context.Context, market string) ([]BitvavoTrade, error) {
	var trades []BitvavoTrade
	if err := c.get(ctx, "/trades", url.Values{"market": {market}}, &trades); err != nil {
		return nil, err
	}
	return trades, nil
}

// TickerPrice returns the latest price of market. Price is empty when the
// exchange has no price for it.
func (c *BitvavoClient) TickerPrice(ctx context.Context, market string) (BitvavoTickerPrice, error) {
	var price BitvavoTickerPrice
	if err := c.get(ctx, "/ticker/price", url.Values{"market": {market}}, &price); err != nil {
		return BitvavoTickerPrice{}, err
	}
	return price, nil
}

func (c *BitvavoClient) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	// the signed path includes the API version prefix of the base url
	path := c.restURL.Path + endpoint
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	u := *c.restURL
	u.Path = ""
	addr := u.String() + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create HTTP request")
	}

	ts := c.now().UnixMilli()
	req.Header.Set("Bitvavo-Access-Key", c.apiKey)
	req.Header.Set("Bitvavo-Access-Signature", c.sign(ts, http.MethodGet, path, ""))
	req.Header.Set("Bitvavo-Access-Timestamp", strconv.FormatInt(ts, 10))
	req.Header.Set("Bitvavo-Access-Window", strconv.Itoa(c.accessWindow))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "HTTP request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response body")
	}

	c.logger.Debug("bitvavo request",
		zap.String("method", http.MethodGet),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &BitvavoAPIError{StatusCode: resp.StatusCode}
		if jsonErr := json.Unmarshal(body, apiErr); jsonErr != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "failed to unmarshal response of %s", endpoint)
	}
	return nil
}

// sign computes the hex HMAC-SHA256 of timestamp + method + path + body.
func (c *BitvavoClient) sign(ts int64, method, path, body string) string {
	mac := hmac.New(sha256.New, []byte(c.apiSecret))
	mac.Write([]byte(strconv.FormatInt(ts, 10) + method + path + body))
	return hex.EncodeToString(mac.Sum(nil))
}
