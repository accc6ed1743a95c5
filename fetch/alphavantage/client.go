package alphavantage

import (
	"context"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/marstr/stockfetch"
)

const (
	AlphaVantageBaseUri = "https://www.alphavantage.co/query"
	DefaultUserAgent    = "stockfetch/1.0"

	intradayFunction = "TIME_SERIES_INTRADAY"
	intradayInterval = "1min"
)

type Client struct {
	ApiKey    string
	BaseUri   string
	UserAgent string

	// HTTPClient defaults to http.DefaultClient, which never times out.
	HTTPClient *http.Client
	Log        *zap.Logger
}

func (avc Client) baseUri() string {
	if avc.BaseUri == "" {
		return AlphaVantageBaseUri
	}
	return avc.BaseUri
}

func (avc Client) logger() *zap.Logger {
	if avc.Log == nil {
		return zap.NewNop()
	}
	return avc.Log
}

// RequestURL builds the intraday query for symbol. The symbol is passed
// through as given; only query escaping is applied.
func (avc Client) RequestURL(symbol stockfetch.Symbol) (string, error) {
	req, err := http.NewRequest(http.MethodGet, avc.baseUri(), nil)
	if err != nil {
		return "", err
	}

	q := req.URL.Query()
	q.Set("function", intradayFunction)
	q.Set("symbol", string(symbol))
	q.Set("interval", intradayInterval)
	q.Set("apikey", avc.ApiKey)
	req.URL.RawQuery = q.Encode()

	return req.URL.String(), nil
}

// Fetch performs a single GET and returns the entire response body. The HTTP
// status is not inspected; whatever the service sent is handed back.
func (avc Client) Fetch(ctx context.Context, symbol stockfetch.Symbol) ([]byte, error) {
	target, err := avc.RequestURL(symbol)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	ua := avc.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	client := avc.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	log := avc.logger().With(zap.String("symbol", string(symbol)))
	log.Debug("querying Alpha Vantage API", zap.String("function", intradayFunction))

	resp, err := client.Do(req)
	if err != nil {
		return nil, stockfetch.NetworkError{Symbol: symbol, Err: err}
	}
	defer resp.Body.Close()

	rawResponse, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, stockfetch.NetworkError{Symbol: symbol, Err: err}
	}

	log.Debug("received response",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(rawResponse)))
	return rawResponse, nil
}
