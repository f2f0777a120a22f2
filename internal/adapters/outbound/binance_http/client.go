// Package binance_http is the outbound adapter for the Binance USDT-M
// futures REST API. Every request is signed; responses are classified into
// exchange-reported errors, transport failures, or decoded payloads.
package binance_http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/charleschow/futures-bot/internal/adapters/binance_auth"
	"github.com/charleschow/futures-bot/internal/telemetry"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL      string
	httpClient   *http.Client
	signer       *binance_auth.Signer
	logger       *zap.Logger
	readLimiter  *rate.Limiter
	writeLimiter *rate.Limiter
}

func NewClient(baseURL string, timeout time.Duration, signer *binance_auth.Signer, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		signer:       signer,
		logger:       logger,
		readLimiter:  rate.NewLimiter(rate.Limit(20), 20),
		writeLimiter: rate.NewLimiter(rate.Limit(10), 10),
	}
}

// do signs params and issues one request. POST carries the encoded params as
// a form body; GET and DELETE carry them in the query string. The returned
// error is an *APIError when the exchange answered with its error shape, a
// *NetworkError when the transport failed, and nil otherwise; callers decode
// the body themselves.
func (c *Client) do(ctx context.Context, method, path string, params *binance_auth.Params) ([]byte, int, error) {
	lim := c.readLimiter
	if method != http.MethodGet {
		lim = c.writeLimiter
	}
	if err := lim.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("rate limit wait: %w", err)
	}

	signed := c.signer.SignParams(params)
	encoded := signed.Encode()

	url := c.baseURL + path
	var req *http.Request
	var err error
	if method == http.MethodPost {
		req, err = http.NewRequestWithContext(ctx, method, url, strings.NewReader(encoded))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, method, url+"?"+encoded, nil)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("new request: %w", err)
	}

	req.Header.Set("X-MBX-APIKEY", c.signer.APIKey())
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("binance_http: sending request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Any("params", telemetry.SanitizeParams(signed.Map())),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		telemetry.Metrics.NetworkErrors.Inc()
		return nil, 0, &NetworkError{Op: method + " " + path, Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		telemetry.Metrics.NetworkErrors.Inc()
		return nil, resp.StatusCode, &NetworkError{Op: method + " " + path, Cause: err}
	}

	elapsed := time.Since(start)
	telemetry.Metrics.RequestLatency.Record(elapsed)
	c.logger.Debug("binance_http: response received",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed),
	)

	if apiErr := decodeAPIError(body, resp.StatusCode); apiErr != nil {
		return body, resp.StatusCode, apiErr
	}

	return body, resp.StatusCode, nil
}

func (c *Client) Get(ctx context.Context, path string, params *binance_auth.Params) ([]byte, int, error) {
	return c.do(ctx, http.MethodGet, path, params)
}

func (c *Client) Post(ctx context.Context, path string, params *binance_auth.Params) ([]byte, int, error) {
	return c.do(ctx, http.MethodPost, path, params)
}

func (c *Client) Delete(ctx context.Context, path string, params *binance_auth.Params) ([]byte, int, error) {
	return c.do(ctx, http.MethodDelete, path, params)
}
