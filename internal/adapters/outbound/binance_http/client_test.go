package binance_http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/charleschow/futures-bot/internal/adapters/binance_auth"
)

// capturedRequest records what the fake exchange actually received so
// assertions can run on the test goroutine after the call returns.
type capturedRequest struct {
	method      string
	path        string
	query       string
	body        string
	apiKey      string
	contentType string
}

func newTestClient(t *testing.T, timeout time.Duration, handler http.HandlerFunc) (*Client, *binance_auth.Signer) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	signer := binance_auth.NewSigner("test-key", "test-secret")
	return NewClient(srv.URL, timeout, signer, zap.NewNop()), signer
}

func capture(got *capturedRequest, respond http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		got.query = r.URL.RawQuery
		got.apiKey = r.Header.Get("X-MBX-APIKEY")
		got.contentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		got.body = string(b)
		respond(w, r)
	}
}

func respondJSON(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}
}

// splitSignature separates the signed prefix from the trailing signature
// parameter of an encoded payload.
func splitSignature(t *testing.T, encoded string) (canonical, signature string) {
	t.Helper()
	idx := strings.LastIndex(encoded, "&signature=")
	require.True(t, idx > 0, "no signature in payload: %s", encoded)
	return encoded[:idx], encoded[idx+len("&signature="):]
}

func TestPlaceOrderSendsSignedForm(t *testing.T) {
	var got capturedRequest
	client, signer := newTestClient(t, 0, capture(&got, respondJSON(200,
		`{"orderId":4321,"symbol":"BTCUSDT","status":"NEW","clientOrderId":"bot-test-1","side":"BUY","type":"MARKET","executedQty":"0.010","avgPrice":"65000.5"}`)))

	res, err := client.PlaceOrder(context.Background(), NewOrderRequest{
		Symbol:        "BTCUSDT",
		Side:          "BUY",
		Type:          "MARKET",
		Quantity:      "0.01",
		ClientOrderID: "bot-test-1",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/fapi/v1/order", got.path)
	assert.Equal(t, "test-key", got.apiKey)
	assert.Equal(t, "application/x-www-form-urlencoded", got.contentType)
	assert.Empty(t, got.query, "signed params belong in the POST body")

	canonical, signature := splitSignature(t, got.body)
	assert.Equal(t, signer.Signature(canonical), signature)

	require.True(t, strings.HasPrefix(canonical,
		"symbol=BTCUSDT&side=BUY&type=MARKET&quantity=0.01&newClientOrderId=bot-test-1&timestamp="),
		"unexpected field order: %s", canonical)

	form, err := url.ParseQuery(got.body)
	require.NoError(t, err)
	assert.Equal(t, "5000", form.Get("recvWindow"))
	ts, err := strconv.ParseInt(form.Get("timestamp"), 10, 64)
	require.NoError(t, err)
	assert.Greater(t, ts, int64(0))
	assert.NotContains(t, form, "price")
	assert.NotContains(t, form, "timeInForce")

	assert.Equal(t, int64(4321), res.OrderID)
	assert.Equal(t, "NEW", res.Status)
	assert.Equal(t, "BTCUSDT", res.Symbol)
	assert.Equal(t, "0.010", res.ExecutedQty)
	assert.Equal(t, "65000.5", res.AvgPrice)
}

func TestPlaceOrderExchangeError(t *testing.T) {
	client, _ := newTestClient(t, 0, respondJSON(401,
		`{"code":-2015,"msg":"Invalid API-key, IP, or permissions for action."}`))

	_, err := client.PlaceOrder(context.Background(), NewOrderRequest{
		Symbol: "BTCUSDT", Side: "BUY", Type: "MARKET", Quantity: "0.01",
	})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "expected *APIError, got %T: %v", err, err)
	assert.Equal(t, -2015, apiErr.Code)
	assert.Equal(t, 401, apiErr.HTTPStatus)
}

func TestPlaceOrderExchangeErrorInsideHTTP200(t *testing.T) {
	// Binance occasionally reports failures in a 200 body; the body shape
	// wins over the status line.
	client, _ := newTestClient(t, 0, respondJSON(200,
		`{"code":-1121,"msg":"Invalid symbol."}`))

	_, err := client.PlaceOrder(context.Background(), NewOrderRequest{
		Symbol: "NOPEUSDT", Side: "BUY", Type: "MARKET", Quantity: "1",
	})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, -1121, apiErr.Code)
	assert.Equal(t, 200, apiErr.HTTPStatus)
}

func TestPlaceOrderTimeout(t *testing.T) {
	client, _ := newTestClient(t, 50*time.Millisecond, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	})

	_, err := client.PlaceOrder(context.Background(), NewOrderRequest{
		Symbol: "BTCUSDT", Side: "BUY", Type: "MARKET", Quantity: "0.01",
	})
	require.Error(t, err)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr), "expected *NetworkError, got %T: %v", err, err)
	assert.Equal(t, "POST /fapi/v1/order", netErr.Op)
}

func TestPlaceOrderConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	signer := binance_auth.NewSigner("test-key", "test-secret")
	client := NewClient(srv.URL, time.Second, signer, zap.NewNop())

	_, err := client.PlaceOrder(context.Background(), NewOrderRequest{
		Symbol: "BTCUSDT", Side: "BUY", Type: "MARKET", Quantity: "0.01",
	})

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr), "expected *NetworkError, got %T: %v", err, err)
}

func TestPlaceOrderMalformedBody(t *testing.T) {
	client, _ := newTestClient(t, 0, respondJSON(200, `<html>maintenance</html>`))

	_, err := client.PlaceOrder(context.Background(), NewOrderRequest{
		Symbol: "BTCUSDT", Side: "BUY", Type: "MARKET", Quantity: "0.01",
	})
	require.Error(t, err)

	// Neither the exchange's fault nor the network's: falls through to a
	// plain decode error.
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	var netErr *NetworkError
	assert.False(t, errors.As(err, &netErr))
	assert.Contains(t, err.Error(), "decode order ack")
}

func TestPlaceOrderAckMissingOrderID(t *testing.T) {
	client, _ := newTestClient(t, 0, respondJSON(200, `{"status":"NEW","symbol":"BTCUSDT"}`))

	_, err := client.PlaceOrder(context.Background(), NewOrderRequest{
		Symbol: "BTCUSDT", Side: "BUY", Type: "MARKET", Quantity: "0.01",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orderId")
}

func TestCancelOrder(t *testing.T) {
	var got capturedRequest
	client, signer := newTestClient(t, 0, capture(&got, respondJSON(200,
		`{"orderId":4321,"symbol":"BTCUSDT","status":"CANCELED","side":"SELL","type":"LIMIT","executedQty":"0","avgPrice":"0"}`)))

	res, err := client.CancelOrder(context.Background(), "BTCUSDT", 4321)
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, got.method)
	assert.Equal(t, "/fapi/v1/order", got.path)
	assert.Empty(t, got.body, "DELETE carries params in the query string")

	canonical, signature := splitSignature(t, got.query)
	assert.Equal(t, signer.Signature(canonical), signature)
	assert.True(t, strings.HasPrefix(canonical, "symbol=BTCUSDT&orderId=4321&timestamp="))

	assert.Equal(t, "CANCELED", res.Status)
	assert.Equal(t, int64(4321), res.OrderID)
}

func TestAccountBalance(t *testing.T) {
	var got capturedRequest
	client, _ := newTestClient(t, 0, capture(&got, respondJSON(200,
		`[{"asset":"USDT","balance":"4723.45","crossWalletBalance":"4723.45","availableBalance":"4000.00","crossUnPnl":"0.00"},
		  {"asset":"BNB","balance":"0.00000000","crossWalletBalance":"0.00000000","availableBalance":"0.00000000","crossUnPnl":"0.00000000"}]`)))

	balances, err := client.AccountBalance(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/fapi/v2/balance", got.path)
	assert.Contains(t, got.query, "signature=")

	require.Len(t, balances, 2)
	assert.Equal(t, "USDT", balances[0].Asset)
	assert.Equal(t, "4000.00", balances[0].AvailableBalance)
}

func TestAccountBalanceExchangeError(t *testing.T) {
	client, _ := newTestClient(t, 0, respondJSON(401,
		`{"code":-2014,"msg":"API-key format invalid."}`))

	_, err := client.AccountBalance(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, -2014, apiErr.Code)
}
