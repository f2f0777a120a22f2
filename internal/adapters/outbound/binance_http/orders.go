package binance_http

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/charleschow/futures-bot/internal/adapters/binance_auth"
	"github.com/charleschow/futures-bot/internal/core/order"
	"github.com/charleschow/futures-bot/internal/telemetry"
)

const orderPath = "/fapi/v1/order"

// NewOrderRequest is the payload for POST /fapi/v1/order. Quantity and Price
// are pre-rendered decimal strings; TimeInForce and Price are set only for
// LIMIT orders.
type NewOrderRequest struct {
	Symbol        string
	Side          string // "BUY" or "SELL"
	Type          string // "MARKET" or "LIMIT"
	Quantity      string
	TimeInForce   string // "GTC" for LIMIT, empty otherwise
	Price         string
	ClientOrderID string // echoed back by the exchange as clientOrderId
}

// Params renders the request onto Binance's field names in a fixed insertion
// order. Empty optional fields are omitted entirely, so a MARKET order never
// carries price or timeInForce.
func (r NewOrderRequest) Params() *binance_auth.Params {
	p := binance_auth.NewParams()
	p.Set("symbol", r.Symbol)
	p.Set("side", r.Side)
	p.Set("type", r.Type)
	p.Set("quantity", r.Quantity)
	if r.TimeInForce != "" {
		p.Set("timeInForce", r.TimeInForce)
	}
	if r.Price != "" {
		p.Set("price", r.Price)
	}
	if r.ClientOrderID != "" {
		p.Set("newClientOrderId", r.ClientOrderID)
	}
	return p
}

// OrderAck is the exchange's acknowledgement shape for placed and canceled
// orders. OrderID is a pointer so an absent field is distinguishable from a
// zero one.
type OrderAck struct {
	OrderID       *int64 `json:"orderId"`
	Status        string `json:"status"`
	Symbol        string `json:"symbol"`
	Side          string `json:"side"`
	Type          string `json:"type"`
	ClientOrderID string `json:"clientOrderId"`
	ExecutedQty   string `json:"executedQty"`
	AvgPrice      string `json:"avgPrice"`
}

// Result normalizes the ack. orderId and status are mandatory; their absence
// means the exchange broke its own contract, not that the order failed.
// executedQty and avgPrice default to "0" when omitted.
func (a OrderAck) Result() (*order.Result, error) {
	if a.OrderID == nil {
		return nil, fmt.Errorf("order ack missing orderId")
	}
	if a.Status == "" {
		return nil, fmt.Errorf("order ack missing status")
	}

	res := &order.Result{
		OrderID:       *a.OrderID,
		Status:        a.Status,
		Symbol:        a.Symbol,
		Side:          a.Side,
		Type:          a.Type,
		ClientOrderID: a.ClientOrderID,
		ExecutedQty:   a.ExecutedQty,
		AvgPrice:      a.AvgPrice,
	}
	if res.ExecutedQty == "" {
		res.ExecutedQty = "0"
	}
	if res.AvgPrice == "" {
		res.AvgPrice = "0"
	}
	return res, nil
}

// PlaceOrder submits a signed order and returns the normalized result.
func (c *Client) PlaceOrder(ctx context.Context, req NewOrderRequest) (*order.Result, error) {
	body, status, err := c.Post(ctx, orderPath, req.Params())
	if err != nil {
		telemetry.Metrics.OrderErrors.Inc()
		return nil, err
	}

	res, err := decodeAck(body, status)
	if err != nil {
		telemetry.Metrics.OrderErrors.Inc()
		return nil, err
	}

	telemetry.Metrics.OrdersPlaced.Inc()
	c.logger.Info("binance_http: order placed",
		zap.String("symbol", req.Symbol),
		zap.String("side", req.Side),
		zap.Int64("order_id", res.OrderID),
		zap.String("status", res.Status),
	)
	return res, nil
}

// CancelOrder cancels a resting order by exchange order ID.
func (c *Client) CancelOrder(ctx context.Context, symbol string, orderID int64) (*order.Result, error) {
	params := binance_auth.NewParams()
	params.Set("symbol", symbol)
	params.Set("orderId", strconv.FormatInt(orderID, 10))

	body, status, err := c.Delete(ctx, orderPath, params)
	if err != nil {
		telemetry.Metrics.OrderErrors.Inc()
		return nil, err
	}

	res, err := decodeAck(body, status)
	if err != nil {
		telemetry.Metrics.OrderErrors.Inc()
		return nil, err
	}

	telemetry.Metrics.OrdersCanceled.Inc()
	c.logger.Info("binance_http: order canceled",
		zap.String("symbol", symbol),
		zap.Int64("order_id", res.OrderID),
		zap.String("status", res.Status),
	)
	return res, nil
}

func decodeAck(body []byte, status int) (*order.Result, error) {
	var ack OrderAck
	if err := json.Unmarshal(body, &ack); err != nil {
		return nil, fmt.Errorf("decode order ack (HTTP %d): %w: %s", status, err, truncate(body, 200))
	}
	return ack.Result()
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
