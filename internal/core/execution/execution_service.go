// Package execution drives the order pipeline for a single invocation:
// payload assembly from a validated order, delegation to the signed client,
// and logging of the outcome.
package execution

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/charleschow/futures-bot/internal/adapters/outbound/binance_http"
	"github.com/charleschow/futures-bot/internal/core/order"
)

var _ OrderPlacer = (*binance_http.Client)(nil)

// Service places one validated order per call. It owns payload assembly and
// client order ID generation; signing and transport stay behind the
// OrderPlacer port.
type Service struct {
	client OrderPlacer
	logger *zap.Logger
	newID  func() string
}

func NewService(client OrderPlacer, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
		newID:  func() string { return "bot-" + uuid.NewString() },
	}
}

// BuildOrderRequest maps a validated order onto the wire payload. LIMIT
// orders carry the price and a GTC time-in-force; MARKET orders carry
// neither.
func BuildOrderRequest(req order.Request) binance_http.NewOrderRequest {
	out := binance_http.NewOrderRequest{
		Symbol:        req.Symbol,
		Side:          string(req.Side),
		Type:          string(req.Type),
		Quantity:      req.Quantity.String(),
		ClientOrderID: req.ClientOrderID,
	}
	if req.Type == order.TypeLimit {
		out.TimeInForce = "GTC"
		out.Price = req.Price.String()
	}
	return out
}

// PlaceOrder submits req and returns the exchange's normalized ack. An empty
// client order ID is filled with a generated bot-<uuid> value first.
func (s *Service) PlaceOrder(ctx context.Context, req order.Request) (*order.Result, error) {
	httpReq := BuildOrderRequest(req)
	if httpReq.ClientOrderID == "" {
		httpReq.ClientOrderID = s.newID()
	}

	fields := []zap.Field{
		zap.String("symbol", httpReq.Symbol),
		zap.String("side", httpReq.Side),
		zap.String("type", httpReq.Type),
		zap.String("quantity", httpReq.Quantity),
		zap.String("client_order_id", httpReq.ClientOrderID),
	}
	if httpReq.Price != "" {
		fields = append(fields, zap.String("price", httpReq.Price))
	}
	s.logger.Info("execution: placing order", fields...)

	res, err := s.client.PlaceOrder(ctx, httpReq)
	if err != nil {
		s.logger.Error("execution: order failed",
			zap.String("symbol", httpReq.Symbol),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("execution: order accepted",
		zap.Int64("order_id", res.OrderID),
		zap.String("status", res.Status),
		zap.String("executed_qty", res.ExecutedQty),
		zap.String("avg_price", res.AvgPrice),
	)
	return res, nil
}
