package execution

import (
	"context"

	"github.com/charleschow/futures-bot/internal/adapters/outbound/binance_http"
	"github.com/charleschow/futures-bot/internal/core/order"
)

// OrderPlacer abstracts the ability to place orders on an exchange.
// Satisfied by *binance_http.Client.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req binance_http.NewOrderRequest) (*order.Result, error)
}
