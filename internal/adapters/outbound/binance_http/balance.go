package binance_http

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charleschow/futures-bot/internal/adapters/binance_auth"
	"github.com/charleschow/futures-bot/internal/telemetry"
)

const balancePath = "/fapi/v2/balance"

// AssetBalance is one entry of GET /fapi/v2/balance. Amounts are
// exchange-reported decimal strings.
type AssetBalance struct {
	Asset              string `json:"asset"`
	Balance            string `json:"balance"`
	CrossWalletBalance string `json:"crossWalletBalance"`
	AvailableBalance   string `json:"availableBalance"`
	CrossUnPnl         string `json:"crossUnPnl"`
}

// AccountBalance fetches per-asset futures wallet balances.
func (c *Client) AccountBalance(ctx context.Context) ([]AssetBalance, error) {
	body, status, err := c.Get(ctx, balancePath, binance_auth.NewParams())
	if err != nil {
		return nil, err
	}

	var balances []AssetBalance
	if err := json.Unmarshal(body, &balances); err != nil {
		return nil, fmt.Errorf("decode balance response (HTTP %d): %w: %s", status, err, truncate(body, 200))
	}

	telemetry.Metrics.BalanceQueries.Inc()
	return balances, nil
}
