// cancel-order cancels a resting futures order by exchange order ID.
//
//	cancel-order --symbol BTCUSDT --order-id 4321
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/charleschow/futures-bot/internal/adapters/binance_auth"
	"github.com/charleschow/futures-bot/internal/adapters/outbound/binance_http"
	"github.com/charleschow/futures-bot/internal/config"
	"github.com/charleschow/futures-bot/internal/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	symbolFlag := flag.String("symbol", "", "trading pair, e.g. BTCUSDT")
	orderID := flag.Int64("order-id", 0, "exchange order id to cancel")
	flag.Parse()

	symbol := strings.ToUpper(strings.TrimSpace(*symbolFlag))
	if symbol == "" || *orderID <= 0 {
		fmt.Fprintln(os.Stderr, "✖ both --symbol and a positive --order-id are required")
		return 1
	}

	cfg := config.Load()

	logger, err := telemetry.NewLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		return 1
	}
	defer logger.Sync()

	if !cfg.HasCredentials() {
		fmt.Fprintln(os.Stderr, "✖ set BINANCE_API_KEY and BINANCE_API_SECRET first")
		return 1
	}

	baseURL, err := cfg.ResolveBaseURL()
	if err != nil {
		logger.Error("endpoint resolution failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "✖ %v\n", err)
		return 1
	}

	signer := binance_auth.NewSigner(cfg.APIKey, cfg.APISecret)
	client := binance_http.NewClient(baseURL, cfg.HTTPTimeout, signer, logger)

	res, err := client.CancelOrder(context.Background(), symbol, *orderID)
	if err != nil {
		logger.Error("cancel failed", zap.Error(err))

		var apiErr *binance_http.APIError
		var netErr *binance_http.NetworkError
		switch {
		case errors.As(err, &apiErr):
			fmt.Fprintf(os.Stderr, "✖ Binance rejected the cancel (code %d): %s\n", apiErr.Code, apiErr.Message)
		case errors.As(err, &netErr):
			fmt.Fprintf(os.Stderr, "✖ Network failure: %v\n", netErr.Cause)
		default:
			fmt.Fprintf(os.Stderr, "✖ Unexpected error: %v\n", err)
		}
		return 1
	}

	fmt.Printf("✓ order %d on %s canceled (status %s)\n", res.OrderID, res.Symbol, res.Status)
	return 0
}
