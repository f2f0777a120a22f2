// futures-bot places a single MARKET or LIMIT order on Binance USDT-M
// futures and exits. Credentials and endpoint selection come from the
// environment (or .env); order parameters come from flags.
//
//	futures-bot --symbol BTCUSDT --side BUY --order-type MARKET --quantity 0.01
//	futures-bot --symbol BTCUSDT --side SELL --order-type LIMIT --quantity 0.01 --price 65000
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
	"github.com/charleschow/futures-bot/internal/core/execution"
	"github.com/charleschow/futures-bot/internal/core/order"
	"github.com/charleschow/futures-bot/internal/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	symbol := flag.String("symbol", "", "trading pair, e.g. BTCUSDT")
	side := flag.String("side", "", "order side: BUY or SELL")
	orderType := flag.String("order-type", "", "order type: MARKET or LIMIT")
	quantity := flag.String("quantity", "", "base asset quantity, e.g. 0.01")
	price := flag.String("price", "", "limit price (LIMIT orders only)")
	clientOrderID := flag.String("client-order-id", "", "client order id (generated when empty)")
	flag.Parse()

	cfg := config.Load()

	logger, err := telemetry.NewLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("futures-bot started")

	req, err := order.Validate(order.RawParams{
		Symbol:        *symbol,
		Side:          *side,
		Type:          *orderType,
		Quantity:      *quantity,
		Price:         *price,
		ClientOrderID: *clientOrderID,
	})
	if err != nil {
		logger.Warn("validation failed", zap.Error(err))
		printError(err.Error())
		return 1
	}

	printSummary(req)

	if !cfg.HasCredentials() {
		msg := "Missing API credentials. Set BINANCE_API_KEY and BINANCE_API_SECRET in your environment or .env file."
		logger.Error("missing credentials")
		printError(msg)
		return 1
	}

	baseURL, err := cfg.ResolveBaseURL()
	if err != nil {
		logger.Error("endpoint resolution failed", zap.Error(err))
		printError(err.Error())
		return 1
	}
	logger.Info("endpoint selected",
		zap.String("base_url", baseURL),
		zap.String("profile", cfg.Profile),
	)

	signer := binance_auth.NewSigner(cfg.APIKey, cfg.APISecret)
	client := binance_http.NewClient(baseURL, cfg.HTTPTimeout, signer, logger)
	svc := execution.NewService(client, logger)

	res, err := svc.PlaceOrder(context.Background(), req)
	if err != nil {
		return fail(logger, cfg.LogFile, err)
	}

	printConfirmation(res)
	logger.Info("futures-bot finished",
		zap.Int64("orders_placed", telemetry.Metrics.OrdersPlaced.Value()),
		zap.Duration("request_p50", telemetry.Metrics.RequestLatency.P50()),
	)
	return 0
}

// fail maps a pipeline error onto an operator-facing message. Always exit
// code 1; the category only changes what gets printed and logged.
func fail(logger *zap.Logger, logFile string, err error) int {
	var apiErr *binance_http.APIError
	var netErr *binance_http.NetworkError
	switch {
	case errors.As(err, &apiErr):
		logger.Error("order rejected by exchange",
			zap.Int("code", apiErr.Code),
			zap.String("message", apiErr.Message),
			zap.Int("http_status", apiErr.HTTPStatus),
		)
		printError(fmt.Sprintf("Binance rejected the order (code %d): %s", apiErr.Code, apiErr.Message))
	case errors.As(err, &netErr):
		logger.Error("network failure", zap.Error(err))
		printError(fmt.Sprintf("Network failure: %v", netErr.Cause))
	default:
		logger.Error("unexpected error", zap.Error(err))
		msg := "An unexpected error occurred."
		if logFile != "" {
			msg = fmt.Sprintf("An unexpected error occurred. Check %s for details.", logFile)
		}
		printError(msg)
	}
	return 1
}

func printHeader(text string) {
	width := len(text) + 4
	if width < 50 {
		width = 50
	}
	fmt.Println("\n" + strings.Repeat("=", width))
	fmt.Printf("  %s\n", text)
	fmt.Println(strings.Repeat("=", width))
}

func printSummary(req order.Request) {
	printHeader("ORDER REQUEST SUMMARY")
	fmt.Printf("  %-11s: %s\n", "Symbol", req.Symbol)
	fmt.Printf("  %-11s: %s\n", "Side", req.Side)
	fmt.Printf("  %-11s: %s\n", "Type", req.Type)
	fmt.Printf("  %-11s: %s\n", "Quantity", req.Quantity)
	if req.Type == order.TypeLimit {
		fmt.Printf("  %-11s: %s\n", "Price", req.Price)
	}
	if req.ClientOrderID != "" {
		fmt.Printf("  %-11s: %s\n", "Client ID", req.ClientOrderID)
	}
	fmt.Println(strings.Repeat("-", 50))
}

func printConfirmation(res *order.Result) {
	printHeader("ORDER CONFIRMATION")
	fmt.Printf("  %-11s: %d\n", "Order ID", res.OrderID)
	fmt.Printf("  %-11s: %s\n", "Status", res.Status)
	fmt.Printf("  %-11s: %s\n", "Symbol", res.Symbol)
	fmt.Printf("  %-11s: %s\n", "Side", res.Side)
	fmt.Printf("  %-11s: %s\n", "Type", res.Type)
	if res.ClientOrderID != "" {
		fmt.Printf("  %-11s: %s\n", "Client ID", res.ClientOrderID)
	}
	fmt.Printf("  %-11s: %s\n", "Filled Qty", res.ExecutedQty)
	fmt.Printf("  %-11s: %s\n", "Avg Price", res.AvgPrice)
	fmt.Println(strings.Repeat("=", 50) + "\n")
}

func printError(msg string) {
	fmt.Fprintf(os.Stderr, "\n  ✖  ERROR: %s\n\n", msg)
}
