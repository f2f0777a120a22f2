// sign-order builds and signs an order payload without touching the
// network. It shows exactly what futures-bot would send, which makes
// signature mismatches reproducible: pin --timestamp and compare against
// the exchange's own examples.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charleschow/futures-bot/internal/adapters/binance_auth"
	"github.com/charleschow/futures-bot/internal/config"
	"github.com/charleschow/futures-bot/internal/core/execution"
	"github.com/charleschow/futures-bot/internal/core/order"
)

func main() {
	symbol := flag.String("symbol", "", "trading pair, e.g. BTCUSDT")
	side := flag.String("side", "", "order side: BUY or SELL")
	orderType := flag.String("order-type", "", "order type: MARKET or LIMIT")
	quantity := flag.String("quantity", "", "base asset quantity, e.g. 0.01")
	price := flag.String("price", "", "limit price (LIMIT orders only)")
	clientOrderID := flag.String("client-order-id", "", "client order id (omitted when empty)")
	timestamp := flag.Int64("timestamp", 0, "epoch millis to sign with (0 = now)")
	flag.Parse()

	cfg := config.Load()

	req, err := order.Validate(order.RawParams{
		Symbol:        *symbol,
		Side:          *side,
		Type:          *orderType,
		Quantity:      *quantity,
		Price:         *price,
		ClientOrderID: *clientOrderID,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "✖ invalid order: %v\n", err)
		os.Exit(1)
	}

	if !cfg.HasCredentials() {
		fmt.Fprintln(os.Stderr, "✖ set BINANCE_API_KEY and BINANCE_API_SECRET to sign payloads")
		os.Exit(1)
	}

	baseURL, err := cfg.ResolveBaseURL()
	if err != nil {
		fmt.Fprintf(os.Stderr, "✖ %v\n", err)
		os.Exit(1)
	}

	signer := binance_auth.NewSigner(cfg.APIKey, cfg.APISecret)
	if *timestamp > 0 {
		pinned := time.UnixMilli(*timestamp)
		signer.WithClock(func() time.Time { return pinned })
	}

	signed := signer.SignParams(execution.BuildOrderRequest(req).Params())
	encoded := signed.Encode()
	sig, _ := signed.Get("signature")
	canonical := strings.TrimSuffix(encoded, "&signature="+sig)

	fmt.Println("Order Details:")
	fmt.Printf("  Symbol: %s\n", req.Symbol)
	fmt.Printf("  Side: %s\n", req.Side)
	fmt.Printf("  Type: %s\n", req.Type)
	fmt.Printf("  Quantity: %s\n", req.Quantity)
	if req.Type == order.TypeLimit {
		fmt.Printf("  Price: %s\n", req.Price)
	}
	fmt.Println()

	fmt.Println("Canonical payload (the signed bytes):")
	fmt.Printf("  %s\n\n", canonical)
	fmt.Printf("Signature: %s\n\n", sig)

	fmt.Println("To submit this order:")
	fmt.Printf("  POST %s/fapi/v1/order\n", baseURL)
	fmt.Println("  Content-Type: application/x-www-form-urlencoded")
	fmt.Println("  X-MBX-APIKEY: <BINANCE_API_KEY>")
	fmt.Println("  Body:")
	fmt.Printf("  %s\n\n", encoded)

	fmt.Println("✓ payload signed")
}
