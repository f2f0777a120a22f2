// account-balance prints per-asset USDT-M futures wallet balances.
// Zero balances are hidden unless --all is set.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
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
	asset := flag.String("asset", "", "only show this asset, e.g. USDT")
	all := flag.Bool("all", false, "include zero balances")
	flag.Parse()

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

	balances, err := client.AccountBalance(context.Background())
	if err != nil {
		logger.Error("balance query failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "✖ %v\n", err)
		return 1
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ASSET\tBALANCE\tAVAILABLE\tUNREALIZED PNL")
	shown := 0
	for _, b := range balances {
		if *asset != "" && b.Asset != strings.ToUpper(*asset) {
			continue
		}
		if !*all && isZero(b.Balance) {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.Asset, b.Balance, b.AvailableBalance, b.CrossUnPnl)
		shown++
	}
	w.Flush()

	if shown == 0 {
		fmt.Println("no balances to show (try --all)")
	}
	return 0
}

// isZero treats unparseable amounts as nonzero so they stay visible.
func isZero(s string) bool {
	d, err := decimal.NewFromString(s)
	return err == nil && d.IsZero()
}
