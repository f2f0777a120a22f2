// Package order holds the domain model for futures orders: the raw CLI
// inputs, the validated request, and the normalized exchange result.
package order

import "github.com/shopspring/decimal"

// Side is the direction of an order.
type Side string

// Type selects how an order executes.
type Type string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"

	TypeMarket Type = "MARKET"
	TypeLimit  Type = "LIMIT"
)

// RawParams carries order inputs exactly as they arrived from the CLI,
// before any validation or normalization.
type RawParams struct {
	Symbol        string
	Side          string
	Type          string
	Quantity      string
	Price         string
	ClientOrderID string
}

// Request is a validated, normalized order. Quantity and Price are exact
// decimals; Price is only set for LIMIT orders. ClientOrderID may be empty,
// in which case one is generated at submission time.
type Request struct {
	Symbol        string
	Side          Side
	Type          Type
	Quantity      decimal.Decimal
	Price         decimal.Decimal
	ClientOrderID string
}

// Result is the normalized acknowledgement for a placed or canceled order.
// ExecutedQty and AvgPrice are kept as exchange-reported decimal strings
// and default to "0" when the exchange omits them.
type Result struct {
	OrderID       int64
	Status        string
	Symbol        string
	Side          string
	Type          string
	ClientOrderID string
	ExecutedQty   string
	AvgPrice      string
}
