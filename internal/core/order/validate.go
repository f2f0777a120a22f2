package order

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationError reports the first order parameter that failed validation.
// Its message is shown to the operator verbatim, so it names the field, the
// rejected value, and the expected shape.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Invalid %s: '%s'. %s", e.Field, e.Value, e.Reason)
}

// Validate normalizes raw CLI inputs into a Request. Rules run in a fixed
// order (symbol, side, order type, quantity, price) and fail on the first
// violation. Pure: no I/O, no clock reads, no logging.
func Validate(raw RawParams) (Request, error) {
	symbol := strings.ToUpper(strings.TrimSpace(raw.Symbol))
	if symbol == "" {
		return Request{}, &ValidationError{
			Field:  "symbol",
			Value:  raw.Symbol,
			Reason: "Symbol must be a non-empty string.",
		}
	}

	side := Side(strings.ToUpper(strings.TrimSpace(raw.Side)))
	if side != SideBuy && side != SideSell {
		return Request{}, &ValidationError{
			Field:  "side",
			Value:  raw.Side,
			Reason: "Expected one of: BUY, SELL.",
		}
	}

	typ := Type(strings.ToUpper(strings.TrimSpace(raw.Type)))
	if typ != TypeMarket && typ != TypeLimit {
		return Request{}, &ValidationError{
			Field:  "order_type",
			Value:  raw.Type,
			Reason: "Expected one of: LIMIT, MARKET.",
		}
	}

	qty, err := decimal.NewFromString(strings.TrimSpace(raw.Quantity))
	if err != nil {
		return Request{}, &ValidationError{
			Field:  "quantity",
			Value:  raw.Quantity,
			Reason: "Must be a valid positive number (e.g. 0.01).",
		}
	}
	if qty.Sign() <= 0 {
		return Request{}, &ValidationError{
			Field:  "quantity",
			Value:  raw.Quantity,
			Reason: "Must be strictly greater than zero.",
		}
	}

	req := Request{
		Symbol:        symbol,
		Side:          side,
		Type:          typ,
		Quantity:      qty,
		ClientOrderID: strings.TrimSpace(raw.ClientOrderID),
	}

	// Price participates only for LIMIT orders; a price handed to a MARKET
	// order is ignored rather than rejected.
	if typ == TypeLimit {
		if strings.TrimSpace(raw.Price) == "" {
			return Request{}, &ValidationError{
				Field:  "price",
				Value:  raw.Price,
				Reason: "Price is required for LIMIT orders.",
			}
		}
		price, err := decimal.NewFromString(strings.TrimSpace(raw.Price))
		if err != nil {
			return Request{}, &ValidationError{
				Field:  "price",
				Value:  raw.Price,
				Reason: "Must be a valid positive number (e.g. 30000).",
			}
		}
		if price.Sign() <= 0 {
			return Request{}, &ValidationError{
				Field:  "price",
				Value:  raw.Price,
				Reason: "Must be strictly greater than zero.",
			}
		}
		req.Price = price
	}

	return req, nil
}
