package binance_http

import (
	"encoding/json"
	"fmt"
)

// APIError is an error the exchange itself reported, carried in the response
// body as {"code": ..., "msg": ...}. Binance signals these with non-2xx HTTP
// statuses and, occasionally, inside an HTTP 200 body, so classification
// relies on the body rather than the status line.
type APIError struct {
	Code       int
	Message    string
	HTTPStatus int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("binance api error %d: %s", e.Code, e.Message)
}

// NetworkError is a transport-level failure: timeout, DNS, refused or reset
// connection. The request may or may not have reached the exchange.
type NetworkError struct {
	Op    string // e.g. "POST /fapi/v1/order"
	Cause error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %s: %v", e.Op, e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// decodeAPIError extracts the exchange's error shape from a response body.
// Returns nil when the body is not JSON, carries no code, or carries the
// literal success code 200; Binance error codes are negative integers.
func decodeAPIError(body []byte, httpStatus int) *APIError {
	var shape struct {
		Code *int   `json:"code"`
		Msg  string `json:"msg"`
	}
	if err := json.Unmarshal(body, &shape); err != nil {
		return nil
	}
	if shape.Code == nil || *shape.Code == 200 {
		return nil
	}
	msg := shape.Msg
	if msg == "" {
		msg = "unknown error"
	}
	return &APIError{Code: *shape.Code, Message: msg, HTTPStatus: httpStatus}
}
