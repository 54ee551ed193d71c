package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrCurrencyAlreadyExists = errors.New("currency_already_exists")
	ErrCurrencyNotFound      = errors.New("currency_not_found")
	ErrInvalidOrderType      = errors.New("invalid_order_type")
	ErrOrderNotFound         = errors.New("order_not_found")
	ErrOrderLimitReached     = errors.New("order_limit_reached")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConstructionError reports a currency whose id or rates cannot form a
// valid Currency. Field names the offending attribute.
type ConstructionError struct {
	CurrencyID int64
	Field      string
	Message    string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("currency %d: %s: %s", e.CurrencyID, e.Field, e.Message)
}
