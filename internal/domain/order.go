package domain

import (
	"fmt"
	"strconv"
	"time"
)

// OrderType is the direction of an order. Only Buy and Sell exist.
type OrderType string

const (
	OrderTypeBuy  OrderType = "Buy"
	OrderTypeSell OrderType = "Sell"
)

// ParseOrderType converts the wire form of an order type. Anything other
// than "Buy" or "Sell" yields ErrInvalidOrderType.
func ParseOrderType(s string) (OrderType, error) {
	switch OrderType(s) {
	case OrderTypeBuy, OrderTypeSell:
		return OrderType(s), nil
	}
	return "", fmt.Errorf("%w: %q, must be one of: Buy, Sell", ErrInvalidOrderType, s)
}

// InsufficientBalanceMessage is printed for a rejected buy.
const InsufficientBalanceMessage = "Insufficient balance"

// Result is the outcome of a single order: either the total amount paid or
// received, or a rejection because the buy could not cover the deficit.
type Result struct {
	Total        int64
	Insufficient bool
}

// InsufficientBalance is the rejected-buy result.
var InsufficientBalance = Result{Insufficient: true}

// String renders the result as it appears in batch output.
func (r Result) String() string {
	if r.Insufficient {
		return InsufficientBalanceMessage
	}
	return strconv.FormatInt(r.Total, 10)
}

// OrderStatus is the journal state of a processed order.
type OrderStatus string

const (
	OrderStatusExecuted            OrderStatus = "executed"
	OrderStatusInsufficientBalance OrderStatus = "insufficient_balance"
)

// Order is the journal record of one processed order.
type Order struct {
	OrderID      string
	Type         OrderType
	CurrencyID   int64
	Quantity     int64
	Status       OrderStatus
	Total        int64 // 0 when rejected
	BalanceAfter int64
	CreatedAt    time.Time
}

// Result reconstructs the engine result recorded on the order.
func (o *Order) Result() Result {
	if o.Status == OrderStatusInsufficientBalance {
		return InsufficientBalance
	}
	return Result{Total: o.Total}
}
