package engine

import (
	"fmt"

	"github.com/efreitasn/currencyledger/internal/domain"
)

// Engine applies Buy and Sell orders to a currency's balance.
//
// A buy must first cover any negative balance: when the deficit exceeds
// the quantity the buy is rejected with domain.InsufficientBalance and the
// balance is left as it was. Covering and net buying are both priced at
// the buy rate. Sells are always accepted and may drive the balance
// negative without limit.
//
// The engine never validates quantity ranges; callers do that at the
// boundary. It never creates or removes currencies.
type Engine struct{}

// New creates an Engine.
func New() *Engine {
	return &Engine{}
}

// Execute applies one order to c and returns its result.
//
// An order type other than Buy or Sell returns domain.ErrInvalidOrderType
// without touching the balance.
func (e *Engine) Execute(orderType domain.OrderType, c *domain.Currency, quantity int64) (domain.Result, error) {
	result, _, err := e.Apply(orderType, c, quantity)
	return result, err
}

// Apply is Execute that also returns the balance left by the order. The
// currency's mutex is held for the whole read-check-write, so concurrent
// orders on the same currency are applied one at a time.
func (e *Engine) Apply(orderType domain.OrderType, c *domain.Currency, quantity int64) (domain.Result, int64, error) {
	c.Mu.Lock()
	defer c.Mu.Unlock()

	result, balance, err := settle(orderType, c, quantity)
	if err != nil {
		return domain.Result{}, c.Balance, err
	}
	c.Balance = balance
	return result, balance, nil
}

// Quote reports what Apply would return for the order without changing
// the balance.
func (e *Engine) Quote(orderType domain.OrderType, c *domain.Currency, quantity int64) (domain.Result, int64, error) {
	c.Mu.Lock()
	defer c.Mu.Unlock()

	return settle(orderType, c, quantity)
}

// settle computes the result and resulting balance. The caller must hold c.Mu.
func settle(orderType domain.OrderType, c *domain.Currency, quantity int64) (domain.Result, int64, error) {
	switch orderType {
	case domain.OrderTypeBuy:
		if c.Deficit() > quantity {
			return domain.InsufficientBalance, c.Balance, nil
		}
		return domain.Result{Total: quantity * c.BuyRate}, c.Balance + quantity, nil
	case domain.OrderTypeSell:
		return domain.Result{Total: quantity * c.SellRate}, c.Balance - quantity, nil
	}
	return domain.Result{}, c.Balance, fmt.Errorf("%w: %q", domain.ErrInvalidOrderType, orderType)
}
