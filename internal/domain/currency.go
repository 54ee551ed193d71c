package domain

import (
	"fmt"
	"sync"
	"time"
)

// Currency is a tradable currency with fixed exchange rates and the
// player's running balance in it. Balance may be negative after sells.
type Currency struct {
	ID        int64
	BuyRate   int64 // paid per unit on Buy
	SellRate  int64 // received per unit on Sell
	Balance   int64
	CreatedAt time.Time
	Mu        sync.Mutex // serializes balance mutations
}

// NewCurrency validates the id and rates and returns a Currency with a
// zero balance. The buy rate must be strictly greater than the sell rate.
func NewCurrency(id, buyRate, sellRate int64) (*Currency, error) {
	if !ValidCurrencyID(id) {
		return nil, &ConstructionError{
			CurrencyID: id,
			Field:      "id",
			Message:    fmt.Sprintf("must be in [%d, %d]", MinCurrencyID, MaxCurrencyID),
		}
	}
	if !ValidRate(buyRate) {
		return nil, &ConstructionError{
			CurrencyID: id,
			Field:      "buy_rate",
			Message:    fmt.Sprintf("must be in [%d, %d], got %d", MinRate, MaxRate, buyRate),
		}
	}
	if !ValidRate(sellRate) {
		return nil, &ConstructionError{
			CurrencyID: id,
			Field:      "sell_rate",
			Message:    fmt.Sprintf("must be in [%d, %d], got %d", MinRate, MaxRate, sellRate),
		}
	}
	if buyRate <= sellRate {
		return nil, &ConstructionError{
			CurrencyID: id,
			Field:      "buy_rate",
			Message:    fmt.Sprintf("must be greater than sell_rate (%d <= %d)", buyRate, sellRate),
		}
	}

	return &Currency{
		ID:        id,
		BuyRate:   buyRate,
		SellRate:  sellRate,
		CreatedAt: time.Now(),
	}, nil
}

// Deficit returns how many units must be bought back before the balance
// is non-negative again. The caller must hold Mu.
func (c *Currency) Deficit() int64 {
	if c.Balance < 0 {
		return -c.Balance
	}
	return 0
}
