package store

import (
	"sync"

	"github.com/efreitasn/currencyledger/internal/domain"
)

// OrderStore is the order journal: a thread-safe in-memory store with a
// primary index by order_id, a chronological log, and a secondary index
// by currency_id.
type OrderStore struct {
	mu             sync.RWMutex
	orders         map[string]*domain.Order
	log            []*domain.Order           // submission order (append-only)
	currencyOrders map[int64][]*domain.Order // currency_id → orders (append-only)
}

// NewOrderStore creates an empty OrderStore.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders:         make(map[string]*domain.Order),
		currencyOrders: make(map[int64][]*domain.Order),
	}
}

// Append records a processed order.
func (s *OrderStore) Append(o *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[o.OrderID] = o
	s.log = append(s.log, o)
	s.currencyOrders[o.CurrencyID] = append(s.currencyOrders[o.CurrencyID], o)
}

// Get retrieves an order by ID. It returns
// domain.ErrOrderNotFound if the order does not exist.
func (s *OrderStore) Get(id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

// Count returns the number of journaled orders.
func (s *OrderStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.log)
}

// List returns journaled orders newest first. If currencyID is non-nil,
// only orders against that currency are included. Pagination is 1-based.
// Returns the orders for the requested page and the total count of
// matching orders (before pagination).
func (s *OrderStore) List(currencyID *int64, page, limit int) ([]*domain.Order, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.log
	if currencyID != nil {
		all = s.currencyOrders[*currencyID]
	}

	total := len(all)
	start := (page - 1) * limit
	if start >= total {
		return []*domain.Order{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}

	// Walk backwards from the newest entry.
	result := make([]*domain.Order, 0, end-start)
	for i := total - 1 - start; i >= total-end; i-- {
		result = append(result, all[i])
	}
	return result, total
}
