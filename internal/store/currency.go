package store

import (
	"sync"

	"github.com/efreitasn/currencyledger/internal/domain"
	"github.com/google/btree"
)

// CurrencyStore is the currency registry: a thread-safe in-memory store
// keyed by currency id, with a B-tree of ids for ordered listing.
type CurrencyStore struct {
	mu         sync.RWMutex
	currencies map[int64]*domain.Currency
	ids        *btree.BTreeG[int64]
}

// NewCurrencyStore creates an empty CurrencyStore.
func NewCurrencyStore() *CurrencyStore {
	const degree = 32
	return &CurrencyStore{
		currencies: make(map[int64]*domain.Currency),
		ids:        btree.NewOrderedG[int64](degree),
	}
}

// Register adds a currency to the store. It returns
// domain.ErrCurrencyAlreadyExists if the id is already registered;
// the existing entry is left untouched.
func (s *CurrencyStore) Register(c *domain.Currency) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.currencies[c.ID]; exists {
		return domain.ErrCurrencyAlreadyExists
	}
	s.currencies[c.ID] = c
	s.ids.ReplaceOrInsert(c.ID)
	return nil
}

// Get retrieves a currency by id. It returns
// domain.ErrCurrencyNotFound if the currency does not exist.
func (s *CurrencyStore) Get(id int64) (*domain.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.currencies[id]
	if !ok {
		return nil, domain.ErrCurrencyNotFound
	}
	return c, nil
}

// Exists returns true if a currency with the given id is registered.
func (s *CurrencyStore) Exists(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.currencies[id]
	return ok
}

// List returns all registered currencies in ascending id order.
func (s *CurrencyStore) List() []*domain.Currency {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Currency, 0, s.ids.Len())
	s.ids.Ascend(func(id int64) bool {
		result = append(result, s.currencies[id])
		return true
	})
	return result
}

// Len returns the number of registered currencies.
func (s *CurrencyStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.currencies)
}
