package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/efreitasn/currencyledger/internal/domain"
	"github.com/efreitasn/currencyledger/internal/store"
)

// RegisterCurrencyRequest represents the input for currency registration.
type RegisterCurrencyRequest struct {
	ID       int64
	BuyRate  int64
	SellRate int64
}

// CurrencyView is a point-in-time copy of a currency, safe to read
// without holding the currency's lock.
type CurrencyView struct {
	ID        int64
	BuyRate   int64
	SellRate  int64
	Balance   int64
	CreatedAt time.Time
}

// CurrencyService handles currency registration and balance queries.
type CurrencyService struct {
	store  *store.CurrencyStore
	logger *slog.Logger
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(store *store.CurrencyStore, logger *slog.Logger) *CurrencyService {
	return &CurrencyService{
		store:  store,
		logger: logger,
	}
}

// Register validates the rates, creates the currency with a zero balance
// and adds it to the registry. Range or rate-ordering violations return a
// *domain.ConstructionError; a repeated id returns
// domain.ErrCurrencyAlreadyExists.
func (s *CurrencyService) Register(req RegisterCurrencyRequest) (*CurrencyView, error) {
	c, err := domain.NewCurrency(req.ID, req.BuyRate, req.SellRate)
	if err != nil {
		return nil, err
	}

	if err := s.store.Register(c); err != nil {
		return nil, err
	}

	s.logger.Debug("currency registered",
		slog.Int64("currency_id", c.ID),
		slog.Int64("buy_rate", c.BuyRate),
		slog.Int64("sell_rate", c.SellRate),
	)

	return &CurrencyView{
		ID:        c.ID,
		BuyRate:   c.BuyRate,
		SellRate:  c.SellRate,
		CreatedAt: c.CreatedAt,
	}, nil
}

// Seed registers each entry in order and stops at the first failure.
// It returns the number of currencies registered.
func (s *CurrencyService) Seed(reqs []RegisterCurrencyRequest) (int, error) {
	for i, req := range reqs {
		if _, err := s.Register(req); err != nil {
			return i, fmt.Errorf("seed entry %d (id %d): %w", i+1, req.ID, err)
		}
	}
	return len(reqs), nil
}

// Get returns a snapshot of the currency, or domain.ErrCurrencyNotFound.
func (s *CurrencyService) Get(id int64) (*CurrencyView, error) {
	c, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	v := snapshot(c)
	return &v, nil
}

// List returns snapshots of every registered currency in ascending id order.
func (s *CurrencyService) List() []CurrencyView {
	currencies := s.store.List()
	views := make([]CurrencyView, len(currencies))
	for i, c := range currencies {
		views[i] = snapshot(c)
	}
	return views
}

func snapshot(c *domain.Currency) CurrencyView {
	c.Mu.Lock()
	defer c.Mu.Unlock()

	return CurrencyView{
		ID:        c.ID,
		BuyRate:   c.BuyRate,
		SellRate:  c.SellRate,
		Balance:   c.Balance,
		CreatedAt: c.CreatedAt,
	}
}
