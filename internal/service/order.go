package service

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/efreitasn/currencyledger/internal/domain"
	"github.com/efreitasn/currencyledger/internal/engine"
	"github.com/efreitasn/currencyledger/internal/store"
	"github.com/google/uuid"
)

const maxListLimit = 100

// SubmitOrderRequest represents the input for order submission. Type is
// the wire form ("Buy" or "Sell") and is parsed here, once.
type SubmitOrderRequest struct {
	Type       string
	CurrencyID int64
	Quantity   int64
}

// QuoteResponse is the outcome an order would have right now.
type QuoteResponse struct {
	Type         domain.OrderType
	CurrencyID   int64
	Quantity     int64
	Result       domain.Result
	BalanceAfter int64
}

// OrderService validates orders at the boundary, resolves the currency,
// runs the engine and journals the outcome.
type OrderService struct {
	engine     *engine.Engine
	currencies *store.CurrencyStore
	orders     *store.OrderStore
	maxOrders  int
	logger     *slog.Logger

	// admitted counts orders past validation, including ones that failed
	// currency lookup, so the per-run bound matches what upstream sent.
	mu       sync.Mutex
	admitted int
}

// NewOrderService creates a new OrderService. maxOrders bounds the number
// of orders accepted in this run; values <= 0 fall back to domain.MaxOrders.
func NewOrderService(
	eng *engine.Engine,
	currencies *store.CurrencyStore,
	orders *store.OrderStore,
	maxOrders int,
	logger *slog.Logger,
) *OrderService {
	if maxOrders <= 0 {
		maxOrders = domain.MaxOrders
	}
	return &OrderService{
		engine:     eng,
		currencies: currencies,
		orders:     orders,
		maxOrders:  maxOrders,
		logger:     logger,
	}
}

// SubmitOrder parses and validates the request, applies it to the
// currency and records it in the journal. A buy rejected for insufficient
// balance is not an error: it is journaled with
// domain.OrderStatusInsufficientBalance and returned normally.
func (s *OrderService) SubmitOrder(req SubmitOrderRequest) (*domain.Order, error) {
	orderType, err := s.validate(req.Type, req.CurrencyID, req.Quantity)
	if err != nil {
		return nil, err
	}

	if err := s.admit(); err != nil {
		return nil, err
	}

	c, err := s.currencies.Get(req.CurrencyID)
	if err != nil {
		return nil, fmt.Errorf("currency %d: %w", req.CurrencyID, err)
	}

	result, balance, err := s.engine.Apply(orderType, c, req.Quantity)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		OrderID:      uuid.New().String(),
		Type:         orderType,
		CurrencyID:   c.ID,
		Quantity:     req.Quantity,
		Status:       domain.OrderStatusExecuted,
		Total:        result.Total,
		BalanceAfter: balance,
		CreatedAt:    time.Now(),
	}
	if result.Insufficient {
		order.Status = domain.OrderStatusInsufficientBalance
		s.logger.Debug("buy rejected: insufficient balance",
			slog.Int64("currency_id", c.ID),
			slog.Int64("quantity", req.Quantity),
			slog.Int64("balance", order.BalanceAfter),
		)
	}

	s.orders.Append(order)
	return order, nil
}

// Quote validates the request like SubmitOrder and reports the result the
// order would get against the current balance, without applying it.
func (s *OrderService) Quote(req SubmitOrderRequest) (*QuoteResponse, error) {
	orderType, err := s.validate(req.Type, req.CurrencyID, req.Quantity)
	if err != nil {
		return nil, err
	}

	c, err := s.currencies.Get(req.CurrencyID)
	if err != nil {
		return nil, fmt.Errorf("currency %d: %w", req.CurrencyID, err)
	}

	result, balance, err := s.engine.Quote(orderType, c, req.Quantity)
	if err != nil {
		return nil, err
	}

	return &QuoteResponse{
		Type:         orderType,
		CurrencyID:   c.ID,
		Quantity:     req.Quantity,
		Result:       result,
		BalanceAfter: balance,
	}, nil
}

// GetOrder retrieves a journaled order by ID.
func (s *OrderService) GetOrder(orderID string) (*domain.Order, error) {
	return s.orders.Get(orderID)
}

// ListOrders returns journaled orders newest first, optionally filtered by
// currency. A currency filter naming an unregistered currency returns
// domain.ErrCurrencyNotFound.
func (s *OrderService) ListOrders(currencyID *int64, page, limit int) ([]*domain.Order, int, error) {
	if page < 1 {
		return nil, 0, &domain.ValidationError{Message: "page must be >= 1"}
	}
	if limit < 1 || limit > maxListLimit {
		return nil, 0, &domain.ValidationError{
			Message: fmt.Sprintf("limit must be between 1 and %d", maxListLimit),
		}
	}
	if currencyID != nil && !s.currencies.Exists(*currencyID) {
		return nil, 0, domain.ErrCurrencyNotFound
	}

	orders, total := s.orders.List(currencyID, page, limit)
	return orders, total, nil
}

func (s *OrderService) validate(typ string, currencyID, quantity int64) (domain.OrderType, error) {
	orderType, err := domain.ParseOrderType(typ)
	if err != nil {
		return "", err
	}
	if !domain.ValidCurrencyID(currencyID) {
		return "", &domain.ValidationError{
			Message: fmt.Sprintf("currency_id must be in [%d, %d]", domain.MinCurrencyID, domain.MaxCurrencyID),
		}
	}
	if !domain.ValidQuantity(quantity) {
		return "", &domain.ValidationError{
			Message: fmt.Sprintf("quantity must be in [%d, %d]", domain.MinQuantity, domain.MaxQuantity),
		}
	}
	if quantity < 0 {
		return "", &domain.ValidationError{Message: "quantity must be >= 0"}
	}
	return orderType, nil
}

func (s *OrderService) admit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.admitted >= s.maxOrders {
		return domain.ErrOrderLimitReached
	}
	s.admitted++
	return nil
}
