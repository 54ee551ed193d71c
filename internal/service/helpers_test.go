package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/efreitasn/currencyledger/internal/engine"
	"github.com/efreitasn/currencyledger/internal/store"
)

// testEnv bundles the services with their shared stores.
type testEnv struct {
	currencies  *store.CurrencyStore
	orders      *store.OrderStore
	currencySvc *CurrencyService
	orderSvc    *OrderService
}

func newTestEnv(maxOrders int) *testEnv {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cs := store.NewCurrencyStore()
	os := store.NewOrderStore()
	return &testEnv{
		currencies:  cs,
		orders:      os,
		currencySvc: NewCurrencyService(cs, logger),
		orderSvc:    NewOrderService(engine.New(), cs, os, maxOrders, logger),
	}
}

func (env *testEnv) register(t *testing.T, id, buy, sell int64) {
	t.Helper()
	if _, err := env.currencySvc.Register(RegisterCurrencyRequest{ID: id, BuyRate: buy, SellRate: sell}); err != nil {
		t.Fatalf("register currency %d: %v", id, err)
	}
}

func (env *testEnv) submit(t *testing.T, typ string, id, qty int64) string {
	t.Helper()
	o, err := env.orderSvc.SubmitOrder(SubmitOrderRequest{Type: typ, CurrencyID: id, Quantity: qty})
	if err != nil {
		t.Fatalf("submit %s %d %d: %v", typ, id, qty, err)
	}
	return o.Result().String()
}
