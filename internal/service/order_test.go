package service

import (
	"errors"
	"testing"

	"github.com/efreitasn/currencyledger/internal/domain"
)

func TestSubmitOrder_Scenarios(t *testing.T) {
	env := newTestEnv(0)
	env.register(t, 1, 10, 5)
	env.register(t, 2, 20, 10)
	env.register(t, 3, 15, 7)

	steps := []struct {
		typ  string
		id   int64
		qty  int64
		want string
	}{
		{"Buy", 1, 10, "100"},
		{"Sell", 2, 5, "50"},
		{"Sell", 3, 10, "70"},
		{"Buy", 3, 5, "Insufficient balance"},
		{"Buy", 3, 12, "180"},
	}
	for i, s := range steps {
		if got := env.submit(t, s.typ, s.id, s.qty); got != s.want {
			t.Errorf("step %d (%s %d %d) = %q, want %q", i, s.typ, s.id, s.qty, got, s.want)
		}
	}

	wantBalances := map[int64]int64{1: 10, 2: -5, 3: 2}
	for id, want := range wantBalances {
		v, _ := env.currencySvc.Get(id)
		if v.Balance != want {
			t.Errorf("currency %d balance = %d, want %d", id, v.Balance, want)
		}
	}
}

func TestSubmitOrder_JournalsOrder(t *testing.T) {
	env := newTestEnv(0)
	env.register(t, 3, 15, 7)

	sell, err := env.orderSvc.SubmitOrder(SubmitOrderRequest{Type: "Sell", CurrencyID: 3, Quantity: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sell.OrderID == "" {
		t.Error("expected order_id to be assigned")
	}
	if sell.Status != domain.OrderStatusExecuted || sell.Total != 70 || sell.BalanceAfter != -10 {
		t.Errorf("got %+v", sell)
	}

	buy, err := env.orderSvc.SubmitOrder(SubmitOrderRequest{Type: "Buy", CurrencyID: 3, Quantity: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buy.Status != domain.OrderStatusInsufficientBalance || buy.Total != 0 || buy.BalanceAfter != -10 {
		t.Errorf("got %+v", buy)
	}

	got, err := env.orderSvc.GetOrder(buy.OrderID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if got != buy {
		t.Error("GetOrder returned a different order")
	}
	if env.orders.Count() != 2 {
		t.Errorf("journal count = %d, want 2", env.orders.Count())
	}
}

func TestSubmitOrder_UnknownCurrency(t *testing.T) {
	env := newTestEnv(0)

	for _, typ := range []string{"Buy", "Sell"} {
		_, err := env.orderSvc.SubmitOrder(SubmitOrderRequest{Type: typ, CurrencyID: 99, Quantity: 1})
		if !errors.Is(err, domain.ErrCurrencyNotFound) {
			t.Errorf("%s: expected ErrCurrencyNotFound, got %v", typ, err)
		}
		if err != nil && err.Error() != "currency 99: currency_not_found" {
			t.Errorf("%s: error = %q, want the missing id named", typ, err.Error())
		}
	}
	if _, err := env.orderSvc.Quote(SubmitOrderRequest{Type: "Buy", CurrencyID: 42, Quantity: 1}); err == nil || err.Error() != "currency 42: currency_not_found" {
		t.Errorf("quote error = %v, want the missing id named", err)
	}
	if env.orders.Count() != 0 {
		t.Errorf("failed orders must not be journaled, got %d", env.orders.Count())
	}
}

func TestSubmitOrder_InvalidType(t *testing.T) {
	env := newTestEnv(0)
	env.register(t, 1, 10, 5)

	_, err := env.orderSvc.SubmitOrder(SubmitOrderRequest{Type: "buy", CurrencyID: 1, Quantity: 1})
	if !errors.Is(err, domain.ErrInvalidOrderType) {
		t.Fatalf("expected ErrInvalidOrderType, got %v", err)
	}
	v, _ := env.currencySvc.Get(1)
	if v.Balance != 0 {
		t.Errorf("balance = %d, want 0", v.Balance)
	}
}

func TestSubmitOrder_ValidationErrors(t *testing.T) {
	env := newTestEnv(0)
	env.register(t, 1, 10, 5)

	tests := []struct {
		name string
		req  SubmitOrderRequest
	}{
		{"negative quantity", SubmitOrderRequest{Type: "Buy", CurrencyID: 1, Quantity: -1}},
		{"quantity too large", SubmitOrderRequest{Type: "Sell", CurrencyID: 1, Quantity: 1_000_000_001}},
		{"quantity too small", SubmitOrderRequest{Type: "Sell", CurrencyID: 1, Quantity: -1_000_000_001}},
		{"currency id zero", SubmitOrderRequest{Type: "Sell", CurrencyID: 0, Quantity: 1}},
		{"currency id too large", SubmitOrderRequest{Type: "Sell", CurrencyID: 100_001, Quantity: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.orderSvc.SubmitOrder(tt.req)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestSubmitOrder_OrderLimit(t *testing.T) {
	env := newTestEnv(3)
	env.register(t, 1, 10, 5)

	for i := 0; i < 3; i++ {
		env.submit(t, "Sell", 1, 1)
	}
	_, err := env.orderSvc.SubmitOrder(SubmitOrderRequest{Type: "Sell", CurrencyID: 1, Quantity: 1})
	if !errors.Is(err, domain.ErrOrderLimitReached) {
		t.Fatalf("expected ErrOrderLimitReached, got %v", err)
	}
	v, _ := env.currencySvc.Get(1)
	if v.Balance != -3 {
		t.Errorf("balance = %d, want -3", v.Balance)
	}
}

func TestQuote_DoesNotApply(t *testing.T) {
	env := newTestEnv(0)
	env.register(t, 3, 15, 7)
	env.submit(t, "Sell", 3, 10)

	q, err := env.orderSvc.Quote(SubmitOrderRequest{Type: "Buy", CurrencyID: 3, Quantity: 12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Result.Total != 180 || q.BalanceAfter != 2 {
		t.Errorf("got %+v", q)
	}

	q, _ = env.orderSvc.Quote(SubmitOrderRequest{Type: "Buy", CurrencyID: 3, Quantity: 5})
	if !q.Result.Insufficient || q.BalanceAfter != -10 {
		t.Errorf("got %+v", q)
	}

	v, _ := env.currencySvc.Get(3)
	if v.Balance != -10 {
		t.Errorf("balance = %d, want -10", v.Balance)
	}
	if env.orders.Count() != 1 {
		t.Errorf("quotes must not be journaled, count = %d", env.orders.Count())
	}
}

func TestListOrders(t *testing.T) {
	env := newTestEnv(0)
	env.register(t, 1, 10, 5)
	env.register(t, 2, 20, 10)

	env.submit(t, "Buy", 1, 1)
	env.submit(t, "Sell", 2, 1)
	env.submit(t, "Buy", 1, 2)

	orders, total, err := env.orderSvc.ListOrders(nil, 1, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 || len(orders) != 3 {
		t.Fatalf("got %d orders (total %d), want 3", len(orders), total)
	}
	if orders[0].Quantity != 2 {
		t.Errorf("expected newest order first, got quantity %d", orders[0].Quantity)
	}

	id := int64(1)
	orders, total, err = env.orderSvc.ListOrders(&id, 1, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("got %d orders (total %d), want 2", len(orders), total)
	}

	unknown := int64(50)
	if _, _, err := env.orderSvc.ListOrders(&unknown, 1, 20); !errors.Is(err, domain.ErrCurrencyNotFound) {
		t.Errorf("expected ErrCurrencyNotFound, got %v", err)
	}
}

func TestListOrders_InvalidPagination(t *testing.T) {
	env := newTestEnv(0)

	for _, p := range []struct{ page, limit int }{{0, 20}, {1, 0}, {1, 101}} {
		_, _, err := env.orderSvc.ListOrders(nil, p.page, p.limit)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("page=%d limit=%d: expected ValidationError, got %v", p.page, p.limit, err)
		}
	}
}
