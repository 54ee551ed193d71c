package store

import (
	"sync"
	"testing"

	"github.com/efreitasn/currencyledger/internal/domain"
)

func newTestCurrency(t *testing.T, id int64) *domain.Currency {
	t.Helper()
	c, err := domain.NewCurrency(id, 10, 5)
	if err != nil {
		t.Fatalf("NewCurrency(%d): %v", id, err)
	}
	return c
}

func TestCurrencyStore_Register(t *testing.T) {
	s := NewCurrencyStore()
	c := newTestCurrency(t, 1)

	if err := s.Register(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Duplicate should fail and keep the first registration.
	dup, _ := domain.NewCurrency(1, 99, 1)
	if err := s.Register(dup); err != domain.ErrCurrencyAlreadyExists {
		t.Fatalf("expected ErrCurrencyAlreadyExists, got %v", err)
	}
	got, _ := s.Get(1)
	if got.BuyRate != 10 {
		t.Fatalf("duplicate register overwrote entry: buy rate %d", got.BuyRate)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 currency, got %d", s.Len())
	}
}

func TestCurrencyStore_Get(t *testing.T) {
	s := NewCurrencyStore()
	_ = s.Register(newTestCurrency(t, 7))

	got, err := s.Get(7)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.ID != 7 {
		t.Fatalf("expected id 7, got %d", got.ID)
	}

	_, err = s.Get(99)
	if err != domain.ErrCurrencyNotFound {
		t.Fatalf("expected ErrCurrencyNotFound, got %v", err)
	}
}

func TestCurrencyStore_GetReturnsSharedRecord(t *testing.T) {
	s := NewCurrencyStore()
	_ = s.Register(newTestCurrency(t, 3))

	a, _ := s.Get(3)
	a.Balance = -10

	b, _ := s.Get(3)
	if b.Balance != -10 {
		t.Fatalf("expected balance mutation to be visible, got %d", b.Balance)
	}
}

func TestCurrencyStore_Exists(t *testing.T) {
	s := NewCurrencyStore()
	_ = s.Register(newTestCurrency(t, 1))

	if !s.Exists(1) {
		t.Fatal("expected currency 1 to exist")
	}
	if s.Exists(2) {
		t.Fatal("expected currency 2 to not exist")
	}
}

func TestCurrencyStore_List_AscendingByID(t *testing.T) {
	s := NewCurrencyStore()
	for _, id := range []int64{42, 3, 100000, 1, 17} {
		_ = s.Register(newTestCurrency(t, id))
	}

	list := s.List()
	want := []int64{1, 3, 17, 42, 100000}
	if len(list) != len(want) {
		t.Fatalf("expected %d currencies, got %d", len(want), len(list))
	}
	for i, c := range list {
		if c.ID != want[i] {
			t.Fatalf("index %d: expected id %d, got %d", i, want[i], c.ID)
		}
	}
}

func TestCurrencyStore_List_Empty(t *testing.T) {
	s := NewCurrencyStore()
	if list := s.List(); len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
}

func TestCurrencyStore_ConcurrentAccess(t *testing.T) {
	s := NewCurrencyStore()
	var wg sync.WaitGroup

	for i := int64(1); i <= 100; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			c, _ := domain.NewCurrency(id, 10, 5)
			_ = s.Register(c)
		}(i)
	}
	wg.Wait()

	for i := int64(1); i <= 100; i++ {
		if !s.Exists(i) {
			t.Fatalf("currency %d should exist", i)
		}
	}

	// Concurrent reads while registering more.
	for i := int64(101); i <= 200; i++ {
		wg.Add(2)
		go func(id int64) {
			defer wg.Done()
			c, _ := domain.NewCurrency(id, 10, 5)
			_ = s.Register(c)
		}(i)
		go func() {
			defer wg.Done()
			_ = s.List()
		}()
	}
	wg.Wait()

	if s.Len() != 200 {
		t.Fatalf("expected 200 currencies, got %d", s.Len())
	}
}
