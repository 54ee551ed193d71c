package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/efreitasn/currencyledger/internal/batch"
	"github.com/efreitasn/currencyledger/internal/config"
	"github.com/efreitasn/currencyledger/internal/engine"
	"github.com/efreitasn/currencyledger/internal/service"
	"github.com/efreitasn/currencyledger/internal/store"
)

func TestSeedPath(t *testing.T) {
	cfg := &config.Config{SeedFile: "currencies.yaml"}

	if got := seedPath(cfg, false); got != "currencies.yaml" {
		t.Errorf("server mode: seedPath = %q, want %q", got, "currencies.yaml")
	}
	if got := seedPath(cfg, true); got != "" {
		t.Errorf("batch mode: seedPath = %q, want empty", got)
	}
	if got := seedPath(&config.Config{}, false); got != "" {
		t.Errorf("no seed file: seedPath = %q, want empty", got)
	}
}

func TestBatchIgnoresSeedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	seed := "currencies:\n  - id: 1\n    buy_rate: 10\n    sell_rate: 5\n"
	if err := os.WriteFile(path, []byte(seed), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	cfg := &config.Config{SeedFile: path}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cs := store.NewCurrencyStore()
	currencySvc := service.NewCurrencyService(cs, logger)
	orderSvc := service.NewOrderService(engine.New(), cs, store.NewOrderStore(), 0, logger)

	if p := seedPath(cfg, true); p != "" {
		if err := seedCurrencies(currencySvc, p); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	var out bytes.Buffer
	runner := batch.NewRunner(currencySvc, orderSvc, false, logger)
	if err := runner.RunReader(strings.NewReader("1\n1 10 5\n1\nBuy 1 10\n"), &out); err != nil {
		t.Fatalf("batch registering a seeded id failed: %v", err)
	}
	if out.String() != "100\n" {
		t.Errorf("output = %q, want %q", out.String(), "100\n")
	}
}

func TestSeedCurrencies(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	seed := "currencies:\n  - id: 2\n    buy_rate: 20\n    sell_rate: 10\n  - id: 1\n    buy_rate: 10\n    sell_rate: 5\n"
	if err := os.WriteFile(path, []byte(seed), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	currencySvc := service.NewCurrencyService(store.NewCurrencyStore(), logger)

	if err := seedCurrencies(currencySvc, path); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if got := len(currencySvc.List()); got != 2 {
		t.Errorf("seeded %d currencies, want 2", got)
	}
}
