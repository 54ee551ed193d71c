package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/efreitasn/currencyledger/internal/batch"
	"github.com/efreitasn/currencyledger/internal/config"
	"github.com/efreitasn/currencyledger/internal/engine"
	"github.com/efreitasn/currencyledger/internal/handler"
	"github.com/efreitasn/currencyledger/internal/service"
	"github.com/efreitasn/currencyledger/internal/store"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running server")
	batchMode := flag.Bool("batch", false, "Read a batch from stdin and write one result line per order to stdout")
	keepGoing := flag.Bool("keep-going", false, "In batch mode, print failing orders' errors instead of aborting")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to localhost:PORT/healthz, exit 0/1.
	if *healthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		resp, err := http.Get(fmt.Sprintf("http://localhost:%s/healthz", port))
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Error("failed to load .env", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Batch output owns stdout, so logs go to stderr there.
	var logOut io.Writer = os.Stdout
	if *batchMode {
		logOut = os.Stderr
	}
	logger := newLogger(logOut, cfg.LogLevel)
	slog.SetDefault(logger)

	// Stores, engine, services.
	currencyStore := store.NewCurrencyStore()
	orderStore := store.NewOrderStore()
	eng := engine.New()

	currencySvc := service.NewCurrencyService(currencyStore, logger)
	orderSvc := service.NewOrderService(eng, currencyStore, orderStore, cfg.MaxOrders, logger)

	if path := seedPath(cfg, *batchMode); path != "" {
		if err := seedCurrencies(currencySvc, path); err != nil {
			logger.Error("failed to seed currencies", slog.String("file", path), slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else if *batchMode && cfg.SeedFile != "" {
		logger.Debug("seed file ignored in batch mode", slog.String("file", cfg.SeedFile))
	}

	if *batchMode {
		runner := batch.NewRunner(currencySvc, orderSvc, *keepGoing, logger)
		if err := runner.RunReader(os.Stdin, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	router := handler.NewRouter(currencySvc, orderSvc, logger)

	// Configure HTTP server.
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start HTTP server in a goroutine.
	go func() {
		logger.Info("server starting", slog.String("addr", addr), slog.Int("max_orders", cfg.MaxOrders))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("server stopped", slog.Int("orders", orderStore.Count()))
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// seedPath returns the seed file to load at startup. Batch input carries
// its own currency section, so nothing is seeded in batch mode.
func seedPath(cfg *config.Config, batchMode bool) string {
	if batchMode {
		return ""
	}
	return cfg.SeedFile
}

func seedCurrencies(svc *service.CurrencyService, path string) error {
	entries, err := config.LoadSeed(path)
	if err != nil {
		return err
	}

	reqs := make([]service.RegisterCurrencyRequest, len(entries))
	for i, e := range entries {
		reqs[i] = service.RegisterCurrencyRequest{ID: e.ID, BuyRate: e.BuyRate, SellRate: e.SellRate}
	}

	n, err := svc.Seed(reqs)
	if err != nil {
		return err
	}
	slog.Info("currencies seeded", slog.Int("count", n))
	return nil
}
