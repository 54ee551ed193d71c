package batch

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"

	"github.com/efreitasn/currencyledger/internal/service"
)

// Runner registers a batch's currencies, applies its orders in input
// order and writes one result line per order.
type Runner struct {
	currencySvc *service.CurrencyService
	orderSvc    *service.OrderService
	keepGoing   bool
	logger      *slog.Logger
}

// NewRunner creates a Runner. With keepGoing set, an order that fails
// (unknown currency, invalid type, negative quantity) prints its error
// message as that order's output line instead of aborting the run.
// Currency registration failures always abort.
func NewRunner(
	currencySvc *service.CurrencyService,
	orderSvc *service.OrderService,
	keepGoing bool,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		currencySvc: currencySvc,
		orderSvc:    orderSvc,
		keepGoing:   keepGoing,
		logger:      logger,
	}
}

// RunReader parses r and runs the batch, writing results to w.
func (r *Runner) RunReader(in io.Reader, w io.Writer) error {
	input, err := Parse(in)
	if err != nil {
		return err
	}
	return r.Run(input, w)
}

// Run executes a parsed batch. Output written before an aborting error is
// flushed. Returned errors wrap the underlying domain error with the
// offending line number.
func (r *Runner) Run(in *Input, w io.Writer) (err error) {
	bw := bufio.NewWriter(w)
	defer func() {
		if ferr := bw.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("write output: %w", ferr)
		}
	}()

	for _, cl := range in.Currencies {
		_, err := r.currencySvc.Register(service.RegisterCurrencyRequest{
			ID:       cl.ID,
			BuyRate:  cl.BuyRate,
			SellRate: cl.SellRate,
		})
		if err != nil {
			return fmt.Errorf("line %d: %w", cl.Line, err)
		}
	}

	rejected := 0
	for _, ol := range in.Orders {
		order, err := r.orderSvc.SubmitOrder(service.SubmitOrderRequest{
			Type:       ol.Type,
			CurrencyID: ol.CurrencyID,
			Quantity:   ol.Quantity,
		})
		if err != nil {
			if !r.keepGoing {
				return fmt.Errorf("line %d: %w", ol.Line, err)
			}
			r.logger.Warn("order failed",
				slog.Int("line", ol.Line),
				slog.String("error", err.Error()),
			)
			if _, werr := fmt.Fprintln(bw, err.Error()); werr != nil {
				return fmt.Errorf("write output: %w", werr)
			}
			continue
		}

		if order.Result().Insufficient {
			rejected++
		}
		if _, werr := fmt.Fprintln(bw, order.Result().String()); werr != nil {
			return fmt.Errorf("write output: %w", werr)
		}
	}

	r.logger.Info("batch complete",
		slog.Int("currencies", len(in.Currencies)),
		slog.Int("orders", len(in.Orders)),
		slog.Int("insufficient_balance", rejected),
	)
	return nil
}
