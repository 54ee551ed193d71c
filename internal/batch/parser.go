package batch

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/efreitasn/currencyledger/internal/domain"
)

// CurrencyLine is one `id buyRate sellRate` line of the setup section.
type CurrencyLine struct {
	Line     int
	ID       int64
	BuyRate  int64
	SellRate int64
}

// OrderLine is one `Buy|Sell id quantity` line of the query section. Type
// is kept in wire form; it is parsed by the order service.
type OrderLine struct {
	Line       int
	Type       string
	CurrencyID int64
	Quantity   int64
}

// Input is a fully parsed batch.
type Input struct {
	Currencies []CurrencyLine
	Orders     []OrderLine
}

// LineError reports a malformed input line. Line is 1-based; 0 means the
// input ended early.
type LineError struct {
	Line    int
	Message string
}

func (e *LineError) Error() string {
	if e.Line == 0 {
		return "unexpected end of input: " + e.Message
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// lineReader yields non-blank trimmed lines with their line numbers.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func (r *lineReader) next() (string, int, bool) {
	for r.sc.Scan() {
		r.line++
		text := strings.TrimSpace(r.sc.Text())
		if text != "" {
			return text, r.line, true
		}
	}
	return "", 0, false
}

// Parse reads a batch: a currency count n, n currency lines, an order
// count q (1 <= q <= domain.MaxOrders) and q order lines. Order lines are
// bounds checked here. Currency lines are only checked for shape; their
// ranges, rate ordering and duplicate ids are left to currency registration
// so they surface as domain errors.
func Parse(r io.Reader) (*Input, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lr := &lineReader{sc: sc}

	n, err := readCount(lr, "currency count", 0, int(domain.MaxCurrencyID))
	if err != nil {
		return nil, err
	}

	in := &Input{Currencies: make([]CurrencyLine, 0, n)}
	for i := 0; i < n; i++ {
		text, line, ok := lr.next()
		if !ok {
			return nil, endOfInput(sc, fmt.Sprintf("expected %d currency lines, got %d", n, i))
		}
		cl, err := parseCurrencyLine(text, line)
		if err != nil {
			return nil, err
		}
		in.Currencies = append(in.Currencies, cl)
	}

	q, err := readCount(lr, "order count", 1, domain.MaxOrders)
	if err != nil {
		return nil, err
	}

	in.Orders = make([]OrderLine, 0, q)
	for i := 0; i < q; i++ {
		text, line, ok := lr.next()
		if !ok {
			return nil, endOfInput(sc, fmt.Sprintf("expected %d order lines, got %d", q, i))
		}
		ol, err := parseOrderLine(text, line)
		if err != nil {
			return nil, err
		}
		in.Orders = append(in.Orders, ol)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return in, nil
}

func readCount(lr *lineReader, what string, min, max int) (int, error) {
	text, line, ok := lr.next()
	if !ok {
		return 0, endOfInput(lr.sc, "missing "+what)
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, &LineError{Line: line, Message: fmt.Sprintf("%s must be an integer, got %q", what, text)}
	}
	if v < min || v > max {
		return 0, &LineError{Line: line, Message: fmt.Sprintf("%s must be in [%d, %d], got %d", what, min, max, v)}
	}
	return v, nil
}

func parseCurrencyLine(text string, line int) (CurrencyLine, error) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return CurrencyLine{}, &LineError{Line: line, Message: fmt.Sprintf("currency line needs 3 fields, got %d", len(fields))}
	}
	nums, err := parseInts(fields, line)
	if err != nil {
		return CurrencyLine{}, err
	}

	return CurrencyLine{Line: line, ID: nums[0], BuyRate: nums[1], SellRate: nums[2]}, nil
}

func parseOrderLine(text string, line int) (OrderLine, error) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return OrderLine{}, &LineError{Line: line, Message: fmt.Sprintf("order line needs 3 fields, got %d", len(fields))}
	}
	nums, err := parseInts(fields[1:], line)
	if err != nil {
		return OrderLine{}, err
	}

	ol := OrderLine{Line: line, Type: fields[0], CurrencyID: nums[0], Quantity: nums[1]}
	if !domain.ValidCurrencyID(ol.CurrencyID) {
		return OrderLine{}, &LineError{Line: line, Message: fmt.Sprintf("invalid currency id %d", ol.CurrencyID)}
	}
	if !domain.ValidQuantity(ol.Quantity) {
		return OrderLine{}, &LineError{Line: line, Message: fmt.Sprintf("invalid quantity %d", ol.Quantity)}
	}
	return ol, nil
}

func parseInts(fields []string, line int) ([]int64, error) {
	nums := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, &LineError{Line: line, Message: fmt.Sprintf("%q is not an integer", f)}
		}
		nums[i] = v
	}
	return nums, nil
}

func endOfInput(sc *bufio.Scanner, msg string) error {
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return &LineError{Message: msg}
}
