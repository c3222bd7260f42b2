package invoices

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/odyssey-erp/billing/internal/shared"
)

// FirstInvoiceNumber is issued when no invoice exists yet.
const FirstInvoiceNumber = "INV-0001"

// ErrMalformedInvoiceNumber means the latest stored number has no integer
// after its last "-", or one with no int64 successor, so the next one cannot be derived. Callers must supply
// invoice_number explicitly until a conforming number is stored again.
var ErrMalformedInvoiceNumber = shared.NewError(shared.ErrUnprocessable,
	"cannot derive the next invoice number from the latest one; supply invoice_number explicitly")

// NextInvoiceNumber derives the number following last. ok is false when no
// invoice exists yet. The numeric part is zero-padded to four digits and grows
// past four when needed.
func NextInvoiceNumber(last string, ok bool) (string, error) {
	if !ok {
		return FirstInvoiceNumber, nil
	}
	idx := strings.LastIndex(last, "-")
	if idx < 0 {
		return "", fmt.Errorf("next invoice number after %q: %w", last, ErrMalformedInvoiceNumber)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(last[idx+1:]), 10, 64)
	if err != nil || n < 0 || n == math.MaxInt64 {
		return "", fmt.Errorf("next invoice number after %q: %w", last, ErrMalformedInvoiceNumber)
	}
	return fmt.Sprintf("INV-%04d", n+1), nil
}
