package invoices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/billing/internal/shared"
)

func TestNextInvoiceNumber(t *testing.T) {
	cases := []struct {
		last string
		ok   bool
		want string
	}{
		{"", false, "INV-0001"},
		{"INV-0001", true, "INV-0002"},
		{"INV-0042", true, "INV-0043"},
		{"INV-0999", true, "INV-1000"},
		{"INV-9999", true, "INV-10000"},
		{"INV-10000", true, "INV-10001"},
		{"INV-2024-0007", true, "INV-0008"},
		{"CUSTOM-12", true, "INV-0013"},
		{"INV-9223372036854775806", true, "INV-9223372036854775807"},
	}
	for _, tc := range cases {
		got, err := NextInvoiceNumber(tc.last, tc.ok)
		require.NoError(t, err, tc.last)
		assert.Equal(t, tc.want, got, tc.last)
	}
}

func TestNextInvoiceNumberMalformed(t *testing.T) {
	for _, last := range []string{"ABC", "INV-", "INV-00A1", "2024/17", "INV-9223372036854775807", "INV-9223372036854775808"} {
		_, err := NextInvoiceNumber(last, true)
		require.ErrorIs(t, err, ErrMalformedInvoiceNumber, last)
		require.ErrorIs(t, err, shared.ErrUnprocessable, last)
	}
}
