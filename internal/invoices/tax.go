package invoices

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TaxSplit is how an invoice's total tax is presented: CGST and SGST halves
// for a sale within one state, IGST otherwise.
type TaxSplit struct {
	Intrastate bool
	CGST       decimal.Decimal
	SGST       decimal.Decimal
	IGST       decimal.Decimal
}

var two = decimal.NewFromInt(2)

// SplitGST splits totalTax by supply type. Supply is intrastate only when both
// states are known and equal ignoring case and surrounding space.
func SplitGST(totalTax decimal.Decimal, companyState, clientState string) TaxSplit {
	a, b := strings.TrimSpace(companyState), strings.TrimSpace(clientState)
	if a == "" || b == "" || !strings.EqualFold(a, b) {
		return TaxSplit{IGST: totalTax}
	}
	cgst := totalTax.DivRound(two, 2)
	return TaxSplit{Intrastate: true, CGST: cgst, SGST: totalTax.Sub(cgst)}
}
