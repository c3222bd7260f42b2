package invoices

import (
	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/billing/internal/shared"
)

// LineTotals is the computed value of one CalculateItem.
type LineTotals struct {
	Quantity decimal.Decimal `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	TaxRate  decimal.Decimal `json:"tax_rate"`
	Total    decimal.Decimal `json:"total"`
	Tax      decimal.Decimal `json:"tax"`
}

// Totals is the preview returned by Calculate.
type Totals struct {
	Items      []LineTotals    `json:"items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	TotalTax   decimal.Decimal `json:"total_tax"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// Calculate computes line totals (quantity × rate), line tax (total × rate /
// 100) and the invoice sums. Nothing is rounded or stored; the result only
// helps a client fill in a CreateRequest.
func Calculate(req CalculateRequest) (Totals, error) {
	if len(req.Items) == 0 {
		return Totals{}, shared.NewError(shared.ErrValidation, "At least one item is required")
	}
	if err := shared.Validate(req); err != nil {
		return Totals{}, err
	}
	out := Totals{Items: make([]LineTotals, 0, len(req.Items))}
	for _, it := range req.Items {
		total := it.Quantity.Mul(*it.Rate)
		tax := total.Mul(*it.TaxRate).Div(shared.Hundred)
		out.Items = append(out.Items, LineTotals{
			Quantity: *it.Quantity,
			Rate:     *it.Rate,
			TaxRate:  *it.TaxRate,
			Total:    total,
			Tax:      tax,
		})
		out.Subtotal = out.Subtotal.Add(total)
		out.TotalTax = out.TotalTax.Add(tax)
	}
	out.GrandTotal = out.Subtotal.Add(out.TotalTax)
	return out, nil
}
