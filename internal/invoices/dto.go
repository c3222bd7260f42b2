package invoices

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/billing/internal/shared"
)

// CreateRequest is the body of POST /api/invoices.
type CreateRequest struct {
	InvoiceNumber   string           `json:"invoice_number"`
	ClientID        *int64           `json:"client_id" validate:"required"`
	InvoiceDate     string           `json:"invoice_date" validate:"required,datetime=2006-01-02"`
	DueDate         *string          `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Subtotal        *decimal.Decimal `json:"subtotal" validate:"required"`
	TotalTax        *decimal.Decimal `json:"total_tax" validate:"required"`
	GrandTotal      *decimal.Decimal `json:"grand_total" validate:"required"`
	Status          string           `json:"status"`
	ModeOfTransport string           `json:"mode_of_transport"`
	Notes           string           `json:"notes"`
	Items           []ItemRequest    `json:"items" validate:"required,min=1,dive"`
}

// ItemRequest is one line of CreateRequest.
type ItemRequest struct {
	ProductID   *int64           `json:"product_id"`
	Description string           `json:"description" validate:"required"`
	HSNCode     string           `json:"hsn_code"`
	Quantity    *decimal.Decimal `json:"quantity" validate:"required"`
	Rate        *decimal.Decimal `json:"rate" validate:"required"`
	TaxRate     *decimal.Decimal `json:"tax_rate" validate:"required"`
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
}

// header converts the validated request into the row to insert. An empty
// invoice number is resolved later, inside the creation transaction.
func (req CreateRequest) header() Invoice {
	inv := Invoice{
		InvoiceNumber:   req.InvoiceNumber,
		ClientID:        req.ClientID,
		InvoiceDate:     req.InvoiceDate,
		DueDate:         req.DueDate,
		Subtotal:        *req.Subtotal,
		TotalTax:        *req.TotalTax,
		GrandTotal:      *req.GrandTotal,
		Status:          req.Status,
		ModeOfTransport: req.ModeOfTransport,
		Notes:           req.Notes,
	}
	if inv.Status == "" {
		inv.Status = DefaultStatus
	}
	return inv
}

// normalize treats a blank due_date as absent, so it is neither validated as
// a date nor stored.
func (req *CreateRequest) normalize() {
	if req.DueDate != nil && strings.TrimSpace(*req.DueDate) == "" {
		req.DueDate = nil
	}
}

// checkRange rejects values the NUMERIC columns cannot hold. Extra decimals
// are rounded on insert.
func (req CreateRequest) checkRange() error {
	fields := []shared.NumericField{
		{Name: "subtotal", Value: req.Subtotal, Column: shared.MoneyColumn},
		{Name: "total_tax", Value: req.TotalTax, Column: shared.MoneyColumn},
		{Name: "grand_total", Value: req.GrandTotal, Column: shared.MoneyColumn},
	}
	for i, it := range req.Items {
		p := fmt.Sprintf("items[%d].", i)
		fields = append(fields,
			shared.NumericField{Name: p + "quantity", Value: it.Quantity, Column: shared.QuantityColumn},
			shared.NumericField{Name: p + "rate", Value: it.Rate, Column: shared.MoneyColumn},
			shared.NumericField{Name: p + "tax_rate", Value: it.TaxRate, Column: shared.RateColumn},
			shared.NumericField{Name: p + "amount", Value: it.Amount, Column: shared.MoneyColumn},
		)
	}
	return shared.CheckNumeric(fields...)
}

func (r ItemRequest) item(invoiceID int64) Item {
	return Item{
		InvoiceID:   invoiceID,
		ProductID:   r.ProductID,
		Description: r.Description,
		HSNCode:     r.HSNCode,
		Quantity:    *r.Quantity,
		Rate:        *r.Rate,
		TaxRate:     *r.TaxRate,
		Amount:      *r.Amount,
	}
}

// CalculateRequest is the body of POST /api/invoices/calculate.
type CalculateRequest struct {
	Items []CalculateItem `json:"items" validate:"required,min=1,dive"`
}

type CalculateItem struct {
	Quantity *decimal.Decimal `json:"quantity" validate:"required"`
	Rate     *decimal.Decimal `json:"rate" validate:"required"`
	TaxRate  *decimal.Decimal `json:"tax_rate" validate:"required"`
}
