package invoices

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DefaultStatus is assigned when an invoice is created without a status.
	DefaultStatus = "unpaid"

	dateLayout = "2006-01-02"
)

// Invoice is an invoice header. Totals are stored exactly as submitted.
type Invoice struct {
	ID              int64           `json:"id"`
	InvoiceNumber   string          `json:"invoice_number"`
	ClientID        *int64          `json:"client_id"`
	InvoiceDate     string          `json:"invoice_date"`
	DueDate         *string         `json:"due_date"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	TotalTax        decimal.Decimal `json:"total_tax"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	Status          string          `json:"status"`
	ModeOfTransport string          `json:"mode_of_transport"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Summary is an invoice row paired with its client's name. ClientName is nil
// when the invoice has no client or the client was deleted.
type Summary struct {
	Invoice
	ClientName *string `json:"client_name"`
}

// Detail is an invoice with the client columns needed to print it.
type Detail struct {
	Invoice
	ClientName    *string `json:"client_name"`
	ClientEmail   *string `json:"client_email"`
	ClientPhone   *string `json:"client_phone"`
	ClientAddress *string `json:"client_address"`
	ClientCity    *string `json:"client_city"`
	ClientState   *string `json:"client_state"`
	ClientPincode *string `json:"client_pincode"`
	ClientGSTIN   *string `json:"client_gstin"`
}

// Item is one invoice line. ProductID is nil for free-text lines.
type Item struct {
	ID          int64           `json:"id"`
	InvoiceID   int64           `json:"invoice_id"`
	ProductID   *int64          `json:"product_id"`
	Description string          `json:"description"`
	HSNCode     string          `json:"hsn_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// Created is the result of a successful creation.
type Created struct {
	ID            int64  `json:"id"`
	InvoiceNumber string `json:"invoice_number"`
}
