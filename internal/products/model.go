package products

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a sellable item with its stock level.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	HSNCode       string          `json:"hsn_code"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity int64           `json:"stock_quantity"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Category      string          `json:"category"`
	CreatedAt     time.Time       `json:"created_at"`
}

// LowStockThreshold is the stock level below which a product counts as low.
const LowStockThreshold = 10

// IsLowStock reports whether the product is below LowStockThreshold.
func (p Product) IsLowStock() bool {
	return p.StockQuantity < LowStockThreshold
}
