package products

import "github.com/shopspring/decimal"

// DefaultTaxRate applies when a product is saved without a tax rate.
var DefaultTaxRate = decimal.NewFromInt(18)

// ProductForm is the create/update payload. Absent optional fields take their
// defaults on both create and update.
type ProductForm struct {
	Name          string           `json:"name" validate:"required"`
	Description   string           `json:"description"`
	HSNCode       string           `json:"hsn_code"`
	UnitPrice     *decimal.Decimal `json:"unit_price" validate:"required"`
	StockQuantity *int64           `json:"stock_quantity"`
	TaxRate       *decimal.Decimal `json:"tax_rate"`
	Category      string           `json:"category"`
}

func (f ProductForm) toProduct() Product {
	p := Product{
		Name:        f.Name,
		Description: f.Description,
		HSNCode:     f.HSNCode,
		TaxRate:     DefaultTaxRate,
		Category:    f.Category,
	}
	if f.UnitPrice != nil {
		p.UnitPrice = *f.UnitPrice
	}
	if f.StockQuantity != nil {
		p.StockQuantity = *f.StockQuantity
	}
	if f.TaxRate != nil {
		p.TaxRate = *f.TaxRate
	}
	return p
}
