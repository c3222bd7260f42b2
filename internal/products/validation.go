package products

import (
	"strings"

	"github.com/odyssey-erp/billing/internal/shared"
)

func (s *Service) validate(f ProductForm) error {
	if err := shared.Validate(f); err != nil {
		return err
	}
	if strings.TrimSpace(f.Name) == "" {
		return &shared.Error{Kind: shared.ErrValidation, Message: "name is required", Fields: map[string]string{"name": "required"}}
	}
	return shared.CheckNumeric(
		shared.NumericField{Name: "unit_price", Value: f.UnitPrice, Column: shared.MoneyColumn},
		shared.NumericField{Name: "tax_rate", Value: f.TaxRate, Column: shared.RateColumn},
	)
}
