package shared

import "github.com/shopspring/decimal"

func init() {
	// Money travels as JSON numbers, matching what API clients send.
	decimal.MarshalJSONWithoutQuotes = true
}

// Hundred is the divisor for percentage rates.
var Hundred = decimal.NewFromInt(100)

// Numeric describes a NUMERIC(precision, scale) column.
type Numeric struct {
	Precision int32
	Scale     int32
}

var (
	// MoneyColumn matches the NUMERIC(14,2) amount columns.
	MoneyColumn = Numeric{Precision: 14, Scale: 2}
	// QuantityColumn matches invoice_items.quantity.
	QuantityColumn = Numeric{Precision: 12, Scale: 3}
	// RateColumn matches the NUMERIC(5,2) tax rate columns.
	RateColumn = Numeric{Precision: 5, Scale: 2}
)

// Fits reports whether d, once rounded to the column scale, is storable.
func (n Numeric) Fits(d decimal.Decimal) bool {
	limit := decimal.New(1, n.Precision-n.Scale)
	return d.Round(n.Scale).Abs().LessThan(limit)
}

// NumericField names a value bound for a numeric column. A nil Value is skipped.
type NumericField struct {
	Name   string
	Value  *decimal.Decimal
	Column Numeric
}

// CheckNumeric returns a validation Error for every field whose value would
// overflow its column.
func CheckNumeric(fields ...NumericField) error {
	var out *Error
	for _, f := range fields {
		if f.Value == nil || f.Column.Fits(*f.Value) {
			continue
		}
		if out == nil {
			out = &Error{Kind: ErrValidation, Message: f.Name + " is out of range", Fields: map[string]string{}}
		}
		out.Fields[f.Name] = "range"
	}
	if out == nil {
		return nil
	}
	return out
}
