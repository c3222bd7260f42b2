package invoices

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	cases := map[string]string{
		"0":          "Zero Rupees Only",
		"1":          "One Rupees Only",
		"0.75":       "Seventy Five Paise Only",
		"1234.50":    "One Thousand Two Hundred Thirty Four Rupees and Fifty Paise Only",
		"150000":     "One Lakh Fifty Thousand Rupees Only",
		"12345678":   "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight Rupees Only",
		"1000000000": "One Hundred Crore Rupees Only",
		"11.999":     "Twelve Rupees Only",
		"-20":        "Minus Twenty Rupees Only",
	}
	for in, want := range cases {
		assert.Equal(t, want, AmountInWords(decimal.RequireFromString(in)), in)
	}
}

func TestNumberToWords(t *testing.T) {
	assert.Equal(t, "Zero", NumberToWords(0))
	assert.Equal(t, "Nineteen", NumberToWords(19))
	assert.Equal(t, "Ninety", NumberToWords(90))
	assert.Equal(t, "One Hundred One", NumberToWords(101))
	assert.Equal(t, "Ninety Nine Lakh Ninety Nine Thousand Nine Hundred Ninety Nine", NumberToWords(9_999_999))
}
