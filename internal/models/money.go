package models

import "github.com/shopspring/decimal"

// AmountScale is the number of decimal places stored for prices, commissions and dimensions
const AmountScale = 4

const (
	amountIntDigits = 16
	minExponent     = -64
)

// ValidAmount reports whether d is stored as NUMERIC(20,4) without rounding or overflow.
// The exponent is checked first so oversized inputs never reach a rescaling comparison.
func ValidAmount(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp > amountIntDigits || exp < minExponent {
		return false
	}
	if exp < -AmountScale && !d.Equal(d.Truncate(AmountScale)) {
		return false
	}
	return d.NumDigits()+int(exp) <= amountIntDigits
}
