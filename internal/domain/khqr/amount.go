package khqr

import "github.com/shopspring/decimal"

// MaxAmountLength is the longest amount text a payload can carry.
const MaxAmountLength = 13

// AmountInRange reports whether d has at most MaxAmountLength integer digits
// and at most MaxAmountLength fraction digits. It only inspects the
// coefficient and exponent, so it is safe on literals like "1e100000000".
func AmountInRange(d decimal.Decimal) bool {
	exp := int(d.Exponent())
	return d.NumDigits()+exp <= MaxAmountLength && exp >= -MaxAmountLength
}
