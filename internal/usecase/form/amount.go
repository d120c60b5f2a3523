package form

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Xausdorf/khqr-offline/internal/domain/khqr"
)

var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount accepts a decimal literal strictly greater than zero whose
// digits fit a payload amount.
func ParseAmount(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(text)
	if err != nil || !d.IsPositive() || !khqr.AmountInRange(d) {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
