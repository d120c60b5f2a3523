package khqr_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Xausdorf/khqr-offline/internal/domain/khqr"
)

func TestAmountInRange(t *testing.T) {
	for _, ok := range []string{"1", "0.01", "1e2", "1234567890123", "0.0000000000001"} {
		assert.True(t, khqr.AmountInRange(decimal.RequireFromString(ok)), ok)
	}
	for _, bad := range []string{"12345678901234", "1e13", "1e100000000", "1e-14", "1e-100000000"} {
		assert.False(t, khqr.AmountInRange(decimal.RequireFromString(bad)), bad)
	}
}
