package khqr

import (
	"fmt"
	"strings"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyKHR Currency = "KHR"
)

// NumericCode returns the ISO 4217 numeric code carried in tag 53.
func (c Currency) NumericCode() string {
	switch c {
	case CurrencyUSD:
		return "840"
	case CurrencyKHR:
		return "116"
	default:
		return ""
	}
}

// Places is the number of fraction digits allowed in an amount.
func (c Currency) Places() int32 {
	if c == CurrencyKHR {
		return 0
	}
	return 2
}

func (c Currency) Valid() bool {
	return c.NumericCode() != ""
}

func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if c == "" {
		return CurrencyUSD, nil
	}
	if !c.Valid() {
		return "", fmt.Errorf("unsupported currency %q", s)
	}
	return c, nil
}
