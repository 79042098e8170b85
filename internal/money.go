package internal

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of fraction digits amounts are kept and shown with.
const AmountPlaces = 2

var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount parses a user-typed amount. Both dot (12.34) and comma (12,34)
// are accepted as decimal separator. The result is rounded half-up to
// AmountPlaces and must be positive.
//
// Examples:
//
//	ParseAmount("12,34")  -> 12.34
//	ParseAmount("12.345") -> 12.35
//	ParseAmount("0")      -> ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	d = d.Round(AmountPlaces)
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FixedAmount renders an amount with exactly AmountPlaces fraction digits
// and a dot separator, e.g. "1500.00".
func FixedAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountPlaces)
}
