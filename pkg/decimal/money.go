// Package decimal holds the currency helpers shared by the solver and the
// report formatters. Engine arithmetic stays on shopspring decimals; Money is
// the view used where whole cents matter.
package decimal

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount of currency. It may carry more than two decimal places;
// the rounding methods bring it to whole cents.
type Money struct {
	decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// NewMoneyFromDecimal wraps d without rounding.
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// ParseMoney reads an amount such as "489.10", "-12" or "$1200.5".
func ParseMoney(s string) (Money, error) {
	trimmed := s
	if len(trimmed) > 0 && trimmed[0] == '$' {
		trimmed = trimmed[1:]
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{d}, nil
}

// FromCents builds an amount from a whole number of cents.
func FromCents(cents int64) Money {
	return Money{decimal.New(cents, -2)}
}

// CeilCents rounds up to the next whole cent.
func (m Money) CeilCents() Money {
	return Money{m.Decimal.RoundCeil(2)}
}

// FloorCents rounds down to the previous whole cent.
func (m Money) FloorCents() Money {
	return Money{m.Decimal.RoundFloor(2)}
}

// Cents returns the amount in whole cents, truncating any fraction.
func (m Money) Cents() int64 {
	return m.Decimal.Mul(hundred).IntPart()
}

// String is the amount with exactly two decimals and no symbol.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as dollars: "$489.10", "-$12.00".
func (m Money) Format() string {
	if m.Decimal.IsNegative() {
		return "-$" + m.Decimal.Abs().StringFixed(2)
	}
	return "$" + m.String()
}
