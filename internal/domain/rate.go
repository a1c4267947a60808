package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Rate is a nominal annual rate held as a fraction. In documents and flags it
// may be written as a fraction (0.065) or with a percent sign ("6.5%").
type Rate struct {
	decimal.Decimal
	percent bool
}

// NewRate wraps a fraction.
func NewRate(fraction decimal.Decimal) Rate {
	return Rate{Decimal: fraction}
}

// ParseRate reads "0.065" or "6.5%".
func ParseRate(s string) (Rate, error) {
	s = strings.TrimSpace(s)
	percent := strings.HasSuffix(s, "%")
	d, err := decimal.NewFromString(strings.TrimSpace(strings.TrimSuffix(s, "%")))
	if err != nil {
		return Rate{}, fmt.Errorf("invalid rate %q: %w", s, err)
	}
	if percent {
		d = d.Div(hundred)
	}
	return Rate{Decimal: d, percent: percent}, nil
}

// WrittenAsPercent reports whether the rate was given with a percent sign.
// Such rates are taken at face value; a bare fraction above 1 is more likely
// a percentage missing its sign.
func (r Rate) WrittenAsPercent() bool {
	return r.percent
}

// UnmarshalText implements encoding.TextUnmarshaler for YAML and TOML.
func (r *Rate) UnmarshalText(text []byte) error {
	parsed, err := ParseRate(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalText writes the rate the way it was read.
func (r Rate) MarshalText() ([]byte, error) {
	if r.percent {
		return []byte(r.Mul(hundred).String() + "%"), nil
	}
	return []byte(r.String()), nil
}
