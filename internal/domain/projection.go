package domain

import (
	"github.com/shopspring/decimal"
)

// TableKind selects how a distribution table entry turns a balance into a withdrawal.
type TableKind string

const (
	// TableKindDivisor withdraws balance / entry (e.g. IRS life expectancy divisors).
	TableKindDivisor TableKind = "divisor"
	// TableKindRate withdraws balance * entry (e.g. variable percentage withdrawal).
	TableKindRate TableKind = "rate"
	// TableKindFlat withdraws the entry itself as a fixed amount.
	TableKindFlat TableKind = "flat"
)

// TableEntry maps one ordinal (age, tier, period) to a value.
type TableEntry struct {
	Index int             `yaml:"index" toml:"index" json:"index"`
	Value decimal.Decimal `yaml:"value" toml:"value" json:"value"`
}

// DistributionTable is a versioned lookup table indexed by age or tier.
type DistributionTable struct {
	Name    string       `yaml:"name" toml:"name" json:"name"`
	Version string       `yaml:"version" toml:"version" json:"version"`
	Kind    TableKind    `yaml:"kind" toml:"kind" json:"kind"`
	Source  string       `yaml:"source,omitempty" toml:"source,omitempty" json:"source,omitempty"`
	Entries []TableEntry `yaml:"entries" toml:"entries" json:"entries"`
}

// Range returns the lowest and highest index in the table.
func (t DistributionTable) Range() (lo, hi int) {
	for i, e := range t.Entries {
		if i == 0 || e.Index < lo {
			lo = e.Index
		}
		if i == 0 || e.Index > hi {
			hi = e.Index
		}
	}
	return lo, hi
}

// RateTier applies Rate to every index in [From, Through].
type RateTier struct {
	From    int             `yaml:"from" toml:"from" json:"from"`
	Through int             `yaml:"through" toml:"through" json:"through"`
	Rate    decimal.Decimal `yaml:"rate" toml:"rate" json:"rate"`
}

// TerminationReason records why a projection stopped.
type TerminationReason string

const (
	TerminatedDepleted TerminationReason = "depleted"
	TerminatedMaxSteps TerminationReason = "max_steps"
	TerminatedRuleEnd  TerminationReason = "rule_exhausted"
)

// ProjectionStep is one period of a withdrawal-and-growth projection.
type ProjectionStep struct {
	Index            int             `json:"index"`
	BeginningBalance decimal.Decimal `json:"beginning_balance"`
	Withdrawal       decimal.Decimal `json:"withdrawal"`
	Growth           decimal.Decimal `json:"growth"`
	EndingBalance    decimal.Decimal `json:"ending_balance"`
}

// Projection is the forward sequence produced by the projection engine.
type Projection struct {
	Steps      []ProjectionStep  `json:"steps"`
	Terminated TerminationReason `json:"terminated"`
}

// TotalWithdrawn sums every withdrawal in the projection.
func (p Projection) TotalWithdrawn() decimal.Decimal {
	total := decimal.Zero
	for _, s := range p.Steps {
		total = total.Add(s.Withdrawal)
	}
	return total
}

// FinalBalance returns the ending balance of the last step, or zero.
func (p Projection) FinalBalance() decimal.Decimal {
	if len(p.Steps) == 0 {
		return decimal.Zero
	}
	return p.Steps[len(p.Steps)-1].EndingBalance
}
