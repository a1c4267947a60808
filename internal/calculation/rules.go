package calculation

import (
	"fmt"
	"sort"

	"github.com/rpgo/payoff-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// DistributionRule maps an ordinal (age, tier, period) and the balance at that
// point to the required withdrawal. An ordinal outside the rule's domain
// yields an error wrapping ErrRuleExhausted; rules never fall back to a
// default.
type DistributionRule interface {
	Withdrawal(index int, balance decimal.Decimal) (decimal.Decimal, error)
}

// TableRule applies a versioned DistributionTable.
type TableRule struct {
	table  domain.DistributionTable
	lookup map[int]decimal.Decimal
	lo, hi int
}

// NewTableRule validates table and builds its lookup. Divisors and rates must
// be positive, rates at most 1, flat amounts non-negative, and each index may
// appear only once.
func NewTableRule(table domain.DistributionTable) (*TableRule, error) {
	if table.Name == "" {
		return nil, fmt.Errorf("%w: distribution table needs a name", ErrInvalidInput)
	}
	if len(table.Entries) == 0 {
		return nil, fmt.Errorf("%w: distribution table %s has no entries", ErrInvalidInput, table.Name)
	}
	lookup := make(map[int]decimal.Decimal, len(table.Entries))
	for _, e := range table.Entries {
		if _, dup := lookup[e.Index]; dup {
			return nil, fmt.Errorf("%w: distribution table %s repeats index %d", ErrInvalidInput, table.Name, e.Index)
		}
		switch table.Kind {
		case domain.TableKindDivisor:
			if !e.Value.IsPositive() {
				return nil, fmt.Errorf("%w: table %s divisor at %d must be positive", ErrInvalidInput, table.Name, e.Index)
			}
		case domain.TableKindRate:
			if !e.Value.IsPositive() || e.Value.GreaterThan(one) {
				return nil, fmt.Errorf("%w: table %s rate at %d must be in (0, 1]", ErrInvalidInput, table.Name, e.Index)
			}
		case domain.TableKindFlat:
			if e.Value.IsNegative() {
				return nil, fmt.Errorf("%w: table %s amount at %d cannot be negative", ErrInvalidInput, table.Name, e.Index)
			}
		default:
			return nil, fmt.Errorf("%w: table %s has unknown kind %q", ErrInvalidInput, table.Name, table.Kind)
		}
		lookup[e.Index] = e.Value
	}
	lo, hi := table.Range()
	return &TableRule{table: table, lookup: lookup, lo: lo, hi: hi}, nil
}

// Table returns the table the rule was built from.
func (tr *TableRule) Table() domain.DistributionTable {
	return tr.table
}

// Withdrawal looks up index and applies the table's kind to balance.
func (tr *TableRule) Withdrawal(index int, balance decimal.Decimal) (decimal.Decimal, error) {
	v, ok := tr.lookup[index]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: table %s (version %s) has no entry for %d, covers %d-%d",
			ErrRuleExhausted, tr.table.Name, tr.table.Version, index, tr.lo, tr.hi)
	}
	switch tr.table.Kind {
	case domain.TableKindDivisor:
		return balance.Div(v), nil
	case domain.TableKindRate:
		return balance.Mul(v), nil
	default:
		return v, nil
	}
}

// TieredRateRule withdraws balance * rate, the rate chosen by the tier that
// contains the index (e.g. pay-rate tiers over cumulative hours).
type TieredRateRule struct {
	tiers []domain.RateTier
}

// NewTieredRateRule validates that tiers are well formed and do not overlap.
func NewTieredRateRule(tiers []domain.RateTier) (*TieredRateRule, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("%w: at least one rate tier is required", ErrInvalidInput)
	}
	sorted := append([]domain.RateTier(nil), tiers...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].From < sorted[j].From })
	for i, t := range sorted {
		if t.Through < t.From {
			return nil, fmt.Errorf("%w: tier %d-%d ends before it starts", ErrInvalidInput, t.From, t.Through)
		}
		if t.Rate.IsNegative() || t.Rate.GreaterThan(one) {
			return nil, fmt.Errorf("%w: tier %d-%d rate must be in [0, 1]", ErrInvalidInput, t.From, t.Through)
		}
		if i > 0 && t.From <= sorted[i-1].Through {
			return nil, fmt.Errorf("%w: tier %d-%d overlaps %d-%d", ErrInvalidInput,
				t.From, t.Through, sorted[i-1].From, sorted[i-1].Through)
		}
	}
	return &TieredRateRule{tiers: sorted}, nil
}

// Withdrawal applies the rate of the tier containing index.
func (tr *TieredRateRule) Withdrawal(index int, balance decimal.Decimal) (decimal.Decimal, error) {
	for _, t := range tr.tiers {
		if index >= t.From && index <= t.Through {
			return balance.Mul(t.Rate), nil
		}
	}
	return decimal.Zero, fmt.Errorf("%w: no rate tier covers %d", ErrRuleExhausted, index)
}

// DeferredRule withdraws nothing before StartIndex and defers to Rule from
// then on, e.g. no required distribution before the RMD start age.
type DeferredRule struct {
	StartIndex int
	Rule       DistributionRule
}

// Withdrawal returns zero before StartIndex.
func (dr DeferredRule) Withdrawal(index int, balance decimal.Decimal) (decimal.Decimal, error) {
	if index < dr.StartIndex {
		return decimal.Zero, nil
	}
	return dr.Rule.Withdrawal(index, balance)
}
