package calculation

import (
	"testing"

	"github.com/rpgo/payoff-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func divisorTable(entries map[int]string) domain.DistributionTable {
	t := domain.DistributionTable{Name: "test_divisors", Version: "2024", Kind: domain.TableKindDivisor}
	for i := 0; i < 200; i++ {
		if v, ok := entries[i]; ok {
			t.Entries = append(t.Entries, domain.TableEntry{Index: i, Value: decimal.RequireFromString(v)})
		}
	}
	return t
}

func TestTableRuleWithdrawal(t *testing.T) {
	balance := decimal.NewFromInt(100000)

	tests := []struct {
		name     string
		kind     domain.TableKind
		value    string
		expected float64
	}{
		{"divisor", domain.TableKindDivisor, "25", 4000},
		{"rate", domain.TableKindRate, "0.045", 4500},
		{"flat", domain.TableKindFlat, "1200", 1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := NewTableRule(domain.DistributionTable{
				Name:    tt.name,
				Version: "1",
				Kind:    tt.kind,
				Entries: []domain.TableEntry{{Index: 70, Value: decimal.RequireFromString(tt.value)}},
			})
			require.NoError(t, err)
			w, err := rule.Withdrawal(70, balance)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, w.InexactFloat64(), 1e-9)
		})
	}
}

func TestTableRuleExhaustedOutsideRange(t *testing.T) {
	rule, err := NewTableRule(divisorTable(map[int]string{73: "26.5", 74: "25.5", 75: "24.6"}))
	require.NoError(t, err)

	for _, idx := range []int{72, 76, 120} {
		_, err := rule.Withdrawal(idx, decimal.NewFromInt(1000))
		assert.ErrorIs(t, err, ErrRuleExhausted, "index %d", idx)
		assert.Contains(t, err.Error(), "covers 73-75")
		assert.Contains(t, err.Error(), "version 2024")
	}
	assert.Equal(t, "test_divisors", rule.Table().Name)
}

func TestNewTableRuleValidation(t *testing.T) {
	entry := func(i int, v string) domain.TableEntry {
		return domain.TableEntry{Index: i, Value: decimal.RequireFromString(v)}
	}
	tests := []struct {
		name  string
		table domain.DistributionTable
	}{
		{"missing name", domain.DistributionTable{Kind: domain.TableKindFlat, Entries: []domain.TableEntry{entry(1, "1")}}},
		{"no entries", domain.DistributionTable{Name: "t", Kind: domain.TableKindFlat}},
		{"duplicate index", domain.DistributionTable{Name: "t", Kind: domain.TableKindFlat, Entries: []domain.TableEntry{entry(1, "1"), entry(1, "2")}}},
		{"zero divisor", domain.DistributionTable{Name: "t", Kind: domain.TableKindDivisor, Entries: []domain.TableEntry{entry(1, "0")}}},
		{"rate above one", domain.DistributionTable{Name: "t", Kind: domain.TableKindRate, Entries: []domain.TableEntry{entry(1, "1.5")}}},
		{"negative flat", domain.DistributionTable{Name: "t", Kind: domain.TableKindFlat, Entries: []domain.TableEntry{entry(1, "-5")}}},
		{"unknown kind", domain.DistributionTable{Name: "t", Kind: "percentile", Entries: []domain.TableEntry{entry(1, "1")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTableRule(tt.table)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestTieredRateRule(t *testing.T) {
	rule, err := NewTieredRateRule([]domain.RateTier{
		{From: 10, Through: 19, Rate: decimal.RequireFromString("0.2")},
		{From: 0, Through: 9, Rate: decimal.RequireFromString("0.1")},
	})
	require.NoError(t, err)

	w, err := rule.Withdrawal(5, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, w.Equal(decimal.NewFromInt(10)))

	w, err = rule.Withdrawal(19, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, w.Equal(decimal.NewFromInt(20)))

	_, err = rule.Withdrawal(20, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrRuleExhausted)
}

func TestNewTieredRateRuleValidation(t *testing.T) {
	rate := decimal.RequireFromString("0.1")
	_, err := NewTieredRateRule(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewTieredRateRule([]domain.RateTier{{From: 0, Through: 10, Rate: rate}, {From: 10, Through: 20, Rate: rate}})
	assert.ErrorIs(t, err, ErrInvalidInput, "overlapping tiers")

	_, err = NewTieredRateRule([]domain.RateTier{{From: 5, Through: 1, Rate: rate}})
	assert.ErrorIs(t, err, ErrInvalidInput, "inverted tier")

	_, err = NewTieredRateRule([]domain.RateTier{{From: 0, Through: 1, Rate: decimal.NewFromInt(2)}})
	assert.ErrorIs(t, err, ErrInvalidInput, "rate above one")
}

func TestDeferredRule(t *testing.T) {
	inner, err := NewTableRule(divisorTable(map[int]string{73: "26.5"}))
	require.NoError(t, err)
	rule := DeferredRule{StartIndex: 73, Rule: inner}

	w, err := rule.Withdrawal(70, decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.True(t, w.IsZero())

	w, err = rule.Withdrawal(73, decimal.NewFromInt(2650))
	require.NoError(t, err)
	assert.True(t, w.Equal(decimal.NewFromInt(100)))
}
