package output

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rpgo/payoff-calculator/internal/domain"
)

func TestAnalyzeReport(t *testing.T) {
	h := AnalyzeReport(buildTestReport())

	assert.Equal(t, 3, h.Succeeded)
	assert.Equal(t, 1, h.Failed)
	assert.True(t, h.TotalInterest.Equal(d("22.48371")), "only amortize/solve outcomes count: %s", h.TotalInterest)
	assert.Equal(t, "Extra payment", h.BestSavingName)
	assert.True(t, h.BestSaving.Equal(d("865.66")))
	assert.Equal(t, 12, h.BestSavingTime)
}

func TestAnalyzeReport_PicksLargestSaving(t *testing.T) {
	cmp := func(saved string, periods int) *domain.PayoffComparison {
		return &domain.PayoffComparison{InterestSaved: d(saved), PeriodsSaved: periods}
	}
	report := &domain.CalculationReport{Results: []domain.CalculationResult{
		{Name: "small", Kind: domain.KindCompare, Comparison: cmp("10", 1)},
		{Name: "large", Kind: domain.KindCompare, Comparison: cmp("250.5", 9)},
		{Name: "worse", Kind: domain.KindCompare, Comparison: cmp("-40", -3)},
	}}

	h := AnalyzeReport(report)
	assert.Equal(t, "large", h.BestSavingName)
	assert.Equal(t, 9, h.BestSavingTime)
}

func TestAnalyzeReport_NoSavings(t *testing.T) {
	report := &domain.CalculationReport{Results: []domain.CalculationResult{
		{Name: "worse", Kind: domain.KindCompare, Comparison: &domain.PayoffComparison{InterestSaved: decimal.NewFromInt(-5)}},
	}}

	h := AnalyzeReport(report)
	assert.Empty(t, h.BestSavingName)
	assert.True(t, h.TotalInterest.IsZero())
}
