package output

import (
	"github.com/rpgo/payoff-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Highlights condenses a report into the few numbers a summary view leads with.
type Highlights struct {
	Succeeded int
	Failed    int

	// TotalInterest sums interest over every successful amortize and solve result.
	TotalInterest decimal.Decimal

	// BestSaving is the comparison with the largest interest saving.
	BestSavingName string
	BestSaving     decimal.Decimal
	BestSavingTime int
}

// AnalyzeReport computes the report highlights.
// Extracted from the console formatters for testability.
func AnalyzeReport(report *domain.CalculationReport) Highlights {
	h := Highlights{TotalInterest: decimal.Zero, BestSaving: decimal.Zero}
	for _, r := range report.Results {
		if r.Failed() {
			h.Failed++
			continue
		}
		h.Succeeded++
		if r.Outcome != nil {
			h.TotalInterest = h.TotalInterest.Add(r.Outcome.TotalInterest)
		}
		if c := r.Comparison; c != nil && c.InterestSaved.GreaterThan(h.BestSaving) {
			h.BestSavingName = r.Name
			h.BestSaving = c.InterestSaved
			h.BestSavingTime = c.PeriodsSaved
		}
	}
	return h
}
