package output

import (
	"fmt"

	"github.com/rpgo/payoff-calculator/internal/calculation"
	"github.com/rpgo/payoff-calculator/internal/domain"
)

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Interest accrues once per period at the annual rate divided by periods per year",
	fmt.Sprintf("A balance at or below %s counts as paid off; the final payment absorbs it", FormatCurrency(calculation.PayoffTolerance)),
	"Solved payments are the smallest whole-cent payment that meets the term",
	"Projections withdraw first, then apply growth to the remaining balance",
}

// GenerateAssumptions adds the distribution tables the report was run with.
func GenerateAssumptions(report *domain.CalculationReport) []string {
	out := append([]string(nil), DefaultAssumptions...)
	for _, t := range report.Tables {
		out = append(out, "Distribution table "+t)
	}
	return out
}
