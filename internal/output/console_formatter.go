package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/payoff-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.CalculationReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "PAYOFF SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, r := range report.Results {
		switch {
		case r.Failed():
			fmt.Fprintf(&buf, "%s: FAILED %s\n  %s\n", r.Name, r.Failure, r.Guidance)
		case r.Comparison != nil:
			c := r.Comparison
			fmt.Fprintf(&buf, "%s: Base=%s over %d Alternative=%s over %d Saved=%s\n",
				r.Name,
				FormatCurrency(c.BasePayment), c.Base.Periods,
				FormatCurrency(c.AlternativePayment), c.Alternative.Periods,
				FormatCurrency(c.InterestSaved),
			)
		case r.Outcome != nil && r.Principal != nil:
			fmt.Fprintf(&buf, "%s: Borrows=%s Payment=%s Periods=%d Interest=%s\n",
				r.Name,
				FormatCurrency(*r.Principal),
				FormatCurrency(r.Payment),
				r.Outcome.Periods,
				FormatCurrency(r.Outcome.TotalInterest),
			)
		case r.Outcome != nil:
			fmt.Fprintf(&buf, "%s: Payment=%s Periods=%d Interest=%s Paid=%s\n",
				r.Name,
				FormatCurrency(r.Payment),
				r.Outcome.Periods,
				FormatCurrency(r.Outcome.TotalInterest),
				FormatCurrency(r.Outcome.TotalPaid),
			)
		case r.Projection != nil:
			p := r.Projection
			fmt.Fprintf(&buf, "%s: Steps=%d Withdrawn=%s Final=%s Ended=%s\n",
				r.Name, len(p.Steps), FormatCurrency(p.TotalWithdrawn()), FormatCurrency(p.FinalBalance()), p.Terminated)
		}
	}
	h := AnalyzeReport(report)
	if h.BestSavingName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Best saving: %s (%s, %d periods sooner)\n", h.BestSavingName, FormatCurrency(h.BestSaving), h.BestSavingTime)
	}
	return buf.Bytes(), nil
}
