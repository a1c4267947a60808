package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/payoff-calculator/internal/domain"
)

// ConsoleVerboseFormatter renders every result in full: schedules period by
// period, comparisons side by side and projections step by step.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.CalculationReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, renderTitle("PAYOFF CALCULATION REPORT"))
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "Generated %s\n", report.GeneratedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, headerStyle.Render("KEY ASSUMPTIONS:"))
	for _, a := range GenerateAssumptions(report) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, r := range report.Results {
		fmt.Fprintf(&buf, "%s\n", titleStyle.Render(fmt.Sprintf("CALCULATION %d: %s (%s)", i+1, r.Name, r.Kind)))
		if r.Failed() {
			writeFailure(&buf, r)
			fmt.Fprintln(&buf)
			continue
		}
		switch {
		case r.Comparison != nil:
			writeComparison(&buf, r)
		case r.Schedule != nil:
			writeSchedule(&buf, r)
		case r.Projection != nil:
			writeProjection(&buf, r)
		}
		fmt.Fprintln(&buf)
	}

	h := AnalyzeReport(report)
	fmt.Fprintf(&buf, "%d succeeded, %d failed\n", h.Succeeded, h.Failed)
	return buf.Bytes(), nil
}

func writeFailure(buf *bytes.Buffer, r domain.CalculationResult) {
	fmt.Fprintf(buf, "%s %s\n", badStyle.Render("FAILED:"), r.Failure)
	if r.Guidance != "" {
		fmt.Fprintf(buf, "%s\n", warnStyle.Render(r.Guidance))
	}
	// a projection that ran off its table keeps the steps it completed
	if r.Projection != nil && len(r.Projection.Steps) > 0 {
		writeProjection(buf, r)
	}
}

func writeSchedule(buf *bytes.Buffer, r domain.CalculationResult) {
	s := r.Schedule
	if r.Principal != nil {
		fmt.Fprintf(buf, "Can borrow:        %s\n", goodStyle.Render(FormatCurrency(*r.Principal)))
	}
	fmt.Fprintf(buf, "Periodic rate:     %s\n", FormatRate(r.PeriodicRate))
	fmt.Fprintf(buf, "Scheduled payment: %s\n", FormatCurrency(s.ScheduledPayment))
	if r.Kind == domain.KindSolve {
		fmt.Fprintf(buf, "Solved payment:    %s\n", goodStyle.Render(FormatCurrency(r.Payment)))
	}
	fmt.Fprintf(buf, "Periods:           %d\n", s.Periods())
	fmt.Fprintf(buf, "Total interest:    %s\n", FormatCurrency(s.TotalInterest()))
	fmt.Fprintf(buf, "Total paid:        %s\n", FormatCurrency(s.TotalPaid()))
	fmt.Fprintf(buf, "Final payment:     %s\n", FormatCurrency(s.FinalPayment()))

	headers := []string{"Period", "Payment", "Interest", "Principal", "Balance"}
	dated := len(s.Entries) > 0 && s.Entries[0].DueDate != nil
	if dated {
		headers = []string{"Period", "Due", "Payment", "Interest", "Principal", "Balance"}
	}
	rows := make([][]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		row := []string{intToString(e.Index)}
		if dated {
			row = append(row, e.DueDate.Format("2006-01-02"))
		}
		row = append(row,
			FormatCurrency(e.Payment),
			FormatCurrency(e.Interest),
			FormatCurrency(e.Principal),
			FormatCurrency(e.EndingBalance),
		)
		rows = append(rows, row)
	}
	rows = append(rows, []string{"---"})
	total := []string{"Total"}
	if dated {
		total = append(total, "")
	}
	total = append(total, FormatCurrency(s.TotalPaid()), FormatCurrency(s.TotalInterest()), FormatCurrency(s.TotalPrincipal()), "")
	rows = append(rows, total)
	buf.WriteString(table{Title: "Amortization schedule", Headers: headers, Rows: rows}.render())
}

func writeComparison(buf *bytes.Buffer, r domain.CalculationResult) {
	c := r.Comparison
	rows := [][]string{
		{"Payment", FormatCurrency(c.BasePayment), FormatCurrency(c.AlternativePayment)},
		{"Periods", intToString(c.Base.Periods), intToString(c.Alternative.Periods)},
		{"Total interest", FormatCurrency(c.Base.TotalInterest), FormatCurrency(c.Alternative.TotalInterest)},
		{"Total paid", FormatCurrency(c.Base.TotalPaid), FormatCurrency(c.Alternative.TotalPaid)},
	}
	buf.WriteString(table{Headers: []string{"", "Base", "Alternative"}, Rows: rows}.render())

	saved := FormatCurrency(c.InterestSaved)
	if c.InterestSaved.IsPositive() {
		saved = goodStyle.Render(saved)
	} else if c.InterestSaved.IsNegative() {
		saved = warnStyle.Render(saved)
	}
	fmt.Fprintf(buf, "Interest saved: %s, %d fewer periods\n", saved, c.PeriodsSaved)
}

func writeProjection(buf *bytes.Buffer, r domain.CalculationResult) {
	p := r.Projection
	if r.Table != "" {
		fmt.Fprintf(buf, "Rule:            %s\n", r.Table)
	}
	fmt.Fprintf(buf, "Steps:           %d (%s)\n", len(p.Steps), p.Terminated)
	fmt.Fprintf(buf, "Total withdrawn: %s\n", FormatCurrency(p.TotalWithdrawn()))
	fmt.Fprintf(buf, "Final balance:   %s\n", FormatCurrency(p.FinalBalance()))

	rows := make([][]string, 0, len(p.Steps))
	for _, s := range p.Steps {
		rows = append(rows, []string{
			intToString(s.Index),
			FormatCurrency(s.BeginningBalance),
			FormatCurrency(s.Withdrawal),
			FormatCurrency(s.Growth),
			FormatCurrency(s.EndingBalance),
		})
	}
	buf.WriteString(table{
		Title:   "Projection",
		Headers: []string{"Index", "Beginning", "Withdrawal", "Growth", "Ending"},
		Rows:    rows,
	}.render())
}
