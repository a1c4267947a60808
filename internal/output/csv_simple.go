package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/payoff-calculator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per calculation).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.CalculationReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Calculation", "Kind", "Failed", "Failure", "Payment", "Periods", "TotalInterest", "TotalPaid", "FinalPayment", "InterestSaved", "PeriodsSaved", "Steps", "TotalWithdrawn", "FinalBalance", "Table", "Principal"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range report.Results {
		row := make([]string, len(header))
		row[0] = r.Name
		row[1] = string(r.Kind)
		row[2] = boolToString(r.Failed())
		row[3] = r.Failure
		row[14] = r.Table
		if r.Principal != nil {
			row[15] = r.Principal.StringFixed(2)
		}
		if !r.Failed() {
			row[4] = r.Payment.StringFixed(2)
		}
		if r.Outcome != nil {
			row[5] = intToString(r.Outcome.Periods)
			row[6] = r.Outcome.TotalInterest.StringFixed(2)
			row[7] = r.Outcome.TotalPaid.StringFixed(2)
		}
		if r.Schedule != nil {
			row[8] = r.Schedule.FinalPayment().StringFixed(2)
		}
		if cmp := r.Comparison; cmp != nil {
			row[5] = intToString(cmp.Alternative.Periods)
			row[6] = cmp.Alternative.TotalInterest.StringFixed(2)
			row[7] = cmp.Alternative.TotalPaid.StringFixed(2)
			row[9] = cmp.InterestSaved.StringFixed(2)
			row[10] = intToString(cmp.PeriodsSaved)
		}
		if p := r.Projection; p != nil {
			row[11] = intToString(len(p.Steps))
			row[12] = p.TotalWithdrawn().StringFixed(2)
			row[13] = p.FinalBalance().StringFixed(2)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
