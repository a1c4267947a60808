package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/payoff-calculator/internal/domain"
)

// CSVDetailedExporter writes one row per schedule entry or projection step.
// Loan rows fill Payment/Interest/Principal, projection rows fill
// Withdrawal/Growth; both fill the balances.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.CalculationReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Calculation", "Kind", "Index", "DueDate", "Payment", "Interest", "Principal", "Withdrawal", "Growth", "BeginningBalance", "EndingBalance"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range report.Results {
		if s := r.Schedule; s != nil {
			for i, e := range s.Entries {
				due := ""
				if e.DueDate != nil {
					due = e.DueDate.Format("2006-01-02")
				}
				beginning := e.EndingBalance.Add(e.Principal)
				if i > 0 {
					beginning = s.Entries[i-1].EndingBalance
				}
				row := []string{
					r.Name,
					string(r.Kind),
					intToString(e.Index),
					due,
					e.Payment.StringFixed(2),
					e.Interest.StringFixed(2),
					e.Principal.StringFixed(2),
					"",
					"",
					beginning.StringFixed(2),
					e.EndingBalance.StringFixed(2),
				}
				if err := w.Write(row); err != nil {
					return nil, err
				}
			}
		}
		if p := r.Projection; p != nil {
			for _, s := range p.Steps {
				row := []string{
					r.Name,
					string(r.Kind),
					intToString(s.Index),
					"",
					"",
					"",
					"",
					s.Withdrawal.StringFixed(2),
					s.Growth.StringFixed(2),
					s.BeginningBalance.StringFixed(2),
					s.EndingBalance.StringFixed(2),
				}
				if err := w.Write(row); err != nil {
					return nil, err
				}
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
