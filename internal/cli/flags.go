package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rpgo/payoff-calculator/internal/domain"
	money "github.com/rpgo/payoff-calculator/pkg/decimal"
)

// decimalValue is a flag holding a decimal. A trailing "%" divides by 100,
// so --growth 5% and --growth 0.05 are the same; amounts may carry a
// leading "$".
type decimalValue struct {
	d *decimal.Decimal
}

func (v decimalValue) String() string {
	if v.d == nil {
		return "0"
	}
	return v.d.String()
}

func (v decimalValue) Set(s string) error {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "$") {
		m, err := money.ParseMoney(s)
		if err != nil {
			return err
		}
		*v.d = m.Decimal
		return nil
	}
	percent := strings.HasSuffix(s, "%")
	parsed, err := decimal.NewFromString(strings.TrimSuffix(s, "%"))
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	if percent {
		parsed = parsed.Div(decimal.NewFromInt(100))
	}
	*v.d = parsed
	return nil
}

func (v decimalValue) Type() string { return "decimal" }

// rateValue is a flag holding an annual rate, "0.065" or "6.5%".
type rateValue struct {
	r *domain.Rate
}

func (v rateValue) String() string {
	if v.r == nil {
		return "0"
	}
	text, _ := v.r.MarshalText()
	return string(text)
}

func (v rateValue) Set(s string) error {
	parsed, err := domain.ParseRate(s)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	*v.r = parsed
	return nil
}

func (v rateValue) Type() string { return "rate" }

func decimalFlag(cmd *cobra.Command, p *decimal.Decimal, name, usage string) {
	cmd.Flags().Var(decimalValue{p}, name, usage)
}

// optional returns nil for a zero flag value.
func optional(d decimal.Decimal) *decimal.Decimal {
	if d.IsZero() {
		return nil
	}
	return &d
}

// loanFlags are shared by amortize, solve, compare and borrow.
type loanFlags struct {
	principal      decimal.Decimal
	annualRate     domain.Rate
	periodsPerYear int
	maxPeriods     int
	startDate      string
}

func (lf *loanFlags) register(cmd *cobra.Command) {
	decimalFlag(cmd, &lf.principal, "principal", "Loan balance")
	cmd.Flags().IntVar(&lf.maxPeriods, "max-periods", 0, "Give up after this many periods (default 600)")
	_ = cmd.MarkFlagRequired("principal")
	lf.registerTerms(cmd)
}

// registerTerms adds the rate and calendar flags without a principal.
func (lf *loanFlags) registerTerms(cmd *cobra.Command) {
	cmd.Flags().Var(rateValue{&lf.annualRate}, "annual-rate", "Nominal annual rate, e.g. 0.065 or 6.5%")
	cmd.Flags().IntVar(&lf.periodsPerYear, "periods-per-year", 12, "Payments per year")
	cmd.Flags().StringVar(&lf.startDate, "start-date", "", "Date of the loan (YYYY-MM-DD); adds due dates to the schedule")
	_ = cmd.MarkFlagRequired("annual-rate")
}

func (lf *loanFlags) calculation(name string, kind domain.CalculationKind) (domain.Calculation, error) {
	calc := domain.Calculation{
		Name:           name,
		Kind:           kind,
		Principal:      lf.principal,
		AnnualRate:     lf.annualRate,
		PeriodsPerYear: lf.periodsPerYear,
		MaxPeriods:     lf.maxPeriods,
	}
	if lf.startDate != "" {
		start, err := time.Parse("2006-01-02", lf.startDate)
		if err != nil {
			return calc, fmt.Errorf("invalid --start-date %q: expected YYYY-MM-DD", lf.startDate)
		}
		calc.StartDate = &start
	}
	return calc, nil
}

func singleCalculation(calc domain.Calculation) *domain.Configuration {
	return &domain.Configuration{Calculations: []domain.Calculation{calc}}
}
