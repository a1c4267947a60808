package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// LoanTerms describes a level-payment loan. Exactly one of Periods and
// Payment is the unknown: Periods == 0 asks for the horizon, Payment == nil
// asks for the payment.
type LoanTerms struct {
	Principal    decimal.Decimal  `yaml:"principal" json:"principal"`
	PeriodicRate decimal.Decimal  `yaml:"periodic_rate" json:"periodic_rate"`
	Periods      int              `yaml:"periods,omitempty" json:"periods,omitempty"`
	Payment      *decimal.Decimal `yaml:"payment,omitempty" json:"payment,omitempty"`
}

// Validate checks the LoanTerms invariants.
func (lt LoanTerms) Validate() error {
	if !lt.Principal.IsPositive() {
		return errors.New("principal must be positive")
	}
	if lt.PeriodicRate.IsNegative() {
		return errors.New("periodic rate cannot be negative")
	}
	if lt.Periods < 0 {
		return errors.New("periods cannot be negative")
	}
	hasPeriods := lt.Periods > 0
	hasPayment := lt.Payment != nil
	if hasPeriods == hasPayment {
		return errors.New("exactly one of periods or payment must be unknown")
	}
	if hasPayment && !lt.Payment.IsPositive() {
		return errors.New("payment must be positive")
	}
	return nil
}

// SolvesForPayment reports whether the payment is the unknown.
func (lt LoanTerms) SolvesForPayment() bool {
	return lt.Payment == nil
}

// ScheduleEntry is one period of an amortization schedule.
type ScheduleEntry struct {
	Index         int             `json:"index"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	Payment       decimal.Decimal `json:"payment"`
	Interest      decimal.Decimal `json:"interest"`
	Principal     decimal.Decimal `json:"principal"`
	EndingBalance decimal.Decimal `json:"ending_balance"`
}

// Schedule is the period-by-period result of an amortization.
type Schedule struct {
	ScheduledPayment decimal.Decimal `json:"scheduled_payment"`
	Entries          []ScheduleEntry `json:"entries"`
}

// Periods returns the number of periods until payoff.
func (s Schedule) Periods() int {
	return len(s.Entries)
}

// TotalInterest sums the interest portion of every entry.
func (s Schedule) TotalInterest() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.Entries {
		total = total.Add(e.Interest)
	}
	return total
}

// TotalPrincipal sums the principal portion of every entry.
func (s Schedule) TotalPrincipal() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.Entries {
		total = total.Add(e.Principal)
	}
	return total
}

// TotalPaid sums every payment in the schedule.
func (s Schedule) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.Entries {
		total = total.Add(e.Payment)
	}
	return total
}

// FinalPayment returns the terminal entry's payment, or zero for an empty schedule.
func (s Schedule) FinalPayment() decimal.Decimal {
	if len(s.Entries) == 0 {
		return decimal.Zero
	}
	return s.Entries[len(s.Entries)-1].Payment
}

// Outcome returns the aggregate payoff view of the schedule.
func (s Schedule) Outcome() PayoffOutcome {
	return PayoffOutcome{
		Periods:       s.Periods(),
		TotalInterest: s.TotalInterest(),
		TotalPaid:     s.TotalPaid(),
	}
}

// PayoffOutcome is the aggregate view of a schedule.
type PayoffOutcome struct {
	Periods       int             `json:"periods"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
}

// PayoffComparison contrasts a base payment with an alternative one,
// e.g. the minimum payment against a custom payment.
type PayoffComparison struct {
	BasePayment        decimal.Decimal `json:"base_payment"`
	AlternativePayment decimal.Decimal `json:"alternative_payment"`
	Base               PayoffOutcome   `json:"base"`
	Alternative        PayoffOutcome   `json:"alternative"`
	InterestSaved      decimal.Decimal `json:"interest_saved"`
	PeriodsSaved       int             `json:"periods_saved"`
}
