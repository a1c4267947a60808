package calculation

import (
	"fmt"

	"github.com/rpgo/payoff-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// DefaultMaxPeriods is the usual period cap: 50 years of monthly payments.
	DefaultMaxPeriods = 600
	// MaxSupportedPeriods bounds any caller-supplied cap.
	MaxSupportedPeriods = 6000

	// internalPlaces is the precision money is carried at between periods.
	// Sub-cent drift is kept; the final entry absorbs it.
	internalPlaces = 10
)

// PayoffTolerance is the balance (in currency units) treated as paid off.
// For payments under two cents the period's half payment is used instead,
// so a schedule of tiny payments is not cut short.
var PayoffTolerance = decimal.New(1, -2)

var two = decimal.NewFromInt(2)

func payoffTolerance(payment decimal.Decimal) decimal.Decimal {
	return decimal.Min(PayoffTolerance, payment.Div(two))
}

// PaymentPolicy yields the payment due for a period given the balance at the
// start of the period and the interest accrued on it.
type PaymentPolicy interface {
	PaymentFor(index int, balance, interest decimal.Decimal) decimal.Decimal
}

// FixedPayment pays the same amount every period.
type FixedPayment decimal.Decimal

// PaymentFor returns the fixed amount.
func (fp FixedPayment) PaymentFor(int, decimal.Decimal, decimal.Decimal) decimal.Decimal {
	return decimal.Decimal(fp)
}

// MinimumPayment is a credit-card style minimum: Percent of the balance,
// plus the period's interest when IncludeInterest, never less than Floor.
type MinimumPayment struct {
	Percent         decimal.Decimal
	IncludeInterest bool
	Floor           decimal.Decimal
}

// PaymentFor computes the minimum due for the period.
func (mp MinimumPayment) PaymentFor(_ int, balance, interest decimal.Decimal) decimal.Decimal {
	due := balance.Mul(mp.Percent)
	if mp.IncludeInterest {
		due = due.Add(interest)
	}
	return decimal.Max(due, mp.Floor)
}

// PeriodicRate converts an annual nominal rate to the per-period rate.
func PeriodicRate(annualRate decimal.Decimal, periodsPerYear int) (decimal.Decimal, error) {
	if periodsPerYear <= 0 {
		return decimal.Zero, fmt.Errorf("%w: periods per year must be positive, got %d", ErrInvalidInput, periodsPerYear)
	}
	if annualRate.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: annual rate cannot be negative, got %s", ErrInvalidInput, annualRate)
	}
	return annualRate.Div(decimal.NewFromInt(int64(periodsPerYear))), nil
}

// Amortize produces the period-by-period schedule for a level payment.
//
// A payment at or below the interest-only amount (periodicRate * principal)
// fails with ErrNonAmortizing before any period is computed. A balance still
// above PayoffTolerance after maxPeriods fails with ErrExceedsHorizon; no
// truncated schedule is returned. The final entry always ends at exactly
// zero, its principal absorbing any residual drift.
func Amortize(principal, periodicRate, payment decimal.Decimal, maxPeriods int) (domain.Schedule, error) {
	if err := validateLoan(principal, periodicRate, maxPeriods); err != nil {
		return domain.Schedule{}, err
	}
	interestOnly := principal.Mul(periodicRate)
	if payment.LessThanOrEqual(interestOnly) {
		return domain.Schedule{}, fmt.Errorf("%w: payment %s is not above interest-only amount %s",
			ErrNonAmortizing, payment.StringFixed(2), interestOnly.StringFixed(2))
	}
	return amortize(principal, periodicRate, FixedPayment(payment), maxPeriods)
}

// AmortizeWithPolicy runs the same stepping as Amortize with a payment that
// may vary by period. A period whose payment does not exceed its interest
// fails with ErrNonAmortizing. ScheduledPayment is the first period's payment.
func AmortizeWithPolicy(principal, periodicRate decimal.Decimal, policy PaymentPolicy, maxPeriods int) (domain.Schedule, error) {
	if policy == nil {
		return domain.Schedule{}, fmt.Errorf("%w: payment policy is required", ErrInvalidInput)
	}
	if err := validateLoan(principal, periodicRate, maxPeriods); err != nil {
		return domain.Schedule{}, err
	}
	return amortize(principal, periodicRate, policy, maxPeriods)
}

func validateLoan(principal, periodicRate decimal.Decimal, maxPeriods int) error {
	if !principal.IsPositive() {
		return fmt.Errorf("%w: principal must be positive, got %s", ErrInvalidInput, principal)
	}
	if periodicRate.IsNegative() {
		return fmt.Errorf("%w: periodic rate cannot be negative, got %s", ErrInvalidInput, periodicRate)
	}
	if maxPeriods <= 0 || maxPeriods > MaxSupportedPeriods {
		return fmt.Errorf("%w: period cap must be between 1 and %d, got %d", ErrInvalidInput, MaxSupportedPeriods, maxPeriods)
	}
	return nil
}

func amortize(principal, periodicRate decimal.Decimal, policy PaymentPolicy, maxPeriods int) (domain.Schedule, error) {
	balance := principal
	var schedule domain.Schedule
	schedule.Entries = make([]domain.ScheduleEntry, 0, min(maxPeriods, 64))

	for index := 1; index <= maxPeriods; index++ {
		interest := balance.Mul(periodicRate).Round(internalPlaces)
		payment := policy.PaymentFor(index, balance, interest)
		if index == 1 {
			schedule.ScheduledPayment = payment
		}
		if payment.LessThanOrEqual(interest) {
			return domain.Schedule{}, fmt.Errorf("%w: period %d payment %s does not exceed interest %s",
				ErrNonAmortizing, index, payment.StringFixed(2), interest.StringFixed(2))
		}

		principalPortion := decimal.Min(payment.Sub(interest), balance)
		balance = balance.Sub(principalPortion)

		if balance.LessThanOrEqual(payoffTolerance(payment)) {
			principalPortion = principalPortion.Add(balance)
			schedule.Entries = append(schedule.Entries, domain.ScheduleEntry{
				Index:         index,
				Payment:       interest.Add(principalPortion),
				Interest:      interest,
				Principal:     principalPortion,
				EndingBalance: decimal.Zero,
			})
			return schedule, nil
		}

		schedule.Entries = append(schedule.Entries, domain.ScheduleEntry{
			Index:         index,
			Payment:       payment,
			Interest:      interest,
			Principal:     principalPortion,
			EndingBalance: balance,
		})
	}

	return domain.Schedule{}, fmt.Errorf("%w: balance %s remains after %d periods",
		ErrExceedsHorizon, balance.StringFixed(2), maxPeriods)
}
