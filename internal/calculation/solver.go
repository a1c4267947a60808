package calculation

import (
	"errors"
	"fmt"

	"github.com/rpgo/payoff-calculator/internal/domain"
	money "github.com/rpgo/payoff-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// MaxSolverIterations bounds the bisection in SolveRoundedPaymentForHorizon.
// Bisection over whole cents needs at most log2(range in cents) steps, so 64
// covers any int64 range.
const MaxSolverIterations = 64

// workingPlaces is the precision compound growth factors are carried at.
const workingPlaces = 24

var one = decimal.NewFromInt(1)

// growthFactor returns (1+rate)^n by repeated squaring, rounding each product
// to workingPlaces so digit counts stay bounded for long horizons.
func growthFactor(rate decimal.Decimal, n int) decimal.Decimal {
	base := one.Add(rate)
	result := one
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(workingPlaces)
		}
		base = base.Mul(base).Round(workingPlaces)
		n >>= 1
	}
	return result
}

func validateHorizon(principal, periodicRate decimal.Decimal, targetPeriods int) error {
	if !principal.IsPositive() {
		return fmt.Errorf("%w: principal must be positive, got %s", ErrInvalidInput, principal)
	}
	if periodicRate.IsNegative() {
		return fmt.Errorf("%w: periodic rate cannot be negative, got %s", ErrInvalidInput, periodicRate)
	}
	if targetPeriods <= 0 || targetPeriods > MaxSupportedPeriods {
		return fmt.Errorf("%w: target periods must be between 1 and %d, got %d", ErrInvalidInput, MaxSupportedPeriods, targetPeriods)
	}
	return nil
}

// SolvePaymentForHorizon returns the level payment that retires principal in
// exactly targetPeriods periods. With a positive rate this is the closed-form
// annuity payment P*r/(1-(1+r)^-n), computed as P*r*g/(g-1) with g=(1+r)^n;
// with a zero rate it is P/n. Both divide at workingPlaces.
//
// When (1+r)^n is so large that the payment cannot be told apart from the
// interest-only amount at that precision, the horizon is unreachable and
// ErrNonAmortizing is returned.
func SolvePaymentForHorizon(principal, periodicRate decimal.Decimal, targetPeriods int) (decimal.Decimal, error) {
	if err := validateHorizon(principal, periodicRate, targetPeriods); err != nil {
		return decimal.Zero, err
	}
	if periodicRate.IsZero() {
		return principal.DivRound(decimal.NewFromInt(int64(targetPeriods)), workingPlaces), nil
	}
	g := growthFactor(periodicRate, targetPeriods)
	interestOnly := principal.Mul(periodicRate)
	payment := interestOnly.Mul(g).DivRound(g.Sub(one), workingPlaces)
	if payment.LessThanOrEqual(interestOnly) {
		return decimal.Zero, fmt.Errorf("%w: %d periods at rate %s needs a payment indistinguishable from interest-only %s",
			ErrNonAmortizing, targetPeriods, periodicRate, interestOnly.StringFixed(2))
	}
	return payment, nil
}

// SolvePrincipalForPayment is the inverse annuity: the principal a level
// payment retires in targetPeriods periods (present value of the payments).
func SolvePrincipalForPayment(payment, periodicRate decimal.Decimal, targetPeriods int) (decimal.Decimal, error) {
	if !payment.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: payment must be positive, got %s", ErrInvalidInput, payment)
	}
	if periodicRate.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: periodic rate cannot be negative, got %s", ErrInvalidInput, periodicRate)
	}
	if targetPeriods <= 0 || targetPeriods > MaxSupportedPeriods {
		return decimal.Zero, fmt.Errorf("%w: target periods must be between 1 and %d, got %d", ErrInvalidInput, MaxSupportedPeriods, targetPeriods)
	}
	n := decimal.NewFromInt(int64(targetPeriods))
	if periodicRate.IsZero() {
		return payment.Mul(n), nil
	}
	g := growthFactor(periodicRate, targetPeriods)
	return payment.Mul(g.Sub(one)).DivRound(periodicRate.Mul(g), workingPlaces), nil
}

// SolveBorrowingCapacity answers "how much can this payment borrow": the
// present value of targetPeriods payments floored to the cent, and the
// schedule that retires it. Flooring means the last payment may be a little
// smaller than the rest.
func SolveBorrowingCapacity(payment, periodicRate decimal.Decimal, targetPeriods int) (decimal.Decimal, domain.Schedule, error) {
	pv, err := SolvePrincipalForPayment(payment, periodicRate, targetPeriods)
	if err != nil {
		return decimal.Zero, domain.Schedule{}, err
	}
	principal := money.NewMoneyFromDecimal(pv).FloorCents().Decimal
	if !principal.IsPositive() {
		return decimal.Zero, domain.Schedule{}, fmt.Errorf("%w: payment %s borrows less than a cent over %d periods",
			ErrInvalidInput, payment.String(), targetPeriods)
	}
	schedule, err := Amortize(principal, periodicRate, payment, targetPeriods)
	if err != nil {
		return decimal.Zero, domain.Schedule{}, err
	}
	return principal, schedule, nil
}

// SolveRoundedPaymentForHorizon returns the smallest whole-cent payment whose
// schedule pays off within targetPeriods, together with that schedule.
//
// The exact annuity payment rounded up to the cent always meets the horizon;
// rounding down may or may not, depending on how much drift the payoff
// tolerance absorbs. The answer is found by bisection over whole cents between
// the interest-only payment (never pays off) and the rounded-up closed form
// (always pays off), relying on periods-to-payoff being monotonically
// non-increasing in the payment. Unlike multiplicative step heuristics
// (raise by 10%, lower by 5%, repeat), bisection on a monotone predicate
// always terminates within MaxSolverIterations.
func SolveRoundedPaymentForHorizon(principal, periodicRate decimal.Decimal, targetPeriods int) (decimal.Decimal, domain.Schedule, error) {
	exact, err := SolvePaymentForHorizon(principal, periodicRate, targetPeriods)
	if err != nil {
		return decimal.Zero, domain.Schedule{}, err
	}

	hi := money.NewMoneyFromDecimal(exact).CeilCents().Cents()
	best, err := Amortize(principal, periodicRate, money.FromCents(hi).Decimal, targetPeriods)
	if err != nil {
		return decimal.Zero, domain.Schedule{}, fmt.Errorf("rounded closed-form payment: %w", err)
	}
	lo := money.NewMoneyFromDecimal(principal.Mul(periodicRate)).FloorCents().Cents()

	for i := 0; hi-lo > 1; i++ {
		if i == MaxSolverIterations {
			return decimal.Zero, domain.Schedule{}, fmt.Errorf("%w: bisection did not converge in %d iterations", ErrExceedsHorizon, MaxSolverIterations)
		}
		mid := lo + (hi-lo)/2
		schedule, err := Amortize(principal, periodicRate, money.FromCents(mid).Decimal, targetPeriods)
		switch {
		case err == nil:
			hi, best = mid, schedule
		case errors.Is(err, ErrExceedsHorizon), errors.Is(err, ErrNonAmortizing):
			lo = mid
		default:
			return decimal.Zero, domain.Schedule{}, err
		}
	}
	return money.FromCents(hi).Decimal, best, nil
}

// DiscoverHorizon reports how long a supplied payment takes to retire the
// principal. It runs Amortize directly; no search is involved.
func DiscoverHorizon(principal, periodicRate, payment decimal.Decimal, maxPeriods int) (domain.PayoffOutcome, error) {
	schedule, err := Amortize(principal, periodicRate, payment, maxPeriods)
	if err != nil {
		return domain.PayoffOutcome{}, err
	}
	return schedule.Outcome(), nil
}

// ComparePayments amortizes the same loan at two payments, typically a
// minimum payment and a custom one, and reports the difference.
func ComparePayments(principal, periodicRate, basePayment, alternativePayment decimal.Decimal, maxPeriods int) (domain.PayoffComparison, error) {
	base, err := DiscoverHorizon(principal, periodicRate, basePayment, maxPeriods)
	if err != nil {
		return domain.PayoffComparison{}, fmt.Errorf("base payment %s: %w", basePayment.StringFixed(2), err)
	}
	alt, err := DiscoverHorizon(principal, periodicRate, alternativePayment, maxPeriods)
	if err != nil {
		return domain.PayoffComparison{}, fmt.Errorf("alternative payment %s: %w", alternativePayment.StringFixed(2), err)
	}
	return domain.PayoffComparison{
		BasePayment:        basePayment,
		AlternativePayment: alternativePayment,
		Base:               base,
		Alternative:        alt,
		InterestSaved:      base.TotalInterest.Sub(alt.TotalInterest),
		PeriodsSaved:       base.Periods - alt.Periods,
	}, nil
}

// Solve resolves the unknown in terms. When the payment is missing it is
// solved for exactly Periods periods; when the periods are missing the
// supplied payment is amortized for up to maxPeriods.
func Solve(terms domain.LoanTerms, maxPeriods int) (domain.Schedule, error) {
	if err := terms.Validate(); err != nil {
		return domain.Schedule{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !terms.SolvesForPayment() {
		return Amortize(terms.Principal, terms.PeriodicRate, *terms.Payment, maxPeriods)
	}
	payment, err := SolvePaymentForHorizon(terms.Principal, terms.PeriodicRate, terms.Periods)
	if err != nil {
		return domain.Schedule{}, err
	}
	return Amortize(terms.Principal, terms.PeriodicRate, payment, terms.Periods)
}
