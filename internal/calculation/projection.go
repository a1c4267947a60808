package calculation

import (
	"fmt"

	"github.com/rpgo/payoff-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// DefaultProjectionSteps is used when a caller leaves the step cap unset.
	DefaultProjectionSteps = 50
	// MaxProjectionSteps bounds any caller-supplied step cap.
	MaxProjectionSteps = 1200
)

// Project steps a balance forward under a withdrawal rule. Each step withdraws
// rule.Withdrawal(index, balance), never more than the balance, and grows the
// remainder: ending = (balance - withdrawal) * (1 + growthRate).
//
// The projection ends when the balance reaches zero, after maxSteps steps, or
// when the rule has no entry for the current index. In the last case the
// steps computed so far are returned together with an error wrapping
// ErrRuleExhausted.
func Project(initialBalance decimal.Decimal, rule DistributionRule, growthRate decimal.Decimal, startIndex, maxSteps int) (domain.Projection, error) {
	if initialBalance.IsNegative() {
		return domain.Projection{}, fmt.Errorf("%w: initial balance cannot be negative, got %s", ErrInvalidInput, initialBalance)
	}
	if rule == nil {
		return domain.Projection{}, fmt.Errorf("%w: distribution rule is required", ErrInvalidInput)
	}
	if growthRate.LessThanOrEqual(one.Neg()) {
		return domain.Projection{}, fmt.Errorf("%w: growth rate must be above -100%%, got %s", ErrInvalidInput, growthRate)
	}
	if maxSteps <= 0 || maxSteps > MaxProjectionSteps {
		return domain.Projection{}, fmt.Errorf("%w: step cap must be between 1 and %d, got %d", ErrInvalidInput, MaxProjectionSteps, maxSteps)
	}

	projection := domain.Projection{Steps: make([]domain.ProjectionStep, 0, maxSteps)}
	balance := initialBalance
	if !balance.IsPositive() {
		projection.Terminated = domain.TerminatedDepleted
		return projection, nil
	}

	for step := 0; step < maxSteps; step++ {
		index := startIndex + step

		withdrawal, err := rule.Withdrawal(index, balance)
		if err != nil {
			projection.Terminated = domain.TerminatedRuleEnd
			return projection, err
		}
		withdrawal = decimal.Max(decimal.Zero, decimal.Min(withdrawal, balance)).Round(internalPlaces)

		remaining := balance.Sub(withdrawal)
		growth := remaining.Mul(growthRate).Round(internalPlaces)
		ending := remaining.Add(growth)

		projection.Steps = append(projection.Steps, domain.ProjectionStep{
			Index:            index,
			BeginningBalance: balance,
			Withdrawal:       withdrawal,
			Growth:           growth,
			EndingBalance:    ending,
		})

		balance = ending
		if !balance.IsPositive() {
			projection.Terminated = domain.TerminatedDepleted
			return projection, nil
		}
	}

	projection.Terminated = domain.TerminatedMaxSteps
	return projection, nil
}
