package calculation

import "errors"

// Failure sentinels returned (wrapped) by the engine. Callers test with errors.Is.
var (
	// ErrInvalidInput reports a non-positive principal, a non-positive target
	// horizon, a negative rate or another argument outside the engine's domain.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNonAmortizing reports a payment that does not cover the period's interest.
	ErrNonAmortizing = errors.New("payment does not cover interest")
	// ErrExceedsHorizon reports a balance still outstanding at the period cap.
	ErrExceedsHorizon = errors.New("payoff not reached within period cap")
	// ErrRuleExhausted reports a projection index outside the distribution rule's domain.
	ErrRuleExhausted = errors.New("distribution rule exhausted")
)

// FailureKind returns a stable tag for an engine failure, or "" when err is
// nil or not an engine failure.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrNonAmortizing):
		return "non_amortizing"
	case errors.Is(err, ErrExceedsHorizon):
		return "exceeds_horizon"
	case errors.Is(err, ErrRuleExhausted):
		return "rule_exhausted"
	default:
		return ""
	}
}

// IsEngineFailure reports whether err is one of the recoverable engine failures.
func IsEngineFailure(err error) bool {
	return FailureKind(err) != ""
}

// Guidance returns a message suitable for showing the user next to a failed
// calculation.
func Guidance(err error) string {
	switch FailureKind(err) {
	case "invalid_input":
		return "Check the amounts entered: principal and term must be positive and rates cannot be negative."
	case "non_amortizing":
		return "This payment will never pay off the balance. Increase the payment above the interest charged each period."
	case "exceeds_horizon":
		return "This payment does not pay off the balance within the maximum term. Increase the payment or extend the term."
	case "rule_exhausted":
		return "The withdrawal table does not cover every age or tier in the projection. Shorten the projection or supply a table that covers the range."
	default:
		return ""
	}
}
