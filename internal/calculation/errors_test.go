package calculation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailureKindAndGuidance(t *testing.T) {
	tests := []struct {
		err      error
		kind     string
		guidance string
	}{
		{fmt.Errorf("%w: principal", ErrInvalidInput), "invalid_input", "principal and term must be positive"},
		{fmt.Errorf("outer: %w", fmt.Errorf("%w: 50 < 83", ErrNonAmortizing)), "non_amortizing", "will never pay off"},
		{fmt.Errorf("%w: cap", ErrExceedsHorizon), "exceeds_horizon", "within the maximum term"},
		{fmt.Errorf("%w: age 121", ErrRuleExhausted), "rule_exhausted", "does not cover every age"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			assert.Equal(t, tt.kind, FailureKind(tt.err))
			assert.True(t, IsEngineFailure(tt.err))
			assert.Contains(t, Guidance(tt.err), tt.guidance)
		})
	}

	other := errors.New("disk full")
	assert.Empty(t, FailureKind(other))
	assert.False(t, IsEngineFailure(other))
	assert.Empty(t, Guidance(other))
	assert.Empty(t, FailureKind(nil))
}
