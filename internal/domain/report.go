package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculationResult holds the output of one configured calculation. Exactly
// one of Schedule, Comparison and Projection is populated on success, and
// Principal is set when it was solved for;
// Failure and Guidance are set when the engine rejected the inputs.
type CalculationResult struct {
	Name         string          `json:"name"`
	Kind         CalculationKind `json:"kind"`
	PeriodicRate decimal.Decimal `json:"periodic_rate"`

	Payment    decimal.Decimal   `json:"payment"`
	Principal  *decimal.Decimal  `json:"principal,omitempty"`
	Schedule   *Schedule         `json:"schedule,omitempty"`
	Outcome    *PayoffOutcome    `json:"outcome,omitempty"`
	Comparison *PayoffComparison `json:"comparison,omitempty"`
	Projection *Projection       `json:"projection,omitempty"`
	Table      string            `json:"table,omitempty"`

	Failure  string `json:"failure,omitempty"`
	Guidance string `json:"guidance,omitempty"`
}

// Failed reports whether the engine rejected this calculation.
func (r CalculationResult) Failed() bool {
	return r.Failure != ""
}

// CalculationReport is the document handed to output formatters.
type CalculationReport struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Tables      []string            `json:"tables,omitempty"`
	Results     []CalculationResult `json:"results"`
}
