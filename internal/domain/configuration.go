package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculationKind names the engine operation a configured calculation runs.
type CalculationKind string

const (
	KindAmortize CalculationKind = "amortize"
	KindSolve    CalculationKind = "solve"
	KindCompare  CalculationKind = "compare"
	KindProject  CalculationKind = "project"

	// KindPresentValue solves the principal a payment can retire in Periods.
	KindPresentValue CalculationKind = "present-value"
)

// Configuration is the input document: defaults, extra tables and the calculations to run.
type Configuration struct {
	Defaults     Defaults            `yaml:"defaults" toml:"defaults" json:"defaults"`
	Tables       []DistributionTable `yaml:"tables,omitempty" toml:"tables,omitempty" json:"tables,omitempty"`
	Calculations []Calculation       `yaml:"calculations" toml:"calculations" json:"calculations"`
}

// Defaults apply to every calculation that leaves the field unset.
type Defaults struct {
	PeriodsPerYear int `yaml:"periods_per_year" toml:"periods_per_year" json:"periods_per_year"`
	MaxPeriods     int `yaml:"max_periods" toml:"max_periods" json:"max_periods"`
}

// Calculation is a single configured engine call. Fields not used by Kind are ignored.
type Calculation struct {
	Name string          `yaml:"name" toml:"name" json:"name"`
	Kind CalculationKind `yaml:"kind" toml:"kind" json:"kind"`

	// Loan inputs (amortize, solve, compare, present-value)
	Principal          decimal.Decimal  `yaml:"principal,omitempty" toml:"principal,omitempty" json:"principal,omitempty"`
	AnnualRate         Rate             `yaml:"annual_rate,omitempty" toml:"annual_rate,omitempty" json:"annual_rate,omitempty"`
	PeriodsPerYear     int              `yaml:"periods_per_year,omitempty" toml:"periods_per_year,omitempty" json:"periods_per_year,omitempty"`
	Payment            *decimal.Decimal `yaml:"payment,omitempty" toml:"payment,omitempty" json:"payment,omitempty"`
	AlternativePayment *decimal.Decimal `yaml:"alternative_payment,omitempty" toml:"alternative_payment,omitempty" json:"alternative_payment,omitempty"`
	Periods            int              `yaml:"periods,omitempty" toml:"periods,omitempty" json:"periods,omitempty"`
	RoundToCents       bool             `yaml:"round_to_cents,omitempty" toml:"round_to_cents,omitempty" json:"round_to_cents,omitempty"`
	MaxPeriods         int              `yaml:"max_periods,omitempty" toml:"max_periods,omitempty" json:"max_periods,omitempty"`
	StartDate          *time.Time       `yaml:"start_date,omitempty" toml:"start_date,omitempty" json:"start_date,omitempty"`

	// Minimum-payment policy (credit card payoff) used instead of Payment when set
	MinimumPayment *MinimumPaymentTerms `yaml:"minimum_payment,omitempty" toml:"minimum_payment,omitempty" json:"minimum_payment,omitempty"`

	// Projection inputs
	Balance    decimal.Decimal `yaml:"balance,omitempty" toml:"balance,omitempty" json:"balance,omitempty"`
	GrowthRate decimal.Decimal `yaml:"growth_rate,omitempty" toml:"growth_rate,omitempty" json:"growth_rate,omitempty"`
	StartIndex int             `yaml:"start_index,omitempty" toml:"start_index,omitempty" json:"start_index,omitempty"`
	Table      string          `yaml:"table,omitempty" toml:"table,omitempty" json:"table,omitempty"`
	Tiers      []RateTier      `yaml:"tiers,omitempty" toml:"tiers,omitempty" json:"tiers,omitempty"`
	BirthYear  int             `yaml:"birth_year,omitempty" toml:"birth_year,omitempty" json:"birth_year,omitempty"`
	MaxSteps   int             `yaml:"max_steps,omitempty" toml:"max_steps,omitempty" json:"max_steps,omitempty"`
}

// MinimumPaymentTerms configures a credit-card style minimum payment:
// Percent of the balance (plus the period's interest when IncludeInterest),
// never less than Floor.
type MinimumPaymentTerms struct {
	Percent         decimal.Decimal `yaml:"percent" toml:"percent" json:"percent"`
	IncludeInterest bool            `yaml:"include_interest" toml:"include_interest" json:"include_interest"`
	Floor           decimal.Decimal `yaml:"floor" toml:"floor" json:"floor"`
}
