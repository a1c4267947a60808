package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rpgo/payoff-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Supported document formats
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// InputParser handles parsing of calculation documents and distribution tables
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// FormatForPath picks the document format from a file extension. Unknown
// extensions are read as YAML.
func FormatForPath(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml", ".tml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// LoadFromFile loads a calculation document from a YAML or TOML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data, FormatForPath(filename))
}

// Parse decodes and validates a calculation document.
func (ip *InputParser) Parse(data []byte, format string) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := decode(data, format, &config); err != nil {
		return nil, err
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func decode(data []byte, format string, out any) error {
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(out); err != nil {
			return fmt.Errorf("failed to parse TOML: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(out); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported document format %q", format)
	}
	return nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config.Defaults.PeriodsPerYear < 0 {
		return fmt.Errorf("default periods per year cannot be negative")
	}
	if config.Defaults.MaxPeriods < 0 {
		return fmt.Errorf("default max periods cannot be negative")
	}

	for i := range config.Tables {
		if err := ValidateTable(&config.Tables[i]); err != nil {
			return fmt.Errorf("table %d validation failed: %w", i, err)
		}
	}

	if len(config.Calculations) == 0 {
		return fmt.Errorf("no calculations provided")
	}

	seen := make(map[string]bool, len(config.Calculations))
	for i := range config.Calculations {
		calc := &config.Calculations[i]
		if calc.Name == "" {
			calc.Name = fmt.Sprintf("%s #%d", calc.Kind, i+1)
		}
		if seen[calc.Name] {
			return fmt.Errorf("calculation name %q is used more than once", calc.Name)
		}
		seen[calc.Name] = true
		if err := ip.validateCalculation(calc); err != nil {
			return fmt.Errorf("calculation %q validation failed: %w", calc.Name, err)
		}
	}

	return nil
}

// validateCalculation checks the fields each kind needs. Domain checks that
// depend on the arithmetic (payment versus interest) are left to the engine,
// which reports them per calculation instead of rejecting the document.
func (ip *InputParser) validateCalculation(calc *domain.Calculation) error {
	if calc.PeriodsPerYear < 0 {
		return fmt.Errorf("periods per year cannot be negative")
	}
	if calc.MaxPeriods < 0 {
		return fmt.Errorf("max periods cannot be negative")
	}

	switch calc.Kind {
	case domain.KindAmortize:
		if err := validateLoan(calc); err != nil {
			return err
		}
		if calc.Payment == nil && calc.MinimumPayment == nil {
			return fmt.Errorf("amortize needs payment or minimum_payment")
		}
		if calc.Payment != nil && calc.MinimumPayment != nil {
			return fmt.Errorf("payment and minimum_payment cannot both be set")
		}
		if mp := calc.MinimumPayment; mp != nil {
			if !mp.Percent.IsPositive() && !mp.IncludeInterest && !mp.Floor.IsPositive() {
				return fmt.Errorf("minimum payment needs a percent, include_interest or a floor")
			}
			if mp.Percent.IsNegative() || mp.Floor.IsNegative() {
				return fmt.Errorf("minimum payment percent and floor cannot be negative")
			}
		}
	case domain.KindSolve:
		if err := validateLoan(calc); err != nil {
			return err
		}
		if calc.Periods <= 0 {
			return fmt.Errorf("solve needs a positive number of periods")
		}
	case domain.KindCompare:
		if err := validateLoan(calc); err != nil {
			return err
		}
		if calc.Payment == nil || calc.AlternativePayment == nil {
			return fmt.Errorf("compare needs payment and alternative_payment")
		}
	case domain.KindPresentValue:
		if !calc.Principal.IsZero() {
			return fmt.Errorf("present-value solves the principal; leave principal unset")
		}
		if err := validateRate(calc); err != nil {
			return err
		}
		if calc.Payment == nil || !calc.Payment.IsPositive() {
			return fmt.Errorf("present-value needs a positive payment")
		}
		if calc.Periods <= 0 {
			return fmt.Errorf("present-value needs a positive number of periods")
		}
	case domain.KindProject:
		if calc.Balance.IsNegative() {
			return fmt.Errorf("balance cannot be negative")
		}
		if calc.GrowthRate.LessThanOrEqual(decimal.NewFromInt(-1)) {
			return fmt.Errorf("growth rate must be above -100%%")
		}
		if calc.Table == "" && len(calc.Tiers) == 0 {
			return fmt.Errorf("project needs a table or rate tiers")
		}
		if calc.Table != "" && len(calc.Tiers) > 0 {
			return fmt.Errorf("table and tiers cannot both be set")
		}
		if calc.MaxSteps < 0 {
			return fmt.Errorf("max steps cannot be negative")
		}
	case "":
		return fmt.Errorf("kind is required")
	default:
		return fmt.Errorf("unknown kind %q (expected amortize, solve, compare, present-value or project)", calc.Kind)
	}

	return nil
}

func validateLoan(calc *domain.Calculation) error {
	if calc.Principal.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("principal must be positive")
	}
	if err := validateRate(calc); err != nil {
		return err
	}
	for _, p := range []*decimal.Decimal{calc.Payment, calc.AlternativePayment} {
		if p != nil && p.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("payment must be positive")
		}
	}
	return nil
}

// validateRate rejects negative rates, and bare fractions above 1 as a
// percentage missing its sign. "390%" is accepted as written.
func validateRate(calc *domain.Calculation) error {
	if calc.AnnualRate.LessThan(decimal.Zero) {
		return fmt.Errorf("annual rate cannot be negative")
	}
	if calc.AnnualRate.GreaterThan(decimal.NewFromInt(1)) && !calc.AnnualRate.WrittenAsPercent() {
		return fmt.Errorf("annual rate %s looks like a percentage; use a fraction (0.065) or a percent sign (6.5%%)", calc.AnnualRate)
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration for testing
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	payment := decimal.RequireFromString("489.10")
	extra := decimal.RequireFromString("589.10")
	budget := decimal.NewFromInt(500)
	start := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	return &domain.Configuration{
		Defaults: domain.Defaults{PeriodsPerYear: 12, MaxPeriods: 600},
		Calculations: []domain.Calculation{
			{
				Name:       "Car loan",
				Kind:       domain.KindAmortize,
				Principal:  decimal.NewFromInt(25000),
				AnnualRate: domain.NewRate(decimal.RequireFromString("0.065")),
				Payment:    &payment,
				StartDate:  &start,
			},
			{
				Name:         "Car loan, five years",
				Kind:         domain.KindSolve,
				Principal:    decimal.NewFromInt(25000),
				AnnualRate:   domain.NewRate(decimal.RequireFromString("0.065")),
				Periods:      60,
				RoundToCents: true,
			},
			{
				Name:               "Car loan, extra $100",
				Kind:               domain.KindCompare,
				Principal:          decimal.NewFromInt(25000),
				AnnualRate:         domain.NewRate(decimal.RequireFromString("0.065")),
				Payment:            &payment,
				AlternativePayment: &extra,
			},
			{
				Name:       "Credit card minimums",
				Kind:       domain.KindAmortize,
				Principal:  decimal.NewFromInt(5000),
				AnnualRate: domain.NewRate(decimal.RequireFromString("0.2299")),
				MinimumPayment: &domain.MinimumPaymentTerms{
					Percent:         decimal.RequireFromString("0.01"),
					IncludeInterest: true,
					Floor:           decimal.NewFromInt(35),
				},
			},
			{
				Name:       "Required distributions",
				Kind:       domain.KindProject,
				Balance:    decimal.NewFromInt(500000),
				GrowthRate: decimal.RequireFromString("0.05"),
				StartIndex: 73,
				Table:      "uniform-lifetime",
				MaxSteps:   30,
			},
			{
				Name:       "What $500 a month borrows",
				Kind:       domain.KindPresentValue,
				AnnualRate: domain.NewRate(decimal.RequireFromString("0.065")),
				Payment:    &budget,
				Periods:    60,
			},
		},
	}
}

// WriteExample writes the example configuration as YAML or TOML.
func (ip *InputParser) WriteExample(filename string) error {
	return ip.SaveConfiguration(ip.CreateExampleConfiguration(), filename)
}

// SaveConfiguration writes a calculation document as YAML or TOML, chosen by
// the file extension. The written file loads back with LoadFromFile.
func (ip *InputParser) SaveConfiguration(cfg *domain.Configuration, filename string) error {
	var buf bytes.Buffer
	switch FormatForPath(filename) {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode TOML: %w", err)
		}
	default:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
