package calculation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rpgo/payoff-calculator/internal/domain"
	"github.com/rpgo/payoff-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

const defaultPeriodsPerYear = 12

// CalculationEngine runs configured calculations against a set of
// distribution tables. Runs never modify the engine, so once its tables are
// registered it is safe for concurrent use.
type CalculationEngine struct {
	Tables map[string]domain.DistributionTable
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine with the given tables.
// Later tables replace earlier ones with the same name.
func NewCalculationEngine(tables ...domain.DistributionTable) *CalculationEngine {
	ce := &CalculationEngine{
		Tables: make(map[string]domain.DistributionTable, len(tables)),
		Logger: NopLogger{},
	}
	for _, t := range tables {
		ce.Tables[t.Name] = t
	}
	return ce
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// RegisterTable validates a table and adds it, replacing any table with the
// same name. It is not safe to call while runs are in flight.
func (ce *CalculationEngine) RegisterTable(table domain.DistributionTable) error {
	if _, err := NewTableRule(table); err != nil {
		return err
	}
	if existing, ok := ce.Tables[table.Name]; ok {
		ce.Logger.Infof("table %s version %s replaced by version %s", table.Name, existing.Version, table.Version)
	}
	ce.Tables[table.Name] = table
	return nil
}

// TableLabels returns "name@version" for every registered table, sorted.
func (ce *CalculationEngine) TableLabels() []string {
	return tableLabels(ce.Tables)
}

func tableLabels(tables map[string]domain.DistributionTable) []string {
	labels := make([]string, 0, len(tables))
	for _, t := range tables {
		labels = append(labels, t.Name+"@"+t.Version)
	}
	sort.Strings(labels)
	return labels
}

// runTables returns the engine's tables with extra laid over a copy of them.
func (ce *CalculationEngine) runTables(extra []domain.DistributionTable) (map[string]domain.DistributionTable, error) {
	tables := make(map[string]domain.DistributionTable, len(ce.Tables)+len(extra))
	for name, t := range ce.Tables {
		tables[name] = t
	}
	for _, t := range extra {
		if _, err := NewTableRule(t); err != nil {
			return nil, fmt.Errorf("register table %s: %w", t.Name, err)
		}
		if existing, ok := tables[t.Name]; ok {
			ce.Logger.Infof("table %s version %s replaced by version %s for this run", t.Name, existing.Version, t.Version)
		}
		tables[t.Name] = t
	}
	return tables, nil
}

// RunCalculations runs every calculation in config and collects the results.
// Tables in config apply to this run only. Engine failures (invalid input,
// non-amortizing payment, exceeded horizon, exhausted rule) are recorded on
// the result; configuration problems such as an unknown table abort the run.
func (ce *CalculationEngine) RunCalculations(ctx context.Context, config *domain.Configuration) (*domain.CalculationReport, error) {
	tables, err := ce.runTables(config.Tables)
	if err != nil {
		return nil, err
	}

	report := &domain.CalculationReport{
		GeneratedAt: nowFunc(),
		Results:     make([]domain.CalculationResult, 0, len(config.Calculations)),
	}
	for _, calc := range config.Calculations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := ce.runCalculation(calc, config.Defaults, tables)
		if err != nil {
			if !IsEngineFailure(err) {
				return nil, fmt.Errorf("calculation %q: %w", calc.Name, err)
			}
			ce.Logger.Warnf("calculation %q failed: %v", calc.Name, err)
			result.Failure = FailureKind(err)
			result.Guidance = Guidance(err)
		}
		report.Results = append(report.Results, result)
	}
	report.Tables = tableLabels(tables)
	return report, nil
}

// RunCalculation dispatches one configured calculation to the engine. On an
// engine failure the partially filled result is returned with the error.
func (ce *CalculationEngine) RunCalculation(calc domain.Calculation, defaults domain.Defaults) (domain.CalculationResult, error) {
	return ce.runCalculation(calc, defaults, ce.Tables)
}

func (ce *CalculationEngine) runCalculation(calc domain.Calculation, defaults domain.Defaults, tables map[string]domain.DistributionTable) (domain.CalculationResult, error) {
	result := domain.CalculationResult{Name: calc.Name, Kind: calc.Kind}

	switch calc.Kind {
	case domain.KindAmortize, domain.KindSolve, domain.KindCompare, domain.KindPresentValue:
		rate, err := PeriodicRate(calc.AnnualRate.Decimal, periodsPerYear(calc, defaults))
		if err != nil {
			return result, err
		}
		result.PeriodicRate = rate
		switch calc.Kind {
		case domain.KindAmortize:
			err = ce.runAmortize(calc, defaults, &result)
		case domain.KindSolve:
			err = ce.runSolve(calc, &result)
		case domain.KindPresentValue:
			err = ce.runPresentValue(calc, &result)
		default:
			err = ce.runCompare(calc, defaults, &result)
		}
		if err == nil && result.Schedule != nil && calc.StartDate != nil {
			assignDueDates(result.Schedule, *calc.StartDate, periodsPerYear(calc, defaults))
		}
		return result, err
	case domain.KindProject:
		return result, ce.runProject(calc, tables, &result)
	default:
		return result, fmt.Errorf("unknown calculation kind %q", calc.Kind)
	}
}

func (ce *CalculationEngine) runAmortize(calc domain.Calculation, defaults domain.Defaults, result *domain.CalculationResult) error {
	maxPeriods := maxPeriods(calc, defaults)
	var (
		schedule domain.Schedule
		err      error
	)
	switch {
	case calc.MinimumPayment != nil:
		policy := MinimumPayment{
			Percent:         calc.MinimumPayment.Percent,
			IncludeInterest: calc.MinimumPayment.IncludeInterest,
			Floor:           calc.MinimumPayment.Floor,
		}
		schedule, err = AmortizeWithPolicy(calc.Principal, result.PeriodicRate, policy, maxPeriods)
	case calc.Payment != nil:
		schedule, err = Solve(domain.LoanTerms{Principal: calc.Principal, PeriodicRate: result.PeriodicRate, Payment: calc.Payment}, maxPeriods)
	default:
		return fmt.Errorf("%w: amortize needs a payment or a minimum payment policy", ErrInvalidInput)
	}
	if err != nil {
		return err
	}
	ce.Logger.Debugf("amortize %q: %d periods, interest %s", calc.Name, schedule.Periods(), schedule.TotalInterest().StringFixed(2))
	setSchedule(result, schedule)
	return nil
}

func (ce *CalculationEngine) runSolve(calc domain.Calculation, result *domain.CalculationResult) error {
	var (
		payment  decimal.Decimal
		schedule domain.Schedule
		err      error
	)
	if calc.RoundToCents {
		payment, schedule, err = SolveRoundedPaymentForHorizon(calc.Principal, result.PeriodicRate, calc.Periods)
	} else {
		schedule, err = Solve(domain.LoanTerms{Principal: calc.Principal, PeriodicRate: result.PeriodicRate, Periods: calc.Periods}, calc.Periods)
		payment = schedule.ScheduledPayment
	}
	if err != nil {
		return err
	}
	ce.Logger.Debugf("solve %q: payment %s over %d periods", calc.Name, payment.StringFixed(4), schedule.Periods())
	setSchedule(result, schedule)
	result.Payment = payment
	return nil
}

// runPresentValue finds how much the payment can borrow over the periods,
// floored to the cent, and amortizes that amount.
func (ce *CalculationEngine) runPresentValue(calc domain.Calculation, result *domain.CalculationResult) error {
	if calc.Payment == nil {
		return fmt.Errorf("%w: present-value needs a payment", ErrInvalidInput)
	}
	principal, schedule, err := SolveBorrowingCapacity(*calc.Payment, result.PeriodicRate, calc.Periods)
	if err != nil {
		return err
	}
	ce.Logger.Debugf("present-value %q: %s borrows %s over %d periods", calc.Name, calc.Payment.StringFixed(2), principal.StringFixed(2), calc.Periods)
	setSchedule(result, schedule)
	result.Principal = &principal
	return nil
}

func (ce *CalculationEngine) runCompare(calc domain.Calculation, defaults domain.Defaults, result *domain.CalculationResult) error {
	if calc.Payment == nil || calc.AlternativePayment == nil {
		return fmt.Errorf("%w: compare needs payment and alternative_payment", ErrInvalidInput)
	}
	cmp, err := ComparePayments(calc.Principal, result.PeriodicRate, *calc.Payment, *calc.AlternativePayment, maxPeriods(calc, defaults))
	if err != nil {
		return err
	}
	ce.Logger.Debugf("compare %q: saves %s interest and %d periods", calc.Name, cmp.InterestSaved.StringFixed(2), cmp.PeriodsSaved)
	result.Payment = *calc.Payment
	result.Comparison = &cmp
	return nil
}

func (ce *CalculationEngine) runProject(calc domain.Calculation, tables map[string]domain.DistributionTable, result *domain.CalculationResult) error {
	rule, label, err := RuleFor(calc, tables)
	if err != nil {
		return err
	}
	result.Table = label

	steps := calc.MaxSteps
	if steps == 0 {
		steps = DefaultProjectionSteps
	}
	projection, err := Project(calc.Balance, rule, calc.GrowthRate, calc.StartIndex, steps)
	if len(projection.Steps) > 0 || err == nil {
		result.Projection = &projection
	}
	if err != nil {
		return err
	}
	ce.Logger.Debugf("project %q: %d steps, ended %s", calc.Name, len(projection.Steps), projection.Terminated)
	return nil
}

// RuleFor builds the distribution rule a projection calculation asks for:
// rate tiers when given, otherwise the named table from tables. A birth year
// defers withdrawals until the RMD start age for that year.
func RuleFor(calc domain.Calculation, tables map[string]domain.DistributionTable) (DistributionRule, string, error) {
	var (
		rule  DistributionRule
		label string
	)
	if len(calc.Tiers) > 0 {
		tiered, err := NewTieredRateRule(calc.Tiers)
		if err != nil {
			return nil, "", err
		}
		rule, label = tiered, "tiers"
	} else {
		table, ok := tables[calc.Table]
		if !ok {
			return nil, "", fmt.Errorf("unknown distribution table %q (available: %v)", calc.Table, tableLabels(tables))
		}
		tr, err := NewTableRule(table)
		if err != nil {
			return nil, "", err
		}
		rule, label = tr, table.Name+"@"+table.Version
	}
	if calc.BirthYear > 0 {
		rule = DeferredRule{StartIndex: dateutil.GetRMDAge(calc.BirthYear), Rule: rule}
	}
	return rule, label, nil
}

func setSchedule(result *domain.CalculationResult, schedule domain.Schedule) {
	outcome := schedule.Outcome()
	result.Schedule = &schedule
	result.Outcome = &outcome
	result.Payment = schedule.ScheduledPayment
}

func assignDueDates(schedule *domain.Schedule, start time.Time, periodsPerYear int) {
	for i := range schedule.Entries {
		due := dateutil.PeriodDate(start, periodsPerYear, schedule.Entries[i].Index)
		schedule.Entries[i].DueDate = &due
	}
}

func periodsPerYear(calc domain.Calculation, defaults domain.Defaults) int {
	if calc.PeriodsPerYear > 0 {
		return calc.PeriodsPerYear
	}
	if defaults.PeriodsPerYear > 0 {
		return defaults.PeriodsPerYear
	}
	return defaultPeriodsPerYear
}

func maxPeriods(calc domain.Calculation, defaults domain.Defaults) int {
	if calc.MaxPeriods > 0 {
		return calc.MaxPeriods
	}
	if defaults.MaxPeriods > 0 {
		return defaults.MaxPeriods
	}
	return DefaultMaxPeriods
}
