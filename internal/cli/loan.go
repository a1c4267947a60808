package cli

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rpgo/payoff-calculator/internal/domain"
)

var (
	amortizeLoan loanFlags
	amortizeOpts struct {
		payment     decimal.Decimal
		minPercent  decimal.Decimal
		minFloor    decimal.Decimal
		minInterest bool
	}

	solveLoan loanFlags
	solveOpts struct {
		periods int
		round   bool
	}

	compareLoan loanFlags
	compareOpts struct {
		payment    decimal.Decimal
		altPayment decimal.Decimal
	}

	borrowLoan loanFlags
	borrowOpts struct {
		payment decimal.Decimal
		periods int
	}
)

var amortizeCmd = &cobra.Command{
	Use:   "amortize",
	Short: "Build the payoff schedule for a fixed or minimum payment",
	Example: "  payoff amortize --principal 25000 --annual-rate 6.5% --payment 489.10\n" +
		"  payoff amortize --principal 5000 --annual-rate 0.2299 --min-percent 1% --min-interest --min-floor 35",
	Args: cobra.NoArgs,
	RunE: runAmortize,
}

var solveCmd = &cobra.Command{
	Use:     "solve",
	Short:   "Find the payment that pays off a loan in a given number of periods",
	Example: "  payoff solve --principal 25000 --annual-rate 6.5% --periods 60 --round",
	Args:    cobra.NoArgs,
	RunE:    runSolve,
}

var compareCmd = &cobra.Command{
	Use:     "compare",
	Short:   "Compare the payoff of two payment amounts",
	Example: "  payoff compare --principal 25000 --annual-rate 6.5% --payment 489.10 --alt-payment 589.10",
	Args:    cobra.NoArgs,
	RunE:    runCompare,
}

var borrowCmd = &cobra.Command{
	Use:     "borrow",
	Short:   "Find how much a payment can borrow over a number of periods",
	Example: "  payoff borrow --payment 500 --annual-rate 6.5% --periods 60",
	Args:    cobra.NoArgs,
	RunE:    runBorrow,
}

func init() {
	amortizeLoan.register(amortizeCmd)
	decimalFlag(amortizeCmd, &amortizeOpts.payment, "payment", "Fixed payment per period")
	decimalFlag(amortizeCmd, &amortizeOpts.minPercent, "min-percent", "Minimum payment as a share of the balance, e.g. 2%")
	decimalFlag(amortizeCmd, &amortizeOpts.minFloor, "min-floor", "Lowest minimum payment")
	amortizeCmd.Flags().BoolVar(&amortizeOpts.minInterest, "min-interest", false, "Add the period's interest to the minimum payment")
	amortizeCmd.MarkFlagsMutuallyExclusive("payment", "min-percent")
	amortizeCmd.MarkFlagsMutuallyExclusive("payment", "min-floor")
	amortizeCmd.MarkFlagsMutuallyExclusive("payment", "min-interest")

	solveLoan.register(solveCmd)
	solveCmd.Flags().IntVar(&solveOpts.periods, "periods", 0, "Number of periods to pay off in")
	solveCmd.Flags().BoolVar(&solveOpts.round, "round", false, "Round the payment up to a whole cent")
	_ = solveCmd.MarkFlagRequired("periods")

	compareLoan.register(compareCmd)
	decimalFlag(compareCmd, &compareOpts.payment, "payment", "Base payment")
	decimalFlag(compareCmd, &compareOpts.altPayment, "alt-payment", "Alternative payment")
	_ = compareCmd.MarkFlagRequired("payment")
	_ = compareCmd.MarkFlagRequired("alt-payment")

	borrowLoan.registerTerms(borrowCmd)
	decimalFlag(borrowCmd, &borrowOpts.payment, "payment", "Payment per period")
	borrowCmd.Flags().IntVar(&borrowOpts.periods, "periods", 0, "Number of periods")
	_ = borrowCmd.MarkFlagRequired("payment")
	_ = borrowCmd.MarkFlagRequired("periods")

	rootCmd.AddCommand(amortizeCmd, solveCmd, compareCmd, borrowCmd)
}

func runAmortize(cmd *cobra.Command, _ []string) error {
	calc, err := amortizeLoan.calculation("amortize", domain.KindAmortize)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("min-percent") || cmd.Flags().Changed("min-floor") || amortizeOpts.minInterest {
		calc.MinimumPayment = &domain.MinimumPaymentTerms{
			Percent:         amortizeOpts.minPercent,
			IncludeInterest: amortizeOpts.minInterest,
			Floor:           amortizeOpts.minFloor,
		}
	} else {
		calc.Payment = optional(amortizeOpts.payment)
	}
	return runConfiguration(cmd, singleCalculation(calc))
}

func runSolve(cmd *cobra.Command, _ []string) error {
	calc, err := solveLoan.calculation("solve", domain.KindSolve)
	if err != nil {
		return err
	}
	calc.Periods = solveOpts.periods
	calc.RoundToCents = solveOpts.round
	return runConfiguration(cmd, singleCalculation(calc))
}

func runCompare(cmd *cobra.Command, _ []string) error {
	calc, err := compareLoan.calculation("compare", domain.KindCompare)
	if err != nil {
		return err
	}
	calc.Payment = optional(compareOpts.payment)
	calc.AlternativePayment = optional(compareOpts.altPayment)
	return runConfiguration(cmd, singleCalculation(calc))
}

func runBorrow(cmd *cobra.Command, _ []string) error {
	calc, err := borrowLoan.calculation("borrow", domain.KindPresentValue)
	if err != nil {
		return err
	}
	calc.Payment = optional(borrowOpts.payment)
	calc.Periods = borrowOpts.periods
	return runConfiguration(cmd, singleCalculation(calc))
}
