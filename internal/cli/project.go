package cli

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rpgo/payoff-calculator/internal/domain"
)

var projectOpts struct {
	balance   decimal.Decimal
	growth    decimal.Decimal
	startAge  int
	table     string
	steps     int
	birthYear int
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project a balance drawn down by a distribution table",
	Long: "Each step withdraws what the table prescribes for the current age, then\n" +
		"grows the remainder. The projection stops when the balance is exhausted,\n" +
		"after --steps steps, or with an error when the table has no entry for an age.",
	Example: "  payoff project --balance 500000 --growth 5% --start-age 73\n" +
		"  payoff project --balance 500000 --growth 5% --start-age 70 --birth-year 1952\n" +
		"  payoff project --balance 800000 --growth 4% --start-age 60 --table vpw --steps 41",
	Args: cobra.NoArgs,
	RunE: runProject,
}

func init() {
	decimalFlag(projectCmd, &projectOpts.balance, "balance", "Starting balance")
	decimalFlag(projectCmd, &projectOpts.growth, "growth", "Growth rate per step, e.g. 0.05 or 5%")
	projectCmd.Flags().IntVar(&projectOpts.startAge, "start-age", 0, "Table index (age) of the first step")
	projectCmd.Flags().StringVar(&projectOpts.table, "table", "uniform-lifetime", "Distribution table name")
	projectCmd.Flags().IntVar(&projectOpts.steps, "steps", 0, "Maximum number of steps (default 50)")
	projectCmd.Flags().IntVar(&projectOpts.birthYear, "birth-year", 0, "Withdraw nothing before the RMD start age for this birth year")
	_ = projectCmd.MarkFlagRequired("balance")
	_ = projectCmd.MarkFlagRequired("start-age")

	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, _ []string) error {
	calc := domain.Calculation{
		Name:       "project",
		Kind:       domain.KindProject,
		Balance:    projectOpts.balance,
		GrowthRate: projectOpts.growth,
		StartIndex: projectOpts.startAge,
		Table:      projectOpts.table,
		MaxSteps:   projectOpts.steps,
		BirthYear:  projectOpts.birthYear,
	}
	return runConfiguration(cmd, singleCalculation(calc))
}
