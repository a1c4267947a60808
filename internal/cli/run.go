package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/payoff-calculator/internal/config"
	"github.com/rpgo/payoff-calculator/internal/domain"
)

var runCmd = &cobra.Command{
	Use:   "run CONFIG",
	Short: "Run every calculation in a YAML or TOML document",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

var exampleCmd = &cobra.Command{
	Use:   "example FILE",
	Short: "Write an example calculation document (.yaml or .toml)",
	Args:  cobra.ExactArgs(1),
	RunE:  runExample,
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the available distribution tables",
	Args:  cobra.NoArgs,
	RunE:  runTables,
}

func init() {
	rootCmd.AddCommand(runCmd, exampleCmd, tablesCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewInputParser().LoadFromFile(args[0])
	if err != nil {
		return err
	}
	logger.Info("loaded configuration", "path", args[0], "calculations", len(cfg.Calculations))
	return runConfiguration(cmd, cfg)
}

func runExample(cmd *cobra.Command, args []string) error {
	if err := config.NewInputParser().WriteExample(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Wrote example configuration to %s\n", args[0])
	return nil
}

func runTables(cmd *cobra.Command, _ []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %-20s %-12s %-8s %-9s %s\n", "Name", "Version", "Kind", "Range", "Source")
	for _, t := range tables {
		lo, hi := t.Range()
		fmt.Fprintf(out, "  %-20s %-12s %-8s %-9s %s\n", t.Name, t.Version, t.Kind, fmt.Sprintf("%d-%d", lo, hi), describeSource(t))
	}
	return nil
}

func describeSource(t domain.DistributionTable) string {
	if t.Source == "" {
		return "-"
	}
	return t.Source
}
