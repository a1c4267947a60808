// Package cli implements the payoff command tree.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rpgo/payoff-calculator/internal/calculation"
	"github.com/rpgo/payoff-calculator/internal/config"
	"github.com/rpgo/payoff-calculator/internal/domain"
	"github.com/rpgo/payoff-calculator/internal/output"
	"github.com/rpgo/payoff-calculator/pkg/logging"
)

var (
	flagFormat    string
	flagOutputDir string
	flagTableFile string
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "payoff",
	Short: "Loan payoff and withdrawal projection calculator",
	Long: "Amortize loans, solve for the payment that meets a term, compare payment\n" +
		"strategies and project balances drawn down by a distribution table.",
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// Execute is the main entry point called from main.go.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "console", "Output format: console, console-lite, csv, detailed-csv, json, all")
	rootCmd.PersistentFlags().StringVarP(&flagOutputDir, "output-dir", "o", "", "Write timestamped report files here instead of stdout")
	rootCmd.PersistentFlags().StringVar(&flagTableFile, "table-file", "", "YAML or TOML file with extra distribution tables")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging (overrides LOG_LEVEL)")
}

var logger = slog.Default()

func setupLogging(cmd *cobra.Command, _ []string) error {
	if flagVerbose {
		logger = logging.SetupWithLevel(cmd.ErrOrStderr(), slog.LevelDebug)
		return nil
	}
	logger = logging.Setup(cmd.ErrOrStderr())
	return nil
}

// loadTables returns the embedded tables with any --table-file tables merged over them.
func loadTables() ([]domain.DistributionTable, error) {
	tables, err := config.DefaultTables()
	if err != nil {
		return nil, fmt.Errorf("load default tables: %w", err)
	}
	if flagTableFile == "" {
		return tables, nil
	}
	extra, err := config.LoadTables(flagTableFile)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded table file", "path", flagTableFile, "tables", len(extra))
	return config.MergeTables(tables, extra...), nil
}

func newEngine() (*calculation.CalculationEngine, error) {
	tables, err := loadTables()
	if err != nil {
		return nil, err
	}
	eng := calculation.NewCalculationEngine(tables...)
	eng.SetLogger(logging.NewCalcLogger(logger))
	return eng, nil
}

// runConfiguration validates cfg, runs it and emits the report. Calculations
// the engine rejected are rendered like any other result, then reported as
// an error so the exit status is non-zero.
func runConfiguration(cmd *cobra.Command, cfg *domain.Configuration) error {
	if err := config.NewInputParser().ValidateConfiguration(cfg); err != nil {
		return err
	}
	eng, err := newEngine()
	if err != nil {
		return err
	}
	report, err := eng.RunCalculations(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if err := emit(cmd, cfg, report); err != nil {
		return err
	}

	failed := 0
	for _, r := range report.Results {
		if r.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d calculations failed", failed, len(report.Results))
	}
	return nil
}

// emit renders report to stdout, or with --output-dir or --format all writes
// report files together with the input document they were computed from.
func emit(cmd *cobra.Command, cfg *domain.Configuration, report *domain.CalculationReport) error {
	if flagOutputDir != "" || output.NormalizeFormatName(flagFormat) == "all" {
		dir := flagOutputDir
		if dir == "" {
			dir = "."
		}
		files, err := output.GenerateReport(report, flagFormat, dir)
		for _, f := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "  Wrote %s\n", f)
		}
		if err != nil {
			return err
		}
		input := filepath.Join(dir, "payoff_input_"+report.GeneratedAt.Format("20060102_150405")+".yaml")
		if err := config.NewInputParser().SaveConfiguration(cfg, input); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  Wrote %s\n", input)
		return nil
	}
	data, err := output.Render(flagFormat, report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
