package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/payoff-calculator/internal/domain"
)

// execute runs the root command with args. Flag variables are package level,
// so every flag is put back to its default first.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func readCSV(t *testing.T, out string) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestAmortizeCommand(t *testing.T) {
	out, err := execute(t, "amortize", "--principal", "25000", "--annual-rate", "6.5%", "--payment", "489.10", "--format", "console-lite")
	require.NoError(t, err)
	assert.Contains(t, out, "amortize: Payment=$489.10 Periods=61 Interest=$4349.82")
}

func TestAmortizeCommand_StartDate(t *testing.T) {
	out, err := execute(t, "amortize", "--principal", "1200", "--annual-rate", "0", "--payment", "100",
		"--start-date", "2025-01-15", "--format", "detailed-csv")
	require.NoError(t, err)

	records := readCSV(t, out)
	require.Len(t, records, 13)
	assert.Equal(t, "2025-02-15", records[1][3])
	assert.Equal(t, "2026-01-15", records[12][3])
}

func TestAmortizeCommand_MinimumPayment(t *testing.T) {
	out, err := execute(t, "amortize", "--principal", "5000", "--annual-rate", "0.24", "--min-percent", "2%", "--min-interest", "--min-floor", "25", "--format", "detailed-csv")
	require.NoError(t, err)

	records := readCSV(t, out)
	require.Greater(t, len(records), 2)
	assert.Equal(t, "200.00", records[1][4], "2% of 5000 plus 100 interest")
}

func TestAmortizeCommand_NonAmortizing(t *testing.T) {
	out, err := execute(t, "amortize", "--principal", "10000", "--annual-rate", "0.10", "--payment", "50", "--format", "console-lite")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 calculations failed")
	assert.Contains(t, out, "amortize: FAILED non_amortizing")
}

func TestAmortizeCommand_InputErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing principal", []string{"amortize", "--annual-rate", "0.05", "--payment", "10"}, `required flag(s) "principal" not set`},
		{"not a number", []string{"amortize", "--principal", "lots", "--annual-rate", "0.05", "--payment", "10"}, "not a number"},
		{"percent without sign", []string{"amortize", "--principal", "1000", "--annual-rate", "6.5", "--payment", "10"}, "looks like a percentage"},
		{"no payment", []string{"amortize", "--principal", "1000", "--annual-rate", "0.05"}, "amortize needs payment or minimum_payment"},
		{"bad date", []string{"amortize", "--principal", "1000", "--annual-rate", "0.05", "--payment", "10", "--start-date", "01/02/2025"}, "expected YYYY-MM-DD"},
		{"payment and policy", []string{"amortize", "--principal", "1000", "--annual-rate", "0.05", "--payment", "10", "--min-floor", "25"}, "none of the others can be"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestAmortizeCommand_RateAboveHundredPercent(t *testing.T) {
	out, err := execute(t, "amortize", "--principal", "500", "--annual-rate", "390%", "--payment", "200", "--periods-per-year", "26", "--format", "console-lite")
	require.NoError(t, err)
	assert.Contains(t, out, "amortize: Payment=$200.00 Periods=4")
}

func TestBorrowCommand(t *testing.T) {
	out, err := execute(t, "borrow", "--payment", "500", "--annual-rate", "6.5%", "--periods", "60", "--format", "console-lite")
	require.NoError(t, err)
	assert.Contains(t, out, "borrow: Borrows=$25554.33 Payment=$500.00 Periods=60")

	out, err = execute(t, "borrow", "--payment", "500", "--annual-rate", "0", "--periods", "12", "--format", "csv")
	require.NoError(t, err)
	records := readCSV(t, out)
	require.Len(t, records, 2)
	assert.Equal(t, "6000.00", records[1][15])

	_, err = execute(t, "borrow", "--payment", "500", "--annual-rate", "0.065")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "periods" not set`)
}

func TestSolveCommand(t *testing.T) {
	out, err := execute(t, "solve", "--principal", "25000", "--annual-rate", "0.065", "--periods", "60", "--round", "--format", "json")
	require.NoError(t, err)

	var report domain.CalculationReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Results, 1)
	assert.Equal(t, "489.16", report.Results[0].Payment.StringFixed(2))
	assert.Equal(t, 60, report.Results[0].Outcome.Periods)
}

func TestCompareCommand(t *testing.T) {
	out, err := execute(t, "compare", "--principal", "25000", "--annual-rate", "6.5%", "--payment", "$489.10", "--alt-payment", "589.10", "--format", "csv")
	require.NoError(t, err)

	records := readCSV(t, out)
	require.Len(t, records, 2)
	assert.Equal(t, "49", records[1][5])
	assert.Equal(t, "865.66", records[1][9])
	assert.Equal(t, "12", records[1][10])
}

func TestProjectCommand(t *testing.T) {
	out, err := execute(t, "project", "--balance", "500000", "--growth", "5%", "--start-age", "73", "--steps", "3", "--format", "detailed-csv")
	require.NoError(t, err)

	records := readCSV(t, out)
	require.Len(t, records, 4)
	assert.Equal(t, "73", records[1][2])
	assert.Equal(t, "18867.92", records[1][7])
}

func TestProjectCommand_BirthYearDefers(t *testing.T) {
	out, err := execute(t, "project", "--balance", "100000", "--start-age", "70", "--birth-year", "1952", "--steps", "4", "--format", "detailed-csv")
	require.NoError(t, err)

	records := readCSV(t, out)
	require.Len(t, records, 5)
	for _, row := range records[1:4] {
		assert.Equal(t, "0.00", row[7], "no withdrawal before age 73")
	}
	assert.Equal(t, "3773.58", records[4][7])
}

func TestProjectCommand_UnknownTable(t *testing.T) {
	_, err := execute(t, "project", "--balance", "1000", "--start-age", "73", "--table", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown distribution table "nope"`)
}

func TestProjectCommand_TableFile(t *testing.T) {
	out, err := execute(t, "project", "--balance", "30000", "--start-age", "60", "--table", "bridge", "--steps", "2",
		"--table-file", filepath.Join("testdata", "tables.yaml"), "--format", "console-lite")
	require.NoError(t, err)
	assert.Contains(t, out, "project: Steps=2 Withdrawn=$24000.00 Final=$6000.00")
}

func TestTablesCommand(t *testing.T) {
	out, err := execute(t, "tables")
	require.NoError(t, err)
	assert.Contains(t, out, "uniform-lifetime")
	assert.Contains(t, out, "72-120")
	assert.Contains(t, out, "vpw")
	assert.Contains(t, out, "55-100")

	out, err = execute(t, "tables", "--table-file", filepath.Join("testdata", "tables.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "2026-draft")
	assert.NotContains(t, out, "72-120", "file tables replace embedded ones by name")
	assert.Contains(t, out, "fixed bridge withdrawals")
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", filepath.Join("testdata", "run.yaml"), "--format", "console-lite")
	require.NoError(t, err)
	assert.Contains(t, out, "Truck: Payment=$489.10 Periods=61")
	assert.Contains(t, out, "Truck in five: Payment=$489.16 Periods=60")

	_, err = execute(t, "run", filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestExampleThenRun(t *testing.T) {
	for _, name := range []string{"example.yaml", "example.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			out, err := execute(t, "example", path)
			require.NoError(t, err)
			assert.Contains(t, out, path)

			out, err = execute(t, "run", path, "--format", "console")
			require.NoError(t, err)
			assert.Contains(t, out, "6 succeeded, 0 failed")
		})
	}
}

func TestOutputDir(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "solve", "--principal", "1000", "--annual-rate", "0.12", "--periods", "12", "--format", "all", "--output-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(out, "Wrote "))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)

	// the saved input document reruns to the same answer
	inputs, err := filepath.Glob(filepath.Join(dir, "payoff_input_*.yaml"))
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	out, err = execute(t, "run", inputs[0], "--format", "console-lite")
	require.NoError(t, err)
	assert.Contains(t, out, "solve: Payment=$88.85 Periods=12")
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := execute(t, "solve", "--principal", "1000", "--annual-rate", "0.12", "--periods", "12", "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}
