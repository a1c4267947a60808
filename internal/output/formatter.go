package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rpgo/payoff-calculator/internal/domain"
)

// Formatter renders a calculation report. Implementations are pure: the same
// report always yields the same bytes.
type Formatter interface {
	Format(report *domain.CalculationReport) ([]byte, error)
	// Name is the canonical format name users select it by.
	Name() string
}

// FormatterFunc lets a plain function be registered as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.CalculationReport) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.CalculationReport) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                                       { return ff.ID }

var (
	registryMu sync.RWMutex
	registry   = map[string]Formatter{}
)

func init() {
	for _, f := range []Formatter{
		ConsoleVerboseFormatter{},
		ConsoleFormatter{},
		CSVSummarizer{},
		CSVDetailedExporter{},
		JSONFormatter{},
	} {
		RegisterFormatter(f)
	}
}

// RegisterFormatter adds f under its name, replacing any formatter already
// registered with that name.
func RegisterFormatter(f Formatter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(f.Name())] = f
}

// GetFormatterByName returns the formatter for name or one of its aliases,
// or nil when none matches.
func GetFormatterByName(name string) Formatter {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[NormalizeFormatName(name)]
}

// Render formats report with the named formatter.
func Render(name string, report *domain.CalculationReport) ([]byte, error) {
	f := GetFormatterByName(name)
	if f == nil {
		return nil, unsupportedFormat(name)
	}
	return f.Format(report)
}

// WriteFormatted runs f and writes the result to dir (the working directory
// when empty) as payoff_report_<stamp>.<ext>, stamped with the report time.
func WriteFormatted(f Formatter, report *domain.CalculationReport, dir, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	stamp := report.GeneratedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}
	filename := filepath.Join(dir, "payoff_report_"+stamp.Format("20060102_150405")+"."+ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	return filename, nil
}

// formatAliases maps user-friendly synonyms to canonical names.
var formatAliases = map[string]string{
	"verbose":         "console",
	"console-verbose": "console",
	"table":           "console",
	"lite":            "console-lite",
	"summary":         "console-lite",
	"csv-summary":     "csv",
	"csv-detailed":    "detailed-csv",
	"schedule-csv":    "detailed-csv",
	"json-pretty":     "json",
}

// NormalizeFormatName lowercases name and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := formatAliases[n]; ok {
		return canonical
	}
	return n
}

// AvailableFormatterNames returns the registered names, sorted.
func AvailableFormatterNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the alias names, sorted.
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for a := range formatAliases {
		aliases = append(aliases, a)
	}
	sort.Strings(aliases)
	return aliases
}

func unsupportedFormat(format string) error {
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}
