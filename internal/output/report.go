package output

import (
	"errors"

	"github.com/rpgo/payoff-calculator/internal/domain"
)

// ErrUnsupportedFormat is returned for a format name no formatter answers to.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// extensionFor maps a canonical formatter name to a file extension.
func extensionFor(name string) string {
	switch name {
	case "console", "console-lite":
		return "txt"
	case "csv", "detailed-csv":
		return "csv"
	default:
		return name
	}
}

// GenerateReport writes report to timestamped files in dir and returns their
// names. "all" writes the console, summary CSV and detailed CSV renderings.
func GenerateReport(report *domain.CalculationReport, format, dir string) ([]string, error) {
	var formatters []Formatter
	if NormalizeFormatName(format) == "all" {
		formatters = []Formatter{ConsoleVerboseFormatter{}, CSVSummarizer{}, CSVDetailedExporter{}}
	} else if f := GetFormatterByName(format); f != nil {
		formatters = []Formatter{f}
	} else {
		// enrich error with available formatters and aliases
		return nil, unsupportedFormat(format)
	}

	var written []string
	for _, f := range formatters {
		ext := extensionFor(f.Name())
		if f.Name() == "detailed-csv" && len(formatters) > 1 {
			ext = "detail.csv"
		}
		name, err := WriteFormatted(f, report, dir, ext)
		if err != nil {
			return written, err
		}
		written = append(written, name)
	}
	return written, nil
}
