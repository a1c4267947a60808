package config

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/rpgo/payoff-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed tables/*.yaml
var embeddedTables embed.FS

// tableFile is the on-disk shape of a table document: either a single table
// at the top level or a list under "tables".
type tableFile struct {
	domain.DistributionTable `yaml:",inline"`
	Tables                   []domain.DistributionTable `yaml:"tables" toml:"tables"`
}

// DefaultTables returns the distribution tables shipped with the calculator,
// sorted by name.
func DefaultTables() ([]domain.DistributionTable, error) {
	names, err := fs.Glob(embeddedTables, "tables/*.yaml")
	if err != nil {
		return nil, err
	}
	var tables []domain.DistributionTable
	for _, name := range names {
		data, err := embeddedTables.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded table %s: %w", name, err)
		}
		parsed, err := ParseTables(data, FormatYAML)
		if err != nil {
			return nil, fmt.Errorf("embedded table %s: %w", path.Base(name), err)
		}
		tables = append(tables, parsed...)
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].Name < tables[j].Name })
	return tables, nil
}

// LoadTables reads one or more distribution tables from a YAML or TOML file.
func LoadTables(filename string) ([]domain.DistributionTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	tables, err := ParseTables(data, FormatForPath(filename))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return tables, nil
}

// ParseTables decodes and validates a table document.
func ParseTables(data []byte, format string) ([]domain.DistributionTable, error) {
	var tf tableFile
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&tf); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &tf); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}

	tables := tf.Tables
	if len(tables) == 0 && tf.Name != "" {
		tables = []domain.DistributionTable{tf.DistributionTable}
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("no distribution tables found")
	}
	for i := range tables {
		if err := ValidateTable(&tables[i]); err != nil {
			return nil, fmt.Errorf("table %d validation failed: %w", i, err)
		}
	}
	return tables, nil
}

// ValidateTable checks a table's shape and sorts its entries by index.
func ValidateTable(table *domain.DistributionTable) error {
	if table.Name == "" {
		return fmt.Errorf("table name is required")
	}
	if table.Version == "" {
		return fmt.Errorf("table %s: version is required", table.Name)
	}
	if len(table.Entries) == 0 {
		return fmt.Errorf("table %s: no entries", table.Name)
	}

	sort.Slice(table.Entries, func(i, j int) bool { return table.Entries[i].Index < table.Entries[j].Index })
	for i, e := range table.Entries {
		if i > 0 && e.Index == table.Entries[i-1].Index {
			return fmt.Errorf("table %s: index %d appears more than once", table.Name, e.Index)
		}
		switch table.Kind {
		case domain.TableKindDivisor:
			if e.Value.LessThanOrEqual(decimal.Zero) {
				return fmt.Errorf("table %s: divisor at %d must be positive", table.Name, e.Index)
			}
		case domain.TableKindRate:
			if e.Value.LessThanOrEqual(decimal.Zero) || e.Value.GreaterThan(decimal.NewFromInt(1)) {
				return fmt.Errorf("table %s: rate at %d must be in (0, 1]", table.Name, e.Index)
			}
		case domain.TableKindFlat:
			if e.Value.LessThan(decimal.Zero) {
				return fmt.Errorf("table %s: amount at %d cannot be negative", table.Name, e.Index)
			}
		default:
			return fmt.Errorf("table %s: unknown kind %q (expected divisor, rate or flat)", table.Name, table.Kind)
		}
	}
	return nil
}

// MergeTables overlays user tables on base tables by name.
func MergeTables(base []domain.DistributionTable, overrides ...domain.DistributionTable) []domain.DistributionTable {
	byName := make(map[string]int, len(base))
	merged := append([]domain.DistributionTable(nil), base...)
	for i, t := range merged {
		byName[t.Name] = i
	}
	for _, t := range overrides {
		if i, ok := byName[t.Name]; ok {
			merged[i] = t
			continue
		}
		byName[t.Name] = len(merged)
		merged = append(merged, t)
	}
	return merged
}
