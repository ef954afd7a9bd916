package tabular

import (
	"strconv"
	"strings"

	"github.com/procmine/docflow/internal/domain"
)

// nullTokens are the cell values that normalize to an explicit absent value.
// Matching is case-insensitive.
var nullTokens = map[string]bool{
	"NULL": true,
	"NA":   true,
	"N/A":  true,
	"#N/A": true,
}

// Normalize maps a table's rows onto the canonical field vocabulary.
// stringFields lists canonical names whose values stay verbatim strings
// (document numbers, item numbers, material ids — anywhere leading zeros or
// non-numeric characters are significant); everything else goes through
// CoerceValue. Headers that the field map does not know keep their
// by-convention name so unexpected columns remain inspectable.
func Normalize(table *Table, fields FieldMap, stringFields map[string]bool) []domain.Record {
	resolved := make([]string, len(table.Headers))
	for i, header := range table.Headers {
		if canonical, ok := fields.Resolve(header); ok {
			resolved[i] = canonical
		} else {
			resolved[i] = NormalizeHeader(header)
		}
	}

	records := make([]domain.Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		record := make(domain.Record, len(resolved))
		for i, name := range resolved {
			if i >= len(row) || name == "" {
				continue
			}
			raw := strings.TrimSpace(row[i])
			if stringFields[name] {
				if raw != "" {
					record[name] = raw
				}
				continue
			}
			if value := CoerceValue(raw); value != nil {
				record[name] = value
			}
		}
		records = append(records, record)
	}
	return records
}

// CoerceValue converts a raw cell to its typed value: int64 for pure-digit
// strings, float64 for decimals (a decimal comma without a dot is normalized
// to dot-decimal first, remaining commas are treated as thousands
// separators), nil for empty cells and null tokens, and the trimmed string
// otherwise.
func CoerceValue(raw string) any {
	value := strings.TrimSpace(raw)
	if value == "" || nullTokens[strings.ToUpper(value)] {
		return nil
	}

	if isDigits(value) {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}

	numeric := value
	if strings.Contains(numeric, ",") && !strings.Contains(numeric, ".") {
		numeric = strings.ReplaceAll(numeric, ",", ".")
	}
	numeric = strings.ReplaceAll(numeric, ",", "")
	if f, err := strconv.ParseFloat(numeric, 64); err == nil {
		return f
	}

	return value
}

func isDigits(value string) bool {
	digits := strings.TrimPrefix(value, "-")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
