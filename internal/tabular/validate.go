package tabular

import (
	"fmt"
	"sort"
)

// ValidationResult reports a resource's structural health before loading.
// Errors make the resource unusable; warnings are informational. Returning
// the report instead of raising lets a caller check a whole batch of
// resources before any loading begins.
type ValidationResult struct {
	Valid           bool              `json:"valid"`
	Resource        string            `json:"resource"`
	RowCount        int               `json:"row_count"`
	ColumnCount     int               `json:"column_count"`
	DetectedColumns []string          `json:"detected_columns,omitempty"`
	MappedColumns   map[string]string `json:"mapped_columns,omitempty"`
	UnmappedColumns []string          `json:"unmapped_columns,omitempty"`
	Errors          []string          `json:"errors,omitempty"`
	Warnings        []string          `json:"warnings,omitempty"`
}

// Validate checks that the table's headers cover the required canonical key
// and reports how every column maps. requiredKey is the one canonical field
// whose absence is a hard failure (e.g. the document-number field for a
// header table, the preceding-document field for a flow table).
func Validate(table *Table, fields FieldMap, requiredKey string) ValidationResult {
	result := ValidationResult{
		Valid:         true,
		Resource:      table.Name,
		RowCount:      len(table.Rows),
		ColumnCount:   len(table.Headers),
		MappedColumns: map[string]string{},
	}

	hasKey := false
	for _, header := range table.Headers {
		result.DetectedColumns = append(result.DetectedColumns, header)
		canonical, ok := fields.Resolve(header)
		if !ok {
			result.UnmappedColumns = append(result.UnmappedColumns, header)
			continue
		}
		result.MappedColumns[header] = canonical
		if canonical == requiredKey {
			hasKey = true
		}
	}

	if requiredKey != "" && !hasKey {
		spellings := fields.Spellings(requiredKey)
		sort.Strings(spellings)
		result.Errors = append(result.Errors, fmt.Sprintf(
			"required field %q not found, expected one of %v", requiredKey, spellings))
		result.Valid = false
	}

	if len(result.UnmappedColumns) > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"unmapped columns kept under convention names: %v", result.UnmappedColumns))
	}

	return result
}
