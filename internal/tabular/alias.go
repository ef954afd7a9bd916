package tabular

import "strings"

// FieldMap resolves raw column headers to canonical field names. One map is
// built per source schema at initialization; it folds together the technical
// codes, their upper-case forms and the natural-language column titles that
// different export tools emit for the same field.
type FieldMap struct {
	byAlias map[string]string
}

// NewFieldMap builds a FieldMap from canonical-name → accepted-spellings.
// The canonical name itself is always accepted.
func NewFieldMap(aliases map[string][]string) FieldMap {
	byAlias := make(map[string]string)
	for canonical, spellings := range aliases {
		byAlias[canonical] = canonical
		for _, spelling := range spellings {
			byAlias[spelling] = canonical
		}
	}
	return FieldMap{byAlias: byAlias}
}

// Resolve maps a trimmed header to its canonical name. Exact spellings match
// case-sensitively; unknown headers report ok=false so callers can fall back
// to NormalizeHeader instead of dropping the column.
func (m FieldMap) Resolve(header string) (string, bool) {
	canonical, ok := m.byAlias[strings.TrimSpace(header)]
	return canonical, ok
}

// Spellings returns every accepted spelling for a canonical field, for use in
// validation error messages.
func (m FieldMap) Spellings(canonical string) []string {
	var spellings []string
	for alias, name := range m.byAlias {
		if name == canonical {
			spellings = append(spellings, alias)
		}
	}
	return spellings
}

// NormalizeHeader converts an unmapped header to a by-convention field name:
// lower-cased, spaces to underscores. The column stays inspectable instead of
// being discarded.
func NormalizeHeader(header string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(header)), " ", "_")
}
