package table

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrMissingColumns is returned when a base table resolves too few of
// the essential columns to be usable.
var ErrMissingColumns = errors.New("missing essential columns")

// Canonical base-table fields and their recognized spellings. Matching
// is case-insensitive and exact per alias.
var BaseColumnAliases = map[string][]string{
	"Firma1":              {"Firma1", "firma1", "company", "company_name", "company name"},
	"Ort":                 {"Ort", "ort", "location", "city", "stadt"},
	"Top1_Machine":        {"Top1_Machine", "top1_machine", "top1machine", "top_machine"},
	"URL":                 {"URL", "url", "website", "webpage", "web"},
	"Maschinen_Park_Size": {"Maschinen_Park_Size", "maschinenpark", "maschinen_park_size", "park_size"},
	"Sachanlagen":         {"Sachanlagen", "sachanlagen", "anlagen", "assets"},
}

// BaseColumnOrder fixes the canonical column order; the first four are
// the essential ones a base table cannot do without.
var BaseColumnOrder = []string{"Firma1", "Ort", "Top1_Machine", "URL", "Maschinen_Park_Size", "Sachanlagen"}

const essentialBaseColumns = 4

// CompanyNameAliases are accepted spellings for the source table's
// company-name column.
var CompanyNameAliases = []string{"Company name", "company_name", "company", "firma1", "name"}

// SourceURLPriority is the fixed priority list of URL-like column names
// checked on the source table.
var SourceURLPriority = []string{"Website", "Company URL", "Company Url", "URL", "website", "url"}

// FindColumn returns the actual column name matching any alias,
// case-insensitively, honoring alias order.
func FindColumn(t *Table, aliases []string) (string, bool) {
	lower := make(map[string]string, len(t.Columns))
	for _, col := range t.Columns {
		key := strings.ToLower(col)
		if _, exists := lower[key]; !exists {
			lower[key] = col
		}
	}
	for _, alias := range aliases {
		if actual, ok := lower[strings.ToLower(alias)]; ok {
			return actual, true
		}
	}
	return "", false
}

// ResolveBaseColumns renames recognized base columns to their canonical
// names and reports which canonical fields are present. Fewer than four
// resolved fields is fatal: the merge cannot produce anything useful
// without name, location, technical data and URL.
func ResolveBaseColumns(t *Table) (map[string]bool, error) {
	resolved := make(map[string]bool, len(BaseColumnOrder))
	for _, canonical := range BaseColumnOrder {
		actual, ok := FindColumn(t, BaseColumnAliases[canonical])
		if !ok {
			continue
		}
		if actual != canonical {
			t.RenameColumn(actual, canonical)
		}
		resolved[canonical] = true
	}

	if len(resolved) < essentialBaseColumns {
		var missing []string
		for _, canonical := range BaseColumnOrder[:essentialBaseColumns] {
			if !resolved[canonical] {
				missing = append(missing, canonical)
			}
		}
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return resolved, nil
}
