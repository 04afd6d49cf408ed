package machines

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fabrikdata/firmenmatch/internal/match"
	"github.com/fabrikdata/firmenmatch/internal/table"
)

// Machine-report merges run at a looser threshold than keyword merges
// because report names come out of OCR'd filings.
const defaultReportThreshold = 0.85

// companyNameColumns are accepted company columns in the base table,
// in priority order. Whatever matches is renamed to Firma1.
var companyNameColumns = []string{"Firma1", "Company", "company name"}

// Merger joins processed machine reports onto a base company table by
// name, exact first and token-set fuzzy second.
type Merger struct {
	threshold float64
	logger    zerolog.Logger
}

func NewMerger(threshold float64, logger zerolog.Logger) *Merger {
	if threshold <= 0 {
		threshold = defaultReportThreshold
	}
	return &Merger{threshold: threshold, logger: logger}
}

// MergeWithCompanies left-joins the processed report onto the base
// table: matched rows gain the Top*_Machine values and the park-size
// category, unmatched rows stay with those cells empty until Finalize
// filters them. The base table keeps Firma1 plus its URL/Ort style
// columns; everything else is dropped from the output, mirroring the
// downstream report layout.
func (m *Merger) MergeWithCompanies(processed, base *table.Table) (*table.Table, error) {
	base, err := normalizeBaseTable(base)
	if err != nil {
		return nil, err
	}

	mapping := m.mapCompanies(uniqueColumn(processed, "Company"), columnValues(base, "Firma1"))

	keep := []string{"Firma1"}
	for _, col := range []string{"URL", "Ort", "location", "url"} {
		if base.ColumnIndex(col) >= 0 {
			keep = append(keep, col)
		}
	}
	machineCols := make([]string, 0, len(processed.Columns))
	for _, col := range processed.Columns {
		if strings.HasPrefix(col, "Top") && strings.HasSuffix(col, "_Machine") {
			machineCols = append(machineCols, col)
		}
	}
	columns := append(append([]string{}, keep...), machineCols...)
	columns = append(columns, "Maschinen_Park_Size")
	out := table.New(columns)

	// Index processed rows by their mapped base name, first hit wins.
	byMapped := make(map[string]int, processed.Len())
	for i := 0; i < processed.Len(); i++ {
		mapped, ok := mapping[processed.Get(i, "Company")]
		if !ok {
			continue
		}
		if _, seen := byMapped[mapped]; !seen {
			byMapped[mapped] = i
		}
	}

	matched := 0
	for i := 0; i < base.Len(); i++ {
		row := make([]string, len(columns))
		for j, col := range keep {
			row[j] = base.Get(i, col)
		}
		if ri, ok := byMapped[base.Get(i, "Firma1")]; ok {
			matched++
			for j, col := range machineCols {
				row[len(keep)+j] = processed.Get(ri, col)
			}
			row[len(row)-1] = processed.Get(ri, "Maschinen_Park_Size")
		}
		out.AppendRow(row)
	}

	m.logger.Info().
		Int("base_rows", base.Len()).
		Int("report_companies", processed.Len()).
		Int("matched", matched).
		Float64("threshold", m.threshold).
		Msg("machine report merged onto company table")
	return out, nil
}

// MergeSachanlagen joins fixed-assets figures onto an already merged
// table. The sachanlagen table needs company_name and sachanlagen
// columns (case-insensitive); a missing or empty table just leaves the
// Sachanlagen column blank.
func (m *Merger) MergeSachanlagen(merged, sachanlagen *table.Table) *table.Table {
	out := merged.Clone()
	if out.ColumnIndex("Sachanlagen") < 0 {
		out.AddColumn("Sachanlagen")
	}

	if sachanlagen == nil || sachanlagen.Len() == 0 {
		m.logger.Info().Msg("no fixed-assets data, Sachanlagen column left empty")
		return out
	}
	nameCol, ok := table.FindColumn(sachanlagen, []string{"company_name"})
	if !ok {
		m.logger.Warn().Msg("fixed-assets table has no company_name column, skipping")
		return out
	}
	valueCol, ok := table.FindColumn(sachanlagen, []string{"sachanlagen"})
	if !ok {
		m.logger.Warn().Msg("fixed-assets table has no sachanlagen column, skipping")
		return out
	}

	names := make([]string, sachanlagen.Len())
	for i := range names {
		names[i] = match.NormalizeDisplay(sachanlagen.Get(i, nameCol))
	}
	mapping := m.mapCompanies(names, columnValues(out, "Firma1"))

	byMapped := make(map[string]string, len(mapping))
	for i, name := range names {
		mapped, ok := mapping[name]
		if !ok {
			continue
		}
		if _, seen := byMapped[mapped]; !seen {
			byMapped[mapped] = sachanlagen.Get(i, valueCol)
		}
	}

	for i := 0; i < out.Len(); i++ {
		if value, ok := byMapped[out.Get(i, "Firma1")]; ok {
			out.Set(i, "Sachanlagen", value)
		}
	}
	return out
}

// requiredOutputColumns always appear in the saved report, empty when
// the inputs had no data for them.
var requiredOutputColumns = []string{
	"Firma1", "location", "url", "Top1_Machine",
	"Maschinen_Park_Size", "Sachanlagen",
}

// Finalize prepares the merged table for saving: rows that carry
// neither a machine value nor a fixed-assets value are dropped, and the
// required report columns are added (case-insensitively) when missing.
// When the table has no machine or Sachanlagen columns at all, every
// row is kept and only the columns are padded out.
func (m *Merger) Finalize(merged *table.Table) *table.Table {
	out := merged.Clone()

	machineCols := make([]string, 0, len(out.Columns))
	for _, col := range out.Columns {
		if strings.HasPrefix(col, "Top") && strings.HasSuffix(col, "_Machine") {
			machineCols = append(machineCols, col)
		}
	}
	sachCol, hasSach := table.FindColumn(out, []string{"sachanlagen"})

	if len(machineCols) > 0 || hasSach {
		kept := table.New(out.Columns)
		for i := 0; i < out.Len(); i++ {
			hasValue := false
			for _, col := range machineCols {
				if out.Get(i, col) != "" {
					hasValue = true
					break
				}
			}
			if !hasValue && hasSach && out.Get(i, sachCol) != "" {
				hasValue = true
			}
			if hasValue {
				kept.AppendRow(out.Rows[i])
			}
		}
		if dropped := out.Len() - kept.Len(); dropped > 0 {
			m.logger.Info().
				Int("dropped", dropped).
				Msg("rows without machine or fixed-assets data removed")
		}
		out = kept
	} else {
		m.logger.Warn().Msg("no machine or fixed-assets data, output keeps company information only")
	}

	existing := make(map[string]bool, len(out.Columns))
	for _, col := range out.Columns {
		existing[strings.ToLower(col)] = true
	}
	for _, col := range requiredOutputColumns {
		if !existing[strings.ToLower(col)] {
			out.AddColumn(col)
		}
	}
	return out
}

// mapCompanies resolves each report name to a base name: exact match on
// the comparison form first, then the best token-set ratio at or above
// the threshold. Unmatched names are simply absent from the map.
func (m *Merger) mapCompanies(reportNames, baseNames []string) map[string]string {
	prepared := make([]string, len(baseNames))
	for i, name := range baseNames {
		prepared[i] = match.NormalizeComparison(name)
	}

	mapping := make(map[string]string, len(reportNames))
	var lowest float64 = 2
	var lowestPair [2]string
	for _, name := range reportNames {
		key := match.NormalizeComparison(name)
		if key == "" {
			continue
		}

		bestIdx, bestScore := -1, 0.0
		for i, candidate := range prepared {
			if candidate == key {
				bestIdx, bestScore = i, 1.0
				break
			}
			if score := match.TokenSetRatio(key, candidate); score > bestScore {
				bestIdx, bestScore = i, score
			}
		}
		if bestIdx < 0 || bestScore < m.threshold {
			m.logger.Info().
				Str("company", name).
				Float64("best_score", bestScore).
				Msg("report company not matched")
			continue
		}
		mapping[name] = baseNames[bestIdx]
		if bestScore < lowest {
			lowest = bestScore
			lowestPair = [2]string{name, baseNames[bestIdx]}
		}
	}

	if len(mapping) > 0 {
		m.logger.Info().
			Int("mapped", len(mapping)).
			Int("total", len(reportNames)).
			Float64("lowest_score", lowest).
			Str("lowest_pair", fmt.Sprintf("%s -> %s", lowestPair[0], lowestPair[1])).
			Msg("company mapping built")
	}
	return mapping
}

// normalizeBaseTable renames the accepted company column to Firma1 and
// unifies legal-suffix spellings.
func normalizeBaseTable(base *table.Table) (*table.Table, error) {
	base = base.Clone()
	found := ""
	for _, col := range companyNameColumns {
		if name, ok := table.FindColumn(base, []string{col}); ok {
			found = name
			break
		}
	}
	if found == "" {
		return nil, fmt.Errorf("company table needs one of %v", companyNameColumns)
	}
	if found != "Firma1" {
		base.RenameColumn(found, "Firma1")
	}
	for i := 0; i < base.Len(); i++ {
		base.Set(i, "Firma1", match.NormalizeDisplay(base.Get(i, "Firma1")))
	}
	return base, nil
}

func columnValues(t *table.Table, column string) []string {
	values := make([]string, t.Len())
	for i := range values {
		values[i] = t.Get(i, column)
	}
	return values
}

func uniqueColumn(t *table.Table, column string) []string {
	seen := make(map[string]bool, t.Len())
	values := make([]string, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		v := t.Get(i, column)
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	return values
}
