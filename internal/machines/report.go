package machines

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fabrikdata/firmenmatch/internal/table"
)

// Machine values at or below this are small equipment or extraction
// noise and never count towards a company's park.
const minMachineValue = 20000

// parkSizeRange maps a technical-equipment value onto the estimated
// number of machines. The table comes from the field calibration and is
// not configurable.
type parkSizeRange struct {
	lower, upper int64
	category     string
}

var parkSizeRanges = []parkSizeRange{
	{300000, 700000, "10-15"},
	{700001, 900000, "15-20"},
	{900001, 1200000, "21-40"},
	{1200001, 1500000, "40-60"},
	{1500001, 1800000, "60-80"},
	{1800001, 2500000, "80-120"},
	{2500001, 5000000, "120-200"},
	{5000001, 10000000, "200-350"},
	{10000001, 99000000, "350-600"},
}

// CategorizeParkSize maps a numeric equipment value onto its park-size
// category. Empty or non-numeric input yields "", values outside every
// range yield "No Match".
func CategorizeParkSize(value string) string {
	if value == "" {
		return ""
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return ""
	}
	val := int64(f)
	for _, r := range parkSizeRanges {
		if val >= r.lower && val <= r.upper {
			return r.category
		}
	}
	return "No Match"
}

// machineEntry is one melted machine value.
type machineEntry struct {
	company string
	value   float64
}

// ProcessReport reshapes a raw machine report into one row per company
// with its topN machine values and the park-size category derived from
// the top value. The report needs a Company column and any number of
// Machine_* columns; values at or below 20000 and non-numeric cells are
// dropped. Companies come out sorted by name.
func ProcessReport(report *table.Table, topN int) (*table.Table, error) {
	if topN <= 0 {
		return nil, fmt.Errorf("topN must be positive, got %d", topN)
	}
	if report.ColumnIndex("Company") < 0 {
		return nil, fmt.Errorf("machine report needs a Company column")
	}

	columns := resultColumns(topN)
	result := table.New(columns)
	if report.Len() == 0 {
		return result, nil
	}

	machineCols := make([]string, 0, len(report.Columns))
	for _, col := range report.Columns {
		if strings.Contains(col, "Machine_") {
			machineCols = append(machineCols, col)
		}
	}

	entries := make([]machineEntry, 0, report.Len()*len(machineCols))
	for i := 0; i < report.Len(); i++ {
		company := strings.ReplaceAll(report.Get(i, "Company"), "_", " ")
		for _, col := range machineCols {
			raw := strings.TrimSpace(report.Get(i, col))
			if raw == "" {
				continue
			}
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil || value <= minMachineValue {
				continue
			}
			entries = append(entries, machineEntry{company: company, value: value})
		}
	}

	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].company != entries[b].company {
			return entries[a].company < entries[b].company
		}
		return entries[a].value > entries[b].value
	})

	var current string
	var values []float64
	flush := func() {
		if current == "" && len(values) == 0 {
			return
		}
		row := make([]string, len(columns))
		row[0] = current
		for i := 0; i < topN && i < len(values); i++ {
			row[i+1] = formatValue(values[i])
		}
		row[len(row)-1] = CategorizeParkSize(row[1])
		result.AppendRow(row)
	}
	for _, e := range entries {
		if e.company != current {
			flush()
			current = e.company
			values = values[:0]
		}
		if len(values) < topN {
			values = append(values, e.value)
		}
	}
	flush()

	return result, nil
}

func resultColumns(topN int) []string {
	columns := make([]string, 0, topN+2)
	columns = append(columns, "Company")
	for i := 1; i <= topN; i++ {
		columns = append(columns, fmt.Sprintf("Top%d_Machine", i))
	}
	return append(columns, "Maschinen_Park_Size")
}

// formatValue renders a machine value without a trailing fraction when
// it is a whole number, which the report values always are in practice.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
