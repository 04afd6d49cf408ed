package table

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned when a base table has an extension
// other than .csv, .xlsx or .xls.
var ErrUnsupportedFormat = errors.New("unsupported file format")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is an ordered, string-typed table: spreadsheet semantics, not
// database semantics. Missing cells read as "".
type Table struct {
	Columns []string
	Rows    [][]string
}

func New(columns []string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of an exact column name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Get returns the cell at (row, column name); "" when either is absent.
func (t *Table) Get(row int, column string) string {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	if idx >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][idx]
}

// Set writes the cell at (row, column name), ignoring unknown columns.
func (t *Table) Set(row int, column, value string) {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return
	}
	for len(t.Rows[row]) <= idx {
		t.Rows[row] = append(t.Rows[row], "")
	}
	t.Rows[row][idx] = value
}

// AddColumn appends an empty column unless it already exists.
func (t *Table) AddColumn(name string) {
	if t.ColumnIndex(name) >= 0 {
		return
	}
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
}

// RenameColumn renames a column in place; no-op when absent.
func (t *Table) RenameColumn(from, to string) {
	if idx := t.ColumnIndex(from); idx >= 0 {
		t.Columns[idx] = to
	}
}

// DropColumns removes the named columns and their cells; unknown names
// are ignored.
func (t *Table) DropColumns(names ...string) {
	drop := make(map[int]struct{}, len(names))
	for _, name := range names {
		if idx := t.ColumnIndex(name); idx >= 0 {
			drop[idx] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return
	}

	kept := make([]string, 0, len(t.Columns)-len(drop))
	for i, col := range t.Columns {
		if _, gone := drop[i]; !gone {
			kept = append(kept, col)
		}
	}
	for r, row := range t.Rows {
		keptRow := make([]string, 0, len(kept))
		for i := range t.Columns {
			if _, gone := drop[i]; gone {
				continue
			}
			if i < len(row) {
				keptRow = append(keptRow, row[i])
			} else {
				keptRow = append(keptRow, "")
			}
		}
		t.Rows[r] = keptRow
	}
	t.Columns = kept
}

// AppendRow adds a row, padding or truncating to the column count.
func (t *Table) AppendRow(values []string) {
	row := make([]string, len(t.Columns))
	copy(row, values)
	t.Rows = append(t.Rows, row)
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := New(t.Columns)
	out.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// Load reads a tabular file, dispatching on the extension.
func Load(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(path)
	case ".xlsx", ".xls":
		return ReadXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %s (only .xlsx, .xls and .csv are supported)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadCSV loads a comma-separated file, tolerating a UTF-8 BOM and
// ragged rows. The first record is the header.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", path, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	if peeked, err := br.Peek(len(utf8BOM)); err == nil && string(peeked) == string(utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv %s: %w", path, err)
	}
	if len(records) == 0 {
		return New(nil), nil
	}

	t := New(records[0])
	for _, record := range records[1:] {
		t.AppendRow(record)
	}
	return t, nil
}

// ReadXLSX loads the first sheet of a workbook. The first row is the
// header.
func ReadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return New(nil), nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return New(nil), nil
	}

	t := New(rows[0])
	for _, row := range rows[1:] {
		t.AppendRow(row)
	}
	return t, nil
}

// WriteCSV saves the table as UTF-8 CSV with a BOM so spreadsheet tools
// pick up the encoding. Parent directories are created as needed.
func (t *Table) WriteCSV(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range t.Rows {
		record := make([]string, len(t.Columns))
		copy(record, row)
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv %s: %w", path, err)
	}
	return nil
}
