package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"adpulse/internal/errors"
)

// Table is an uploaded spreadsheet reduced to its tabular content: an ordered
// header row plus data rows of string cells. Rows may be shorter than the
// header; missing cells read as empty strings. A Table is immutable after
// construction and safe for concurrent reads.
type Table struct {
	Headers []string
	Rows    [][]string

	columns map[string]int
}

// NewTable builds a Table and its header lookup index. When the same header
// name appears twice, the first occurrence wins.
func NewTable(headers []string, rows [][]string) *Table {
	columns := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, ok := columns[h]; !ok {
			columns[h] = i
		}
	}
	return &Table{Headers: headers, Rows: rows, columns: columns}
}

// HasColumn reports whether the header row contains the exact column name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Cell returns the named cell of a row, or "" when the column does not exist
// or the row is too short to reach it.
func (t *Table) Cell(row []string, name string) string {
	idx, ok := t.columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// RowMap converts a row to a header-keyed map, used to echo cleaned rows back
// to the client for ad-hoc filtering.
func (t *Table) RowMap(row []string) map[string]string {
	m := make(map[string]string, len(t.Headers))
	for i, h := range t.Headers {
		if h == "" {
			continue
		}
		if i < len(row) {
			m[h] = row[i]
		} else {
			m[h] = ""
		}
	}
	return m
}

// ParseUpload parses an uploaded spreadsheet into a Table, dispatching on the
// file extension. CSV is read with encoding/csv, Excel workbooks with
// excelize. The returned error is a parsing AppError suitable for mapping to
// a client error.
func ParseUpload(filename string, r io.Reader) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseCSV(r)
	case ".xlsx", ".xlsm":
		return ParseWorkbook(r)
	default:
		return nil, errors.NewAppValidationError(fmt.Sprintf("unsupported file type %q, expected .csv or .xlsx", filepath.Ext(filename)))
	}
}

// ParseCSV reads a comma-separated table. Records of uneven length are
// accepted; the first record is the header row.
func ParseCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParsingError("failed to parse CSV upload", err)
	}
	if len(records) == 0 {
		return nil, errors.NewParsingError("upload contains no rows", nil)
	}

	headers := records[0]
	if len(headers) > 0 {
		// Strip a UTF-8 BOM exported by some spreadsheet tools.
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}

	return NewTable(headers, records[1:]), nil
}

// ParseWorkbook reads the first non-empty sheet of an Excel workbook.
func ParseWorkbook(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.NewParsingError("failed to open Excel upload", err)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		return NewTable(rows[0], rows[1:]), nil
	}

	return nil, errors.NewParsingError("workbook contains no data sheet", nil)
}
