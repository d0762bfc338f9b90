// Package importer decodes spreadsheet exports (.xlsx/.xls/.csv) into the
// domain collections. Structural problems (missing columns or sheets) abort
// an import; malformed rows are skipped with a warning and the import
// continues.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is one decoded sheet: a header row plus data rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ReadTable decodes the first sheet of an upload into a Table. The format is
// chosen by file extension.
func ReadTable(filename string, r io.Reader) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(r)
	case ".xlsx", ".xls":
		sheets, err := readWorkbook(r)
		if err != nil {
			return nil, err
		}
		for _, name := range sheets.order {
			return sheets.tables[name], nil
		}
		return nil, fmt.Errorf("workbook %s has no sheets", filename)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(filename))
	}
}

// ReadWorkbook decodes every sheet of an .xlsx/.xls upload, keyed by sheet
// name. CSV uploads are rejected here: multi-sheet feeds require a workbook.
func ReadWorkbook(filename string, r io.Reader) (map[string]*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		sheets, err := readWorkbook(r)
		if err != nil {
			return nil, err
		}
		return sheets.tables, nil
	default:
		return nil, fmt.Errorf("feed requires a workbook upload, got %q", filepath.Ext(filename))
	}
}

type workbook struct {
	order  []string
	tables map[string]*Table
}

func readWorkbook(r io.Reader) (*workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	wb := &workbook{tables: make(map[string]*Table)}
	for _, sheet := range f.GetSheetList() {
		rows, err := f.Rows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}

		table := &Table{}
		for rows.Next() {
			record, err := rows.Columns()
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to read row in sheet %q: %w", sheet, err)
			}
			if table.Headers == nil {
				table.Headers = record
				continue
			}
			table.Rows = append(table.Rows, record)
		}
		if err := rows.Error(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("error iterating sheet %q: %w", sheet, err)
		}
		rows.Close()

		wb.order = append(wb.order, sheet)
		wb.tables[sheet] = table
	}
	return wb, nil
}

func readCSV(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv file is empty")
	}

	return &Table{Headers: records[0], Rows: records[1:]}, nil
}

// sniffDelimiter picks ';' when the header line looks like a Brazilian
// semicolon-separated export, ',' otherwise.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}
