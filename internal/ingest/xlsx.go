package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/lakewatch/lakewatch/internal/dataset"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX parses the first sheet of a spreadsheet into a table, using
// the same cell sniffing as CSV ingest.
func ReadXLSX(r io.Reader) (*dataset.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	header := rows[0]
	cols := make([]dataset.Column, len(header))
	for i, name := range header {
		cols[i].Name = strings.TrimSpace(name)
	}

	for _, row := range rows[1:] {
		for i := range cols {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cols[i].Values = append(cols[i].Values, SniffValue(cell))
		}
	}

	return dataset.New(cols)
}

// ReadFile dispatches on the filename extension: .xlsx and .xls go
// through the spreadsheet reader, everything else is treated as CSV.
func ReadFile(name string, r io.Reader) (*dataset.Table, error) {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xls") {
		return ReadXLSX(r)
	}
	return ReadCSV(r)
}
