// Package ingest parses uploaded files and stored records into tables.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lakewatch/lakewatch/internal/dataset"
)

// ReadCSV parses delimited text into a table. The first record is the
// header; empty cells become missing values and numeric-looking cells
// are stored as floats.
func ReadCSV(r io.Reader) (*dataset.Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make([]dataset.Column, len(header))
	for i, name := range header {
		cols[i].Name = strings.TrimSpace(name)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		for i := range cols {
			cell := ""
			if i < len(record) {
				cell = record[i]
			}
			cols[i].Values = append(cols[i].Values, SniffValue(cell))
		}
	}

	return dataset.New(cols)
}

// SniffValue converts raw cell text into a typed value: empty becomes
// missing, parseable numbers become floats, everything else stays a
// string. Timestamps are left as strings; parsing happens where a time
// axis is actually needed.
func SniffValue(cell string) dataset.Value {
	s := strings.TrimSpace(cell)
	if s == "" {
		return dataset.Missing()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return dataset.Float(f)
	}
	return dataset.String(s)
}
