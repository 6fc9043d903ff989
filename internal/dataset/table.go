package dataset

import (
	"fmt"
	"time"
)

// ValueKind identifies the type of a single cell.
type ValueKind int

const (
	KindMissing ValueKind = iota
	KindString
	KindFloat
	KindTime
)

// Value is a single typed cell. Missing cells carry no payload.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	ts   time.Time
}

// Missing returns the missing-value sentinel.
func Missing() Value { return Value{kind: KindMissing} }

// String wraps a string cell.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Float wraps a numeric cell.
func Float(f float64) Value { return Value{kind: KindFloat, num: f} }

// Time wraps a timestamp cell.
func Time(t time.Time) Value { return Value{kind: KindTime, ts: t} }

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Float returns the numeric payload; ok is false for non-numeric cells.
func (v Value) Float() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.num, true
}

// Time returns the timestamp payload; ok is false for non-time cells.
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindTime {
		return time.Time{}, false
	}
	return v.ts, true
}

// Text renders the cell for display. Missing cells render as empty.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindFloat:
		return trimFloat(v.num)
	case KindTime:
		return v.ts.Format("2006-01-02 15:04")
	default:
		return ""
	}
}

func trimFloat(f float64) string {
	if f == float64(int64(f)) && f < 1e15 && f > -1e15 {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// Column is a named sequence of cells.
type Column struct {
	Name   string
	Values []Value
}

// IsNumeric reports whether every present cell is a float and at least
// one cell is present.
func (c *Column) IsNumeric() bool {
	present := 0
	for _, v := range c.Values {
		switch v.kind {
		case KindMissing:
		case KindFloat:
			present++
		default:
			return false
		}
	}
	return present > 0
}

// Table is an in-memory columnar dataset. Columns are ordered and names
// are unique. Tables are treated as immutable once loaded into a session;
// operations that change shape or labels return copies.
type Table struct {
	cols []Column
}

// New builds a table from columns. All columns must share one length and
// carry distinct names.
func New(cols []Column) (*Table, error) {
	seen := make(map[string]bool, len(cols))
	rows := -1
	for _, c := range cols {
		if seen[c.Name] {
			return nil, fmt.Errorf("duplicate column name %q", c.Name)
		}
		seen[c.Name] = true
		if rows == -1 {
			rows = len(c.Values)
		} else if len(c.Values) != rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.Name, len(c.Values), rows)
		}
	}
	return &Table{cols: cols}, nil
}

// Empty returns a table with no columns.
func Empty() *Table { return &Table{} }

func (t *Table) NumCols() int { return len(t.cols) }

func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Values)
}

// ColumnNames returns the column labels in column order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column, or false when absent.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.cols {
		if t.cols[i].Name == name {
			return &t.cols[i], true
		}
	}
	return nil, false
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// Columns returns the underlying columns in order. Callers must not
// mutate the returned slice; use Clone for a private copy.
func (t *Table) Columns() []Column { return t.cols }

// NumericColumns returns the names of all numeric columns in column order.
func (t *Table) NumericColumns() []string {
	var names []string
	for i := range t.cols {
		if t.cols[i].IsNumeric() {
			names = append(names, t.cols[i].Name)
		}
	}
	return names
}

// Clone returns a deep copy. Mutations of the copy never reach the
// original; the snippet execution path depends on this.
func (t *Table) Clone() *Table {
	cols := make([]Column, len(t.cols))
	for i, c := range t.cols {
		vals := make([]Value, len(c.Values))
		copy(vals, c.Values)
		cols[i] = Column{Name: c.Name, Values: vals}
	}
	return &Table{cols: cols}
}

// Head returns a copy holding at most n leading rows.
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > t.NumRows() {
		n = t.NumRows()
	}
	cols := make([]Column, len(t.cols))
	for i, c := range t.cols {
		vals := make([]Value, n)
		copy(vals, c.Values[:n])
		cols[i] = Column{Name: c.Name, Values: vals}
	}
	return &Table{cols: cols}
}

// Row returns the cells of row i in column order.
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.cols))
	for j := range t.cols {
		row[j] = t.cols[j].Values[i]
	}
	return row
}

// Shape renders "N rows x M columns" for prompts and status lines.
func (t *Table) Shape() string {
	return fmt.Sprintf("%d rows x %d columns", t.NumRows(), t.NumCols())
}
