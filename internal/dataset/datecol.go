package dataset

import (
	"strings"
	"time"
)

// InferDateColumn returns the first column, in column order, whose name
// contains "date" or "time" case-insensitively. This is a name
// heuristic, not a type check: a column like "update_policy" matches.
// The first-match tie-break is deterministic and relied on by callers.
func InferDateColumn(t *Table) (string, bool) {
	for _, c := range t.cols {
		lower := strings.ToLower(c.Name)
		if strings.Contains(lower, "date") || strings.Contains(lower, "time") {
			return c.Name, true
		}
	}
	return "", false
}

// timeLayouts are the accepted timestamp forms, tried in order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02.01.2006 15:04",
	"02.01.2006",
	"01/02/2006 15:04",
	"01/02/2006",
}

// ParseTime parses a single cell into a timestamp. Time cells pass
// through; string cells are tried against the known layouts; everything
// else fails.
func ParseTime(v Value) (time.Time, bool) {
	switch v.Kind() {
	case KindTime:
		return v.ts, true
	case KindString:
		s := strings.TrimSpace(v.str)
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}

// ParseTimeColumn parses every cell of the named column into a
// timestamp. Unparseable or missing cells yield a zero entry with
// ok=false at that index; parsed reports how many cells succeeded.
func ParseTimeColumn(t *Table, name string) (times []time.Time, ok []bool, parsed int) {
	col, found := t.Column(name)
	if !found {
		return nil, nil, 0
	}
	times = make([]time.Time, len(col.Values))
	ok = make([]bool, len(col.Values))
	for i, v := range col.Values {
		if ts, good := ParseTime(v); good {
			times[i] = ts
			ok[i] = true
			parsed++
		}
	}
	return times, ok, parsed
}
