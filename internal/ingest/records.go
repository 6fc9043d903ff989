package ingest

import (
	"sort"
	"time"

	"github.com/lakewatch/lakewatch/internal/dataset"
)

// FromRecords builds a table from flat field-to-scalar records, such as
// sensor documents loaded from the store. Column order follows first
// appearance across the records (fields within one record ordered
// alphabetically, since Go maps carry no order); fields absent from a
// record become missing cells.
func FromRecords(records []map[string]any) (*dataset.Table, error) {
	var order []string
	seen := make(map[string]bool)
	for _, rec := range records {
		fields := make([]string, 0, len(rec))
		for f := range rec {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			if !seen[f] {
				seen[f] = true
				order = append(order, f)
			}
		}
	}

	cols := make([]dataset.Column, len(order))
	for i, field := range order {
		cols[i].Name = field
		cols[i].Values = make([]dataset.Value, len(records))
		for r, rec := range records {
			cols[i].Values[r] = scalarToValue(rec[field])
		}
	}
	return dataset.New(cols)
}

func scalarToValue(v any) dataset.Value {
	switch x := v.(type) {
	case nil:
		return dataset.Missing()
	case float64:
		return dataset.Float(x)
	case int:
		return dataset.Float(float64(x))
	case int64:
		return dataset.Float(float64(x))
	case bool:
		if x {
			return dataset.Float(1)
		}
		return dataset.Float(0)
	case time.Time:
		return dataset.Time(x)
	case string:
		return dataset.String(x)
	default:
		return dataset.Missing()
	}
}

// ToRecords flattens a table into field-to-scalar records, the form the
// upload store persists.
func ToRecords(t *dataset.Table) []map[string]any {
	names := t.ColumnNames()
	records := make([]map[string]any, t.NumRows())
	for r := 0; r < t.NumRows(); r++ {
		rec := make(map[string]any, len(names))
		for _, name := range names {
			col, _ := t.Column(name)
			rec[name] = valueToScalar(col.Values[r])
		}
		records[r] = rec
	}
	return records
}

func valueToScalar(v dataset.Value) any {
	switch v.Kind() {
	case dataset.KindFloat:
		f, _ := v.Float()
		return f
	case dataset.KindTime:
		ts, _ := v.Time()
		return ts.Format(time.RFC3339)
	case dataset.KindString:
		return v.Text()
	default:
		return nil
	}
}
