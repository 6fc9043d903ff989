package dataset

import "math"

// ColumnStats summarizes one numeric column.
type ColumnStats struct {
	Name       string
	Count      int
	Mean       float64
	Std        float64
	Min        float64
	Max        float64
	MissingPct float64
}

// Describe computes mean/std/min/max and missing percentage for every
// numeric column, in column order. Columns with no present numeric
// cells are skipped.
func Describe(t *Table) []ColumnStats {
	var out []ColumnStats
	rows := t.NumRows()
	for i := range t.cols {
		c := &t.cols[i]
		if !c.IsNumeric() {
			continue
		}
		var (
			sum, sumSq float64
			count      int
			min        = math.Inf(1)
			max        = math.Inf(-1)
		)
		for _, v := range c.Values {
			f, ok := v.Float()
			if !ok {
				continue
			}
			count++
			sum += f
			sumSq += f * f
			if f < min {
				min = f
			}
			if f > max {
				max = f
			}
		}
		if count == 0 {
			continue
		}
		mean := sum / float64(count)
		variance := 0.0
		if count > 1 {
			variance = (sumSq - float64(count)*mean*mean) / float64(count-1)
			if variance < 0 {
				variance = 0
			}
		}
		missingPct := 0.0
		if rows > 0 {
			missingPct = float64(rows-count) / float64(rows) * 100
		}
		out = append(out, ColumnStats{
			Name:       c.Name,
			Count:      count,
			Mean:       mean,
			Std:        math.Sqrt(variance),
			Min:        min,
			Max:        max,
			MissingPct: missingPct,
		})
	}
	return out
}

// MissingCount holds per-column missing cell totals.
type MissingCount struct {
	Name    string
	Missing int
	Pct     float64
}

// MissingSummary reports missing cell counts for every column.
func MissingSummary(t *Table) []MissingCount {
	rows := t.NumRows()
	out := make([]MissingCount, 0, len(t.cols))
	for i := range t.cols {
		missing := 0
		for _, v := range t.cols[i].Values {
			if v.IsMissing() {
				missing++
			}
		}
		pct := 0.0
		if rows > 0 {
			pct = float64(missing) / float64(rows) * 100
		}
		out = append(out, MissingCount{Name: t.cols[i].Name, Missing: missing, Pct: pct})
	}
	return out
}

// Mean computes the mean of the named column's present numeric cells.
// ok is false when the column is absent or holds no numeric cells.
func Mean(t *Table, name string) (float64, bool) {
	col, found := t.Column(name)
	if !found {
		return 0, false
	}
	sum, count := 0.0, 0
	for _, v := range col.Values {
		if f, good := v.Float(); good {
			sum += f
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}
