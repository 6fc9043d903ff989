package dataset

import "sort"

// iqrFenceFactor is the conventional Tukey fence multiplier.
const iqrFenceFactor = 1.5

// OutlierSummary flags the cells of one numeric column that fall
// outside the IQR fences. Flags is row-aligned with the table; missing
// and non-numeric cells are never flagged.
type OutlierSummary struct {
	Column string
	Lower  float64
	Upper  float64
	Count  int
	Flags  []bool
}

// DetectOutliers computes Tukey fences (Q1 - 1.5*IQR, Q3 + 1.5*IQR)
// for the named column and flags every value outside them. Returns
// false when the column does not exist or holds fewer than four
// numeric values, too few for quartiles to mean anything.
func DetectOutliers(t *Table, name string) (*OutlierSummary, bool) {
	col, ok := t.Column(name)
	if !ok {
		return nil, false
	}

	var present []float64
	for _, v := range col.Values {
		if f, numeric := v.Float(); numeric {
			present = append(present, f)
		}
	}
	if len(present) < 4 {
		return nil, false
	}

	sorted := append([]float64(nil), present...)
	sort.Float64s(sorted)
	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1

	s := &OutlierSummary{
		Column: name,
		Lower:  q1 - iqrFenceFactor*iqr,
		Upper:  q3 + iqrFenceFactor*iqr,
		Flags:  make([]bool, len(col.Values)),
	}
	for i, v := range col.Values {
		f, numeric := v.Float()
		if !numeric {
			continue
		}
		if f < s.Lower || f > s.Upper {
			s.Flags[i] = true
			s.Count++
		}
	}
	return s, true
}

// quantile interpolates linearly between the two nearest ranks of a
// sorted slice.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
