// Package compare aligns a manually collected dataset against reference
// sensor readings and summarizes the differences per parameter.
package compare

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lakewatch/lakewatch/internal/dataset"
)

var (
	// ErrNoDateColumn indicates one of the datasets has no inferable
	// date column. Distinct from ErrNoSharedColumns so the caller can
	// word the warning precisely.
	ErrNoDateColumn = errors.New("could not detect date column")

	// ErrNoSharedColumns indicates the datasets share no column that is
	// numeric in both. Informational rather than a failure.
	ErrNoSharedColumns = errors.New("no shared numeric columns")

	// ErrDateParse indicates an inferred date column produced no
	// parseable timestamps at all; the comparison aborts rather than
	// proceeding with partial output.
	ErrDateParse = errors.New("date column could not be parsed")
)

// Trend is the qualitative direction of a parameter difference.
type Trend string

const (
	TrendHigher    Trend = "higher"
	TrendLower     Trend = "lower"
	TrendSimilar   Trend = "similar"
	TrendNoOverlap Trend = "no overlap"
)

// AlignedPoint is one exact-date match between the two datasets.
type AlignedPoint struct {
	Date      time.Time
	Manual    float64
	Reference float64
}

// ParamResult carries one shared parameter's aggregates and its aligned
// series. Parameters with zero joined rows are still reported, with
// TrendNoOverlap and an empty series.
type ParamResult struct {
	Parameter    string
	ManualAvg    float64
	ReferenceAvg float64
	Difference   float64
	Trend        Trend
	Series       []AlignedPoint
}

// Result is the full outcome of an alignment run.
type Result struct {
	DateColumnManual    string
	DateColumnReference string
	Parameters          []ParamResult
}

// similarFraction bounds the relative difference still reported as
// "similar".
const similarFraction = 0.02

// Align joins two column-normalized datasets on their inferred date
// columns and computes per-parameter aggregates for every column
// numeric in both. Rows whose date cell does not parse are dropped from
// that dataset; a date column with no parseable cells aborts the whole
// comparison.
func Align(manual, reference *dataset.Table) (*Result, error) {
	manualDate, ok := dataset.InferDateColumn(manual)
	if !ok {
		return nil, fmt.Errorf("%w in uploaded dataset", ErrNoDateColumn)
	}
	refDate, ok := dataset.InferDateColumn(reference)
	if !ok {
		return nil, fmt.Errorf("%w in reference dataset", ErrNoDateColumn)
	}

	manualTimes, manualOK, manualParsed := dataset.ParseTimeColumn(manual, manualDate)
	if manual.NumRows() > 0 && manualParsed == 0 {
		return nil, fmt.Errorf("%w: %q in uploaded dataset", ErrDateParse, manualDate)
	}
	refTimes, refOK, refParsed := dataset.ParseTimeColumn(reference, refDate)
	if reference.NumRows() > 0 && refParsed == 0 {
		return nil, fmt.Errorf("%w: %q in reference dataset", ErrDateParse, refDate)
	}

	shared := sharedNumericColumns(manual, reference)
	if len(shared) == 0 {
		return nil, ErrNoSharedColumns
	}

	result := &Result{
		DateColumnManual:    manualDate,
		DateColumnReference: refDate,
	}

	for _, param := range shared {
		pr := ParamResult{Parameter: param}

		manualVals := datedValues(manual, param, manualTimes, manualOK)
		refVals := datedValues(reference, param, refTimes, refOK)

		pr.ManualAvg = meanOf(manualVals)
		pr.ReferenceAvg = meanOf(refVals)
		pr.Difference = pr.ManualAvg - pr.ReferenceAvg

		for date, mv := range manualVals {
			if rv, hit := refVals[date]; hit {
				pr.Series = append(pr.Series, AlignedPoint{Date: time.Unix(date, 0).UTC(), Manual: mv, Reference: rv})
			}
		}
		sort.Slice(pr.Series, func(i, j int) bool { return pr.Series[i].Date.Before(pr.Series[j].Date) })

		if len(pr.Series) == 0 {
			pr.Trend = TrendNoOverlap
		} else {
			pr.Trend = classifyTrend(pr.ManualAvg, pr.ReferenceAvg)
		}
		result.Parameters = append(result.Parameters, pr)
	}

	return result, nil
}

// sharedNumericColumns intersects the column sets, keeping names whose
// column is numeric on both sides, in the manual dataset's column order.
func sharedNumericColumns(manual, reference *dataset.Table) []string {
	var shared []string
	for _, name := range manual.ColumnNames() {
		mc, _ := manual.Column(name)
		rc, ok := reference.Column(name)
		if !ok {
			continue
		}
		if mc.IsNumeric() && rc.IsNumeric() {
			shared = append(shared, name)
		}
	}
	return shared
}

// datedValues maps unix timestamp to the parameter value for every row
// with a parseable date and a present numeric cell. The first value
// wins when a dataset repeats a date.
func datedValues(t *dataset.Table, param string, times []time.Time, ok []bool) map[int64]float64 {
	col, _ := t.Column(param)
	out := make(map[int64]float64)
	for i, v := range col.Values {
		if !ok[i] {
			continue
		}
		f, numeric := v.Float()
		if !numeric {
			continue
		}
		key := times[i].Unix()
		if _, seen := out[key]; !seen {
			out[key] = f
		}
	}
	return out
}

func meanOf(vals map[int64]float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func classifyTrend(manual, reference float64) Trend {
	if math.IsNaN(manual) || math.IsNaN(reference) {
		return TrendNoOverlap
	}
	scale := math.Max(math.Abs(manual), math.Abs(reference))
	if scale == 0 || math.Abs(manual-reference) <= scale*similarFraction {
		return TrendSimilar
	}
	if manual > reference {
		return TrendHigher
	}
	return TrendLower
}
