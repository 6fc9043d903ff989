package compare

import (
	"testing"
	"time"

	"github.com/lakewatch/lakewatch/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table(t *testing.T, cols []dataset.Column) *dataset.Table {
	t.Helper()
	tbl, err := dataset.New(cols)
	require.NoError(t, err)
	return tbl
}

func strCol(name string, vals ...string) dataset.Column {
	c := dataset.Column{Name: name}
	for _, v := range vals {
		c.Values = append(c.Values, dataset.String(v))
	}
	return c
}

func numCol(name string, vals ...float64) dataset.Column {
	c := dataset.Column{Name: name}
	for _, v := range vals {
		c.Values = append(c.Values, dataset.Float(v))
	}
	return c
}

func TestAlign_JoinCorrectness(t *testing.T) {
	manual := table(t, []dataset.Column{
		strCol("date", "2024-01-01", "2024-01-02"),
		numCol("temp", 10, 12),
	})
	reference := table(t, []dataset.Column{
		strCol("date", "2024-01-01", "2024-01-03"),
		numCol("temp", 11, 9),
	})

	res, err := Align(manual, reference)
	require.NoError(t, err)
	require.Len(t, res.Parameters, 1)

	p := res.Parameters[0]
	assert.Equal(t, "temp", p.Parameter)
	require.Len(t, p.Series, 1)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), p.Series[0].Date)
	assert.Equal(t, 10.0, p.Series[0].Manual)
	assert.Equal(t, 11.0, p.Series[0].Reference)

	assert.InDelta(t, 11.0, p.ManualAvg, 1e-9)
	assert.InDelta(t, 10.0, p.ReferenceAvg, 1e-9)
	assert.InDelta(t, 1.0, p.Difference, 1e-9)
	assert.Equal(t, TrendHigher, p.Trend)
}

func TestAlign_NoDateColumnDistinctFromNoShared(t *testing.T) {
	noDate := table(t, []dataset.Column{numCol("temp", 1)})
	withDate := table(t, []dataset.Column{
		strCol("date", "2024-01-01"),
		numCol("temp", 1),
	})

	_, err := Align(noDate, withDate)
	assert.ErrorIs(t, err, ErrNoDateColumn)
	assert.NotErrorIs(t, err, ErrNoSharedColumns)

	_, err = Align(withDate, noDate)
	assert.ErrorIs(t, err, ErrNoDateColumn)
}

func TestAlign_NoSharedNumericColumns(t *testing.T) {
	manual := table(t, []dataset.Column{
		strCol("date", "2024-01-01"),
		numCol("ph", 7),
	})
	reference := table(t, []dataset.Column{
		strCol("date", "2024-01-01"),
		numCol("turbidity", 2),
	})

	_, err := Align(manual, reference)
	assert.ErrorIs(t, err, ErrNoSharedColumns)
}

func TestAlign_SharedColumnNumericOnOneSideOnly(t *testing.T) {
	manual := table(t, []dataset.Column{
		strCol("date", "2024-01-01"),
		numCol("ph", 7),
	})
	reference := table(t, []dataset.Column{
		strCol("date", "2024-01-01"),
		strCol("ph", "seven-ish"),
	})

	_, err := Align(manual, reference)
	assert.ErrorIs(t, err, ErrNoSharedColumns)
}

func TestAlign_UnparseableDatesDropRows(t *testing.T) {
	manual := table(t, []dataset.Column{
		strCol("date", "2024-01-01", "not a date", "2024-01-03"),
		numCol("temp", 10, 99, 14),
	})
	reference := table(t, []dataset.Column{
		strCol("date", "2024-01-01", "2024-01-02", "2024-01-03"),
		numCol("temp", 11, 12, 13),
	})

	res, err := Align(manual, reference)
	require.NoError(t, err)
	p := res.Parameters[0]

	// The bad-date row neither joins nor enters the manual mean.
	require.Len(t, p.Series, 2)
	assert.InDelta(t, 12.0, p.ManualAvg, 1e-9)
}

func TestAlign_WhollyUnparseableDateColumnAborts(t *testing.T) {
	manual := table(t, []dataset.Column{
		strCol("date", "soon", "later"),
		numCol("temp", 1, 2),
	})
	reference := table(t, []dataset.Column{
		strCol("date", "2024-01-01"),
		numCol("temp", 1),
	})

	_, err := Align(manual, reference)
	assert.ErrorIs(t, err, ErrDateParse)
}

func TestAlign_NoOverlapStillReported(t *testing.T) {
	manual := table(t, []dataset.Column{
		strCol("date", "2024-01-01"),
		numCol("temp", 10),
	})
	reference := table(t, []dataset.Column{
		strCol("date", "2024-06-01"),
		numCol("temp", 11),
	})

	res, err := Align(manual, reference)
	require.NoError(t, err)
	require.Len(t, res.Parameters, 1)
	assert.Equal(t, TrendNoOverlap, res.Parameters[0].Trend)
	assert.Empty(t, res.Parameters[0].Series)
}

func TestAlign_SimilarTrend(t *testing.T) {
	manual := table(t, []dataset.Column{
		strCol("date", "2024-01-01"),
		numCol("temp", 100),
	})
	reference := table(t, []dataset.Column{
		strCol("date", "2024-01-01"),
		numCol("temp", 101),
	})

	res, err := Align(manual, reference)
	require.NoError(t, err)
	assert.Equal(t, TrendSimilar, res.Parameters[0].Trend)
}

func TestAlign_SeriesSortedByDate(t *testing.T) {
	manual := table(t, []dataset.Column{
		strCol("date", "2024-01-03", "2024-01-01", "2024-01-02"),
		numCol("temp", 3, 1, 2),
	})
	reference := table(t, []dataset.Column{
		strCol("date", "2024-01-01", "2024-01-02", "2024-01-03"),
		numCol("temp", 1, 2, 3),
	})

	res, err := Align(manual, reference)
	require.NoError(t, err)
	series := res.Parameters[0].Series
	require.Len(t, series, 3)
	assert.True(t, series[0].Date.Before(series[1].Date))
	assert.True(t, series[1].Date.Before(series[2].Date))
}
