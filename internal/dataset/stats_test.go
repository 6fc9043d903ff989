package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	tbl, err := New([]Column{
		{Name: "temp", Values: []Value{Float(10), Float(12), Float(14), Missing()}},
		{Name: "site", Values: []Value{String("a"), String("b"), String("c"), String("d")}},
	})
	require.NoError(t, err)

	stats := Describe(tbl)
	require.Len(t, stats, 1)

	s := stats[0]
	assert.Equal(t, "temp", s.Name)
	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 12.0, s.Mean, 1e-9)
	assert.InDelta(t, 2.0, s.Std, 1e-9)
	assert.Equal(t, 10.0, s.Min)
	assert.Equal(t, 14.0, s.Max)
	assert.InDelta(t, 25.0, s.MissingPct, 1e-9)
}

func TestDescribe_NoNumericColumns(t *testing.T) {
	tbl, err := New([]Column{
		{Name: "site", Values: []Value{String("a")}},
	})
	require.NoError(t, err)
	assert.Empty(t, Describe(tbl))
}

func TestMissingSummary(t *testing.T) {
	tbl, err := New([]Column{
		{Name: "a", Values: []Value{Float(1), Missing()}},
		{Name: "b", Values: []Value{String("x"), String("y")}},
	})
	require.NoError(t, err)

	summary := MissingSummary(tbl)
	require.Len(t, summary, 2)
	assert.Equal(t, 1, summary[0].Missing)
	assert.InDelta(t, 50.0, summary[0].Pct, 1e-9)
	assert.Equal(t, 0, summary[1].Missing)
}

func TestMean(t *testing.T) {
	tbl, err := New([]Column{
		{Name: "v", Values: []Value{Float(2), Float(4), Missing()}},
	})
	require.NoError(t, err)

	m, ok := Mean(tbl, "v")
	require.True(t, ok)
	assert.InDelta(t, 3.0, m, 1e-9)

	_, ok = Mean(tbl, "absent")
	assert.False(t, ok)
}
