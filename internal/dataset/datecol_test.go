package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferDateColumn_FirstMatchWins(t *testing.T) {
	tbl, err := New([]Column{
		{Name: "id", Values: []Value{Float(1)}},
		{Name: "Sample Date", Values: []Value{String("2024-01-01")}},
		{Name: "measurement_time", Values: []Value{String("2024-01-01")}},
		{Name: "value", Values: []Value{Float(3)}},
	})
	require.NoError(t, err)

	name, ok := InferDateColumn(tbl)
	require.True(t, ok)
	assert.Equal(t, "Sample Date", name)
}

func TestInferDateColumn_NotFound(t *testing.T) {
	tbl, err := New([]Column{
		{Name: "a", Values: []Value{Float(1)}},
		{Name: "b", Values: []Value{Float(2)}},
	})
	require.NoError(t, err)

	_, ok := InferDateColumn(tbl)
	assert.False(t, ok)
}

func TestInferDateColumn_NameHeuristicFalsePositive(t *testing.T) {
	// Accepted limitation: the heuristic matches on name only.
	tbl, err := New([]Column{
		{Name: "update_policy", Values: []Value{String("weekly")}},
	})
	require.NoError(t, err)

	name, ok := InferDateColumn(tbl)
	require.True(t, ok)
	assert.Equal(t, "update_policy", name)
}

func TestParseTime_Layouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-03-05 14:30:00", time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)},
		{"2024-03-05T14:30:00Z", time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)},
		{"05.03.2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTime(String(tt.in))
			require.True(t, ok)
			assert.True(t, got.Equal(tt.want))
		})
	}
}

func TestParseTime_Unparseable(t *testing.T) {
	_, ok := ParseTime(String("yesterday-ish"))
	assert.False(t, ok)

	_, ok = ParseTime(Missing())
	assert.False(t, ok)
}

func TestParseTimeColumn(t *testing.T) {
	tbl, err := New([]Column{
		{Name: "date", Values: []Value{String("2024-01-01"), String("bad"), Missing(), String("2024-01-04")}},
	})
	require.NoError(t, err)

	times, ok, parsed := ParseTimeColumn(tbl, "date")
	require.Len(t, times, 4)
	assert.Equal(t, 2, parsed)
	assert.Equal(t, []bool{true, false, false, true}, ok)
}

func TestParseTimeColumn_AbsentColumn(t *testing.T) {
	_, _, parsed := ParseTimeColumn(Empty(), "date")
	assert.Zero(t, parsed)
}
