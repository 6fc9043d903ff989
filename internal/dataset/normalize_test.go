package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Sample Date", "sample_date"},
		{"  pH ", "ph"},
		{"Dissolved-Oxygen", "dissolved_oxygen"},
		{"already_normal", "already_normal"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.in))
	}
}

func TestNormalize_RenamesCopy(t *testing.T) {
	tbl, err := New([]Column{
		{Name: "Sample Date", Values: []Value{String("x")}},
		{Name: "Dissolved-Oxygen", Values: []Value{Float(8.2)}},
	})
	require.NoError(t, err)

	norm := Normalize(tbl)
	assert.Equal(t, []string{"sample_date", "dissolved_oxygen"}, norm.ColumnNames())

	// Original labels untouched.
	assert.Equal(t, []string{"Sample Date", "Dissolved-Oxygen"}, tbl.ColumnNames())
}

func TestNormalize_Idempotent(t *testing.T) {
	tbl, err := New([]Column{
		{Name: " Water Temp ", Values: []Value{Float(14)}},
		{Name: "pH-value", Values: []Value{Float(7)}},
	})
	require.NoError(t, err)

	once := Normalize(tbl)
	twice := Normalize(once)
	assert.Equal(t, once.ColumnNames(), twice.ColumnNames())
}

func TestNormalize_EmptyTable(t *testing.T) {
	norm := Normalize(Empty())
	assert.Equal(t, 0, norm.NumCols())
}

func TestNormalize_CollisionGetsSuffix(t *testing.T) {
	tbl, err := New([]Column{
		{Name: "a b", Values: []Value{Float(1)}},
		{Name: "a_b", Values: []Value{Float(2)}},
	})
	require.NoError(t, err)

	norm := Normalize(tbl)
	assert.Equal(t, []string{"a_b", "a_b_2"}, norm.ColumnNames())

	// Stable under a second pass.
	assert.Equal(t, norm.ColumnNames(), Normalize(norm).ColumnNames())
}

func TestNormalize_SuffixSkipsExistingLabels(t *testing.T) {
	// "a" collides with the first column, and its first suffix
	// candidate "a_2" is already taken by the second.
	tbl, err := New([]Column{
		{Name: "A", Values: []Value{Float(1)}},
		{Name: "a-2", Values: []Value{Float(2)}},
		{Name: "a", Values: []Value{Float(3)}},
	})
	require.NoError(t, err)

	norm := Normalize(tbl)
	assert.Equal(t, []string{"a", "a_2", "a_3"}, norm.ColumnNames())
	assert.Equal(t, norm.ColumnNames(), Normalize(norm).ColumnNames())
}
