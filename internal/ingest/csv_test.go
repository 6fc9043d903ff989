package ingest

import (
	"strings"
	"testing"

	"github.com/lakewatch/lakewatch/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	data := "Sample Date,pH,Site\n2024-01-01,7.2,north\n2024-01-02,,south\n"
	tbl, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"Sample Date", "pH", "Site"}, tbl.ColumnNames())
	assert.Equal(t, 2, tbl.NumRows())

	ph, ok := tbl.Column("pH")
	require.True(t, ok)
	f, ok := ph.Values[0].Float()
	require.True(t, ok)
	assert.Equal(t, 7.2, f)
	assert.True(t, ph.Values[1].IsMissing())
}

func TestReadCSV_EmptyFile(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadCSV_ShortRow(t *testing.T) {
	// encoding/csv rejects ragged records by default; make sure the
	// error is wrapped, not swallowed.
	data := "a,b\n1\n"
	_, err := ReadCSV(strings.NewReader(data))
	assert.Error(t, err)
}

func TestSniffValue(t *testing.T) {
	tests := []struct {
		in   string
		want dataset.ValueKind
	}{
		{"", dataset.KindMissing},
		{"  ", dataset.KindMissing},
		{"3.14", dataset.KindFloat},
		{"-2", dataset.KindFloat},
		{"2024-01-01", dataset.KindString},
		{"north", dataset.KindString},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SniffValue(tt.in).Kind())
		})
	}
}

func TestReadFile_DispatchesOnExtension(t *testing.T) {
	data := "a,b\n1,2\n"
	tbl, err := ReadFile("samples.csv", strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.NumRows())

	_, err = ReadFile("samples.xlsx", strings.NewReader(data))
	assert.Error(t, err) // not a real workbook
}
