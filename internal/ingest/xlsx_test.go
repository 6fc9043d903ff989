package ingest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", name, cell))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestReadXLSX(t *testing.T) {
	buf := workbookBytes(t, [][]any{
		{"Sample Date", "pH"},
		{"2024-01-01", 7.2},
		{"2024-01-02", 7.4},
	})

	tbl, err := ReadXLSX(buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sample Date", "pH"}, tbl.ColumnNames())
	assert.Equal(t, 2, tbl.NumRows())

	ph, ok := tbl.Column("pH")
	require.True(t, ok)
	f, ok := ph.Values[1].Float()
	require.True(t, ok)
	assert.Equal(t, 7.4, f)
}

func TestReadXLSX_HeaderOnly(t *testing.T) {
	buf := workbookBytes(t, [][]any{{"a", "b"}})
	tbl, err := ReadXLSX(buf)
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.NumRows())
}

func TestReadXLSX_NotAWorkbook(t *testing.T) {
	_, err := ReadXLSX(bytes.NewReader([]byte("plain text")))
	assert.Error(t, err)
}
