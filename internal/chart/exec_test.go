package chart

import (
	"testing"

	"github.com/lakewatch/lakewatch/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execTable(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.New([]dataset.Column{
		{Name: "date", Values: []dataset.Value{dataset.String("2024-01-01"), dataset.String("2024-01-02")}},
		{Name: "ph", Values: []dataset.Value{dataset.Float(7.1), dataset.Float(7.3)}},
		{Name: "do", Values: []dataset.Value{dataset.Float(8.5), dataset.Float(8.2)}},
	})
	require.NoError(t, err)
	return tbl
}

func TestExecSnippet_RendersChart(t *testing.T) {
	code := `fig = px.line(df, x="date", y="ph", title="pH over time")`
	res := ExecSnippet(code, execTable(t), DefaultOptions)
	require.Empty(t, res.Warning)
	assert.Contains(t, res.Chart, "pH over time")
}

func TestExecSnippet_ToleratesImportsCommentsAndShow(t *testing.T) {
	code := "import plotly.express as px\n# build the figure\nfig = px.scatter(df, x=\"ph\", y=\"do\")\nfig.show()"
	res := ExecSnippet(code, execTable(t), DefaultOptions)
	assert.Empty(t, res.Warning)
	assert.NotEmpty(t, res.Chart)
}

func TestExecSnippet_NoFigBinding(t *testing.T) {
	code := `chart = px.line(df, x="date", y="ph")`
	res := ExecSnippet(code, execTable(t), DefaultOptions)
	assert.Empty(t, res.Chart)
	assert.Contains(t, res.Warning, `did not assign a chart to "fig"`)
}

func TestExecSnippet_UnknownName(t *testing.T) {
	code := `fig = os.listdir("/")`
	res := ExecSnippet(code, execTable(t), DefaultOptions)
	assert.Empty(t, res.Chart)
	assert.Contains(t, res.Warning, "could not generate chart")
	assert.Contains(t, res.Warning, `"os"`)
}

func TestExecSnippet_UnknownPlotFunction(t *testing.T) {
	code := `fig = px.pie(df, x="ph")`
	res := ExecSnippet(code, execTable(t), DefaultOptions)
	assert.Contains(t, res.Warning, "no chart function")
}

func TestExecSnippet_MissingColumnSurfaced(t *testing.T) {
	code := `fig = px.line(df, x="date", y="conductivity")`
	res := ExecSnippet(code, execTable(t), DefaultOptions)
	assert.Empty(t, res.Chart)
	assert.Contains(t, res.Warning, "conductivity")
}

func TestExecSnippet_DropDoesNotMutateCaller(t *testing.T) {
	tbl := execTable(t)
	code := "df = df.drop(columns=[\"do\"])\nfig = px.line(df, x=\"date\", y=\"ph\")"
	res := ExecSnippet(code, tbl, DefaultOptions)
	require.Empty(t, res.Warning)

	// The session's table still holds the dropped column.
	assert.True(t, tbl.HasColumn("do"))
	assert.Equal(t, 3, tbl.NumCols())
}

func TestExecSnippet_DropThenPlotDropped(t *testing.T) {
	code := "df = df.drop(columns=[\"ph\"])\nfig = px.line(df, x=\"date\", y=\"ph\")"
	res := ExecSnippet(code, execTable(t), DefaultOptions)
	assert.Contains(t, res.Warning, `"ph" not found`)
}

func TestExecSnippet_DfIndexingForm(t *testing.T) {
	code := `fig = px.scatter(df, x=df["ph"], y=df["do"])`
	res := ExecSnippet(code, execTable(t), DefaultOptions)
	assert.Empty(t, res.Warning)
	assert.NotEmpty(t, res.Chart)
}

func TestExecSnippet_Dropna(t *testing.T) {
	tbl, err := dataset.New([]dataset.Column{
		{Name: "t", Values: []dataset.Value{dataset.Float(1), dataset.Float(2)}},
		{Name: "v", Values: []dataset.Value{dataset.Float(3), dataset.Missing()}},
	})
	require.NoError(t, err)

	code := "df = df.dropna()\nfig = px.scatter(df, x=\"t\", y=\"v\")"
	res := ExecSnippet(code, tbl, DefaultOptions)
	assert.Empty(t, res.Warning)
	assert.Equal(t, 2, tbl.NumRows()) // caller untouched
}

func TestExecSnippet_ArbitraryStatementRejected(t *testing.T) {
	code := "while True: pass"
	res := ExecSnippet(code, execTable(t), DefaultOptions)
	assert.Contains(t, res.Warning, "could not generate chart")
}
