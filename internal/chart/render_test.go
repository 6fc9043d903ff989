package chart

import (
	"strings"
	"testing"

	"github.com/lakewatch/lakewatch/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plotTable(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.New([]dataset.Column{
		{Name: "date", Values: []dataset.Value{
			dataset.String("2024-01-01"), dataset.String("2024-01-02"), dataset.String("2024-01-03"),
		}},
		{Name: "ph", Values: []dataset.Value{
			dataset.Float(7.1), dataset.Float(7.4), dataset.Float(6.9),
		}},
		{Name: "site", Values: []dataset.Value{
			dataset.String("north"), dataset.String("south"), dataset.String("north"),
		}},
	})
	require.NoError(t, err)
	return tbl
}

func TestSpecValidate(t *testing.T) {
	tbl := plotTable(t)

	tests := []struct {
		name    string
		spec    Spec
		wantErr string
	}{
		{"valid scatter", Spec{Kind: KindScatter, X: "date", Y: "ph"}, ""},
		{"valid histogram x only", Spec{Kind: KindHistogram, X: "ph"}, ""},
		{"unsupported kind", Spec{Kind: "pie", X: "date", Y: "ph"}, "unsupported chart type"},
		{"missing x", Spec{Kind: KindLine, Y: "ph"}, "needs an x column"},
		{"missing y", Spec{Kind: KindBar, X: "site"}, "needs a y column"},
		{"histogram no axis", Spec{Kind: KindHistogram}, "needs an x or y column"},
		{"unknown column", Spec{Kind: KindLine, X: "date", Y: "conductivity"}, "not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate(tbl)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestRenderSpec_MissingColumnNeverRenders(t *testing.T) {
	tbl := plotTable(t)
	for _, kind := range []Kind{KindScatter, KindLine, KindBar, KindHistogram} {
		res := RenderSpec(Spec{Kind: kind, X: "absent", Y: "alsoabsent"}, tbl, DefaultOptions)
		assert.Empty(t, res.Chart, "kind %s", kind)
		assert.NotEmpty(t, res.Warning, "kind %s", kind)
	}
}

func TestRenderSpec_Line(t *testing.T) {
	res := RenderSpec(Spec{Kind: KindLine, X: "date", Y: "ph", Title: "pH over time"}, plotTable(t), DefaultOptions)
	require.Empty(t, res.Warning)
	assert.Contains(t, res.Chart, "pH over time")
	assert.Contains(t, res.Chart, plotDot)
	assert.Contains(t, res.Chart, "2024-01-01")
}

func TestRenderSpec_Scatter(t *testing.T) {
	res := RenderSpec(Spec{Kind: KindScatter, X: "ph", Y: "ph"}, plotTable(t), DefaultOptions)
	require.Empty(t, res.Warning)
	assert.Contains(t, res.Chart, plotDot)
}

func TestRenderSpec_Bar(t *testing.T) {
	res := RenderSpec(Spec{Kind: KindBar, X: "site", Y: "ph"}, plotTable(t), DefaultOptions)
	require.Empty(t, res.Warning)
	assert.Contains(t, res.Chart, "north")
	assert.Contains(t, res.Chart, "south")
	assert.Contains(t, res.Chart, filledBlock)
	// north bar is the mean of its two rows.
	assert.Contains(t, res.Chart, "7")
}

func TestRenderSpec_Histogram(t *testing.T) {
	res := RenderSpec(Spec{Kind: KindHistogram, X: "ph"}, plotTable(t), DefaultOptions)
	require.Empty(t, res.Warning)
	assert.Contains(t, res.Chart, filledBlock)
}

func TestRenderSpec_NoPlottableRows(t *testing.T) {
	tbl, err := dataset.New([]dataset.Column{
		{Name: "date", Values: []dataset.Value{dataset.String("2024-01-01")}},
		{Name: "note", Values: []dataset.Value{dataset.String("calm day")}},
	})
	require.NoError(t, err)

	res := RenderSpec(Spec{Kind: KindLine, X: "date", Y: "note"}, tbl, DefaultOptions)
	assert.Empty(t, res.Chart)
	assert.Contains(t, res.Warning, "no plottable rows")
}

func TestRenderSpec_ConstantColumn(t *testing.T) {
	tbl, err := dataset.New([]dataset.Column{
		{Name: "t", Values: []dataset.Value{dataset.Float(1), dataset.Float(2)}},
		{Name: "v", Values: []dataset.Value{dataset.Float(5), dataset.Float(5)}},
	})
	require.NoError(t, err)

	// Flat series must not divide by a zero range.
	res := RenderSpec(Spec{Kind: KindLine, X: "t", Y: "v"}, tbl, DefaultOptions)
	assert.Empty(t, res.Warning)
	assert.NotEmpty(t, res.Chart)
}

func TestRenderSpec_TinyOptionsClamped(t *testing.T) {
	res := RenderSpec(Spec{Kind: KindScatter, X: "ph", Y: "ph"}, plotTable(t), Options{Width: 1, Height: 1})
	assert.Empty(t, res.Warning)
	assert.True(t, strings.Count(res.Chart, "\n") >= 4)
}
