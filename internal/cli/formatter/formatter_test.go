package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lakewatch/lakewatch/internal/compare"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"Parameter", "Avg"},
		[][]string{
			{"ph", "7.2"},
			{"dissolved_oxygen", "9.8"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	// The value column starts at the same offset on every data row.
	assert.Contains(t, lines[2], "ph")
	assert.Contains(t, lines[3], "dissolved_oxygen  9.8")
}

func TestRenderTable_EmptyHeaders(t *testing.T) {
	assert.Equal(t, "", RenderTable(nil, nil))
}

func TestRenderMissingBar_Bounds(t *testing.T) {
	full := RenderMissingBar(1.0, 8)
	assert.Contains(t, full, "100%")
	assert.Contains(t, full, strings.Repeat(filledBlock, 8))

	empty := RenderMissingBar(0, 8)
	assert.Contains(t, empty, "  0%")
	assert.Contains(t, empty, strings.Repeat(emptyBlock, 8))

	clamped := RenderMissingBar(1.7, 8)
	assert.Contains(t, clamped, "100%")
}

func TestTrendIndicator_CoversAllTrends(t *testing.T) {
	assert.Contains(t, TrendIndicator(compare.TrendHigher), "higher")
	assert.Contains(t, TrendIndicator(compare.TrendLower), "lower")
	assert.Contains(t, TrendIndicator(compare.TrendSimilar), "similar")
	assert.Contains(t, TrendIndicator(compare.TrendNoOverlap), "no overlap")
}
