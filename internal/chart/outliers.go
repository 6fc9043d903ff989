package chart

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lakewatch/lakewatch/internal/dataset"
)

const outlierMark = "✱"

var styleOutlier = lipgloss.NewStyle().Foreground(lipgloss.Color("#fb4934")).Bold(true)

// cell paint levels for the outlier grid.
const (
	cellEmpty = iota
	cellSeries
	cellOutlier
)

// RenderOutlierSeries draws yCol over xCol as a connected series with
// the rows flagged in flags marked separately, so suspect readings
// stand out against the trend. flags is row-aligned with the table;
// rows that do not plot (missing date or value) are skipped whatever
// their flag says.
func RenderOutlierSeries(t *dataset.Table, xCol, yCol string, flags []bool, opts Options) Result {
	xc, okX := t.Column(xCol)
	yc, okY := t.Column(yCol)
	if !okX || !okY {
		return Result{Warning: fmt.Sprintf("columns %q and %q are required", xCol, yCol)}
	}
	opts = opts.normalized()

	type flaggedPoint struct {
		point
		outlier bool
	}
	var pts []flaggedPoint
	for i := range xc.Values {
		xv, plotX := axisValue(xc.Values[i])
		yv, plotY := yc.Values[i].Float()
		if !plotX || !plotY {
			continue
		}
		fp := flaggedPoint{point: point{x: xv, y: yv}}
		if i < len(flags) {
			fp.outlier = flags[i]
		}
		pts = append(pts, fp)
	}
	if len(pts) == 0 {
		return Result{Warning: fmt.Sprintf("no plottable rows for %q vs %q", yCol, xCol)}
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].x < pts[j].x })

	xMin, xMax := pts[0].x, pts[len(pts)-1].x
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		yMin = math.Min(yMin, p.y)
		yMax = math.Max(yMax, p.y)
	}
	if xMax == xMin {
		xMax = xMin + 1
	}
	if yMax == yMin {
		yMax = yMin + 1
	}

	grid := make([][]int, opts.Height)
	for r := range grid {
		grid[r] = make([]int, opts.Width)
	}
	toCol := func(x float64) int {
		return clamp(int((x-xMin)/(xMax-xMin)*float64(opts.Width-1)), 0, opts.Width-1)
	}
	toRow := func(y float64) int {
		r := int((y - yMin) / (yMax - yMin) * float64(opts.Height-1))
		return clamp(opts.Height-1-r, 0, opts.Height-1)
	}

	prevSet := false
	var prevC, prevR int
	for _, p := range pts {
		c, r := toCol(p.x), toRow(p.y)
		if prevSet {
			markOutlierSegment(grid, prevC, prevR, c, r)
		}
		// Outlier marks win over line cells.
		if p.outlier {
			grid[r][c] = cellOutlier
		} else if grid[r][c] != cellOutlier {
			grid[r][c] = cellSeries
		}
		prevC, prevR, prevSet = c, r, true
	}

	title := fmt.Sprintf("%s over %s (outliers highlighted)", yCol, xCol)
	return Result{Chart: composeOutlierGrid(title, grid, yMin, yMax,
		xLabel(t, xCol, xMin), xLabel(t, xCol, xMax))}
}

// markOutlierSegment fills line cells between two positions without
// painting over outlier marks.
func markOutlierSegment(grid [][]int, c0, r0, c1, r1 int) {
	steps := max(abs(c1-c0), abs(r1-r0))
	for i := 1; i < steps; i++ {
		c := c0 + (c1-c0)*i/steps
		r := r0 + (r1-r0)*i/steps
		if grid[r][c] == cellEmpty {
			grid[r][c] = cellSeries
		}
	}
}

func composeOutlierGrid(title string, grid [][]int, yMin, yMax float64, xLeft, xRight string) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(title))
	b.WriteString("\n")

	width := len(grid[0])
	gutter := max(len(trimNum(yMax)), len(trimNum(yMin)))

	for r, row := range grid {
		label := ""
		switch r {
		case 0:
			label = trimNum(yMax)
		case len(grid) - 1:
			label = trimNum(yMin)
		}
		b.WriteString(styleAxis.Render(fmt.Sprintf("%*s ┤", gutter, label)))
		for _, level := range row {
			switch level {
			case cellOutlier:
				b.WriteString(styleOutlier.Render(outlierMark))
			case cellSeries:
				b.WriteString(stylePlot.Render(plotDot))
			default:
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(styleAxis.Render(strings.Repeat(" ", gutter+1) + "└" + strings.Repeat("─", width)))
	b.WriteString("\n")
	pad := width - len(xLeft) - len(xRight)
	if pad < 1 {
		pad = 1
	}
	b.WriteString(styleAxis.Render(strings.Repeat(" ", gutter+2) + xLeft + strings.Repeat(" ", pad) + xRight))
	return b.String()
}
