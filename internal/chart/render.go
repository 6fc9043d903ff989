package chart

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lakewatch/lakewatch/internal/dataset"
)

const (
	filledBlock = "█"
	plotDot     = "•"
)

var (
	styleAxis  = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
	styleTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fe8019")).Bold(true)
	stylePlot  = lipgloss.NewStyle().Foreground(lipgloss.Color("#83a598"))
	styleBar   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8ec07c"))
)

// Options controls the rendered chart size in terminal cells.
type Options struct {
	Width  int // plot area width, excluding the y-axis gutter
	Height int // plot area height in rows
}

// DefaultOptions is sized for a typical split-pane terminal view.
var DefaultOptions = Options{Width: 60, Height: 14}

func (o Options) normalized() Options {
	if o.Width < 16 {
		o.Width = 16
	}
	if o.Height < 4 {
		o.Height = 4
	}
	return o
}

// Result is the outcome of a render attempt. Exactly one of Chart and
// Warning is set: validation failures and un-plottable data degrade to
// a warning, never an error.
type Result struct {
	Chart   string
	Warning string
}

// RenderSpec validates the spec against the table and dispatches on
// chart kind. Any validation failure yields a warning and no chart.
func RenderSpec(s Spec, t *dataset.Table, opts Options) Result {
	if err := s.Validate(t); err != nil {
		return Result{Warning: err.Error()}
	}
	opts = opts.normalized()

	switch s.Kind {
	case KindScatter:
		return renderXY(s, t, opts, false)
	case KindLine:
		return renderXY(s, t, opts, true)
	case KindBar:
		return renderBar(s, t, opts)
	case KindHistogram:
		return renderHistogram(s, t, opts)
	}
	// Unreachable after Validate, kept as a guard.
	return Result{Warning: fmt.Sprintf("unsupported chart type %q", s.Kind)}
}

// point is a plottable (x, y) pair after axis coercion.
type point struct {
	x, y float64
}

// axisValue coerces a cell onto a numeric axis: floats pass through and
// parseable timestamps become unix seconds.
func axisValue(v dataset.Value) (float64, bool) {
	if f, ok := v.Float(); ok {
		return f, true
	}
	if ts, ok := dataset.ParseTime(v); ok {
		return float64(ts.Unix()), true
	}
	return 0, false
}

func collectPoints(t *dataset.Table, xCol, yCol string) []point {
	xc, _ := t.Column(xCol)
	yc, _ := t.Column(yCol)
	var pts []point
	for i := range xc.Values {
		xv, okX := axisValue(xc.Values[i])
		yv, okY := yc.Values[i].Float()
		if okX && okY {
			pts = append(pts, point{x: xv, y: yv})
		}
	}
	return pts
}

// renderXY draws a scatter or line chart on a character grid.
func renderXY(s Spec, t *dataset.Table, opts Options, connect bool) Result {
	pts := collectPoints(t, s.X, s.Y)
	if len(pts) == 0 {
		return Result{Warning: fmt.Sprintf("no plottable rows for %q vs %q", s.Y, s.X)}
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

	grid := make([][]bool, opts.Height)
	for r := range grid {
		grid[r] = make([]bool, opts.Width)
	}
	toCol := func(x float64) int {
		c := int((x - xMin) / (xMax - xMin) * float64(opts.Width-1))
		return clamp(c, 0, opts.Width-1)
	}
	toRow := func(y float64) int {
		r := int((y - yMin) / (yMax - yMin) * float64(opts.Height-1))
		return clamp(opts.Height-1-r, 0, opts.Height-1)
	}

	prevSet := false
	var prevC, prevR int
	for _, p := range pts {
		c, r := toCol(p.x), toRow(p.y)
		grid[r][c] = true
		if connect && prevSet {
			markSegment(grid, prevC, prevR, c, r)
		}
		prevC, prevR, prevSet = c, r, true
	}

	return Result{Chart: composeGrid(s, grid, yMin, yMax, xLabel(t, s.X, xMin), xLabel(t, s.X, xMax))}
}

// markSegment fills the cells of a straight segment between two grid
// positions.
func markSegment(grid [][]bool, c0, r0, c1, r1 int) {
	steps := max(abs(c1-c0), abs(r1-r0))
	for i := 1; i < steps; i++ {
		c := c0 + (c1-c0)*i/steps
		r := r0 + (r1-r0)*i/steps
		grid[r][c] = true
	}
}

// xLabel renders an axis endpoint: time axes show dates, numeric axes
// show the number.
func xLabel(t *dataset.Table, xCol string, v float64) string {
	if col, ok := t.Column(xCol); ok {
		for _, cell := range col.Values {
			if _, isNum := cell.Float(); isNum {
				return trimNum(v)
			}
			if _, isTime := dataset.ParseTime(cell); isTime {
				return dataset.Time(unixTime(v)).Text()[:10]
			}
			break
		}
	}
	return trimNum(v)
}

func composeGrid(s Spec, grid [][]bool, yMin, yMax float64, xLeft, xRight string) string {
	var b strings.Builder
	if s.Title != "" {
		b.WriteString(styleTitle.Render(s.Title))
		b.WriteString("\n")
	}

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
		var line strings.Builder
		for _, set := range row {
			if set {
				line.WriteString(plotDot)
			} else {
				line.WriteString(" ")
			}
		}
		b.WriteString(stylePlot.Render(line.String()))
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

// renderBar groups y by the x label and draws horizontal mean bars.
func renderBar(s Spec, t *dataset.Table, opts Options) Result {
	xc, _ := t.Column(s.X)
	yc, _ := t.Column(s.Y)

	type group struct {
		label string
		sum   float64
		n     int
	}
	var order []string
	groups := make(map[string]*group)
	for i := range xc.Values {
		label := xc.Values[i].Text()
		if label == "" {
			continue
		}
		yv, ok := yc.Values[i].Float()
		if !ok {
			continue
		}
		g, seen := groups[label]
		if !seen {
			g = &group{label: label}
			groups[label] = g
			order = append(order, label)
		}
		g.sum += yv
		g.n++
	}
	if len(order) == 0 {
		return Result{Warning: fmt.Sprintf("no plottable rows for %q by %q", s.Y, s.X)}
	}

	// Bound the number of bars to the plot height.
	if len(order) > opts.Height {
		order = order[:opts.Height]
	}

	maxMean := math.Inf(-1)
	labelW := 0
	for _, label := range order {
		g := groups[label]
		if m := g.sum / float64(g.n); m > maxMean {
			maxMean = m
		}
		if len(label) > labelW {
			labelW = len(label)
		}
	}
	if maxMean <= 0 {
		maxMean = 1
	}

	var b strings.Builder
	if s.Title != "" {
		b.WriteString(styleTitle.Render(s.Title))
		b.WriteString("\n")
	}
	for _, label := range order {
		g := groups[label]
		mean := g.sum / float64(g.n)
		blocks := int(mean / maxMean * float64(opts.Width))
		if blocks < 1 && mean > 0 {
			blocks = 1
		}
		b.WriteString(fmt.Sprintf("%*s ", labelW, label))
		b.WriteString(styleBar.Render(strings.Repeat(filledBlock, clamp(blocks, 0, opts.Width))))
		b.WriteString(styleAxis.Render(" " + trimNum(mean)))
		b.WriteString("\n")
	}
	return Result{Chart: strings.TrimRight(b.String(), "\n")}
}

// renderHistogram bins the selected column and draws horizontal count
// bars. The x column is preferred; y is the fallback axis.
func renderHistogram(s Spec, t *dataset.Table, opts Options) Result {
	colName := s.X
	if colName == "" {
		colName = s.Y
	}
	col, _ := t.Column(colName)

	var vals []float64
	for _, v := range col.Values {
		if f, ok := v.Float(); ok {
			vals = append(vals, f)
		}
	}
	if len(vals) == 0 {
		return Result{Warning: fmt.Sprintf("column %q has no numeric values to bin", colName)}
	}

	min, max := vals[0], vals[0]
	for _, v := range vals {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	bins := 10
	if len(vals) < bins {
		bins = len(vals)
	}
	if max == min {
		max = min + 1
	}

	counts := make([]int, bins)
	for _, v := range vals {
		idx := int((v - min) / (max - min) * float64(bins))
		counts[clamp(idx, 0, bins-1)]++
	}
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	var b strings.Builder
	if s.Title != "" {
		b.WriteString(styleTitle.Render(s.Title))
		b.WriteString("\n")
	}
	binWidth := (max - min) / float64(bins)
	for i, c := range counts {
		lo := min + binWidth*float64(i)
		label := fmt.Sprintf("%10s ", trimNum(lo))
		blocks := 0
		if maxCount > 0 {
			blocks = c * opts.Width / maxCount
		}
		if blocks < 1 && c > 0 {
			blocks = 1
		}
		b.WriteString(label)
		b.WriteString(styleBar.Render(strings.Repeat(filledBlock, blocks)))
		b.WriteString(styleAxis.Render(fmt.Sprintf(" %d", c)))
		b.WriteString("\n")
	}
	return Result{Chart: strings.TrimRight(b.String(), "\n")}
}

func trimNum(f float64) string {
	if math.Abs(f) >= 1e6 || (math.Abs(f) < 1e-3 && f != 0) {
		return fmt.Sprintf("%.2g", f)
	}
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func unixTime(v float64) time.Time {
	return time.Unix(int64(v), 0).UTC()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
